package broker

import (
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Queue wraps a RabbitMQ connection scoped to a single named queue. One
// instance is opened per logical queue at startup and held for the process
// lifetime. The mutex serializes channel access: amqp channels are not safe
// for concurrent use and gin handles requests on multiple goroutines.
type Queue struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	name    string
	url     string
}

// New dials the broker, opens a channel and declares the named queue. The
// declare is idempotent, so restarting against an existing queue is safe.
func New(url, queueName string) (*Queue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Printf("Failed to connect to RabbitMQ: %v", err)
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("Failed to open channel: %v", err)
		conn.Close()
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Printf("Failed to declare queue: %v", err)
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &Queue{
		conn:    conn,
		channel: ch,
		name:    queueName,
		url:     url,
	}, nil
}

// Name returns the queue name.
func (q *Queue) Name() string {
	return q.name
}

// Send publishes a plain-text message to the default exchange with the queue
// name as routing key. Fire-and-forget: no delivery confirmation is awaited.
func (q *Queue) Send(message string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	err := q.channel.Publish(
		"",
		q.name,
		false,
		false,
		amqp.Publishing{
			ContentType: "text/plain",
			Body:        []byte(message),
		},
	)
	if err != nil {
		log.Printf("Failed to publish message: %v", err)
		return err
	}

	log.Printf("Published message to %s: %s", q.name, message)
	return nil
}

// Receive performs a single non-blocking pop with auto-ack: the message is
// removed from the queue the instant it is fetched. The second return is
// false when the queue is empty.
func (q *Queue) Receive() (string, bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	msg, ok, err := q.channel.Get(q.name, true)
	if err != nil {
		log.Printf("Failed to get message: %v", err)
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	return string(msg.Body), true, nil
}

// Close releases the channel and the connection.
func (q *Queue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.channel != nil {
		if err := q.channel.Close(); err != nil {
			log.Printf("Failed to close channel: %v", err)
			return err
		}
	}
	if q.conn != nil {
		if err := q.conn.Close(); err != nil {
			log.Printf("Failed to close connection: %v", err)
			return err
		}
	}
	return nil
}
