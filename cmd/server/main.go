package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"booking-service/config"
	"booking-service/internal/api"
	"booking-service/internal/auth"
	"booking-service/internal/broker"
	"booking-service/internal/db"
	"booking-service/internal/db/repos"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	dbConn := db.NewDB(cfg.DatabaseDSN())

	userRepo := repos.NewUserRepository(dbConn)
	ticketRepo := repos.NewTicketRepository(dbConn)

	userQueue, err := broker.New(cfg.RabbitMQURL, "user_queue")
	if err != nil {
		log.Fatalf("Failed to open user queue: %v", err)
	}
	defer userQueue.Close()

	ticketQueue, err := broker.New(cfg.RabbitMQURL, "ticket_queue")
	if err != nil {
		log.Fatalf("Failed to open ticket queue: %v", err)
	}
	defer ticketQueue.Close()

	sessions := auth.NewSessionManager(cfg.JWTSecret, 24*time.Hour)

	r := gin.Default()
	r.LoadHTMLGlob("web/templates/*.html")

	handler := api.NewHandler(userRepo, ticketRepo, sessions, userQueue, ticketQueue)
	api.SetupRoutes(r, handler, sessions)

	log.Printf("Booking service running on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
