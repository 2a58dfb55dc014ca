package api

import (
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"booking-service/internal/auth"
	"booking-service/internal/db/models"
)

// MockUserStore mocks the user store interface.
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) CreateUser(user *models.User) (*models.User, error) {
	args := m.Called(user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) GetAllUsers() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserStore) GetUserByID(id int) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) UpdateUser(id int, patch models.UserPatch) (*models.User, error) {
	args := m.Called(id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) DeleteUser(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserStore) GetUserTickets(userID int) ([]models.Ticket, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ticket), args.Error(1)
}

// MockTicketStore mocks the ticket store interface.
type MockTicketStore struct {
	mock.Mock
}

func (m *MockTicketStore) CreateTicket(ticket *models.Ticket, userID int) (*models.Ticket, error) {
	args := m.Called(ticket, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketStore) GetAllTickets() ([]models.Ticket, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ticket), args.Error(1)
}

func (m *MockTicketStore) GetTicketByID(id int) (*models.Ticket, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketStore) UpdateTicket(id int, patch models.TicketPatch) (*models.Ticket, error) {
	args := m.Called(id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketStore) DeleteTicket(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockPublisher mocks a queue publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Send(message string) error {
	args := m.Called(message)
	return args.Error(0)
}

const testViews = `
{{define "home.html"}}home {{.username}}{{end}}
{{define "sign_up.html"}}sign_up {{.error}}{{end}}
{{define "login.html"}}login {{.error}}{{end}}
{{define "user_tickets.html"}}tickets for {{.username}}:{{range .tickets}} {{.Title}}{{end}}{{end}}
`

// setupTestRouter builds a router with mocked dependencies and stub views.
func setupTestRouter(users *MockUserStore, tickets *MockTicketStore, userQueue, ticketQueue *MockPublisher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.New("views").Parse(testViews)))

	sessions := auth.NewSessionManager("test-secret", testSessionTTL)
	handler := NewHandler(users, tickets, sessions, userQueue, ticketQueue)
	SetupRoutes(router, handler, sessions)

	return router
}
