package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"booking-service/internal/auth"
	"booking-service/internal/db/models"
)

func performForm(router http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookie {
			return c
		}
	}
	return nil
}

func TestLoginSuccessSetsSession(t *testing.T) {
	hash, err := auth.HashPassword("secret")
	assert.NoError(t, err)

	users := new(MockUserStore)
	users.On("GetUserByUsername", "alice").Return(&models.User{ID: 1, Username: "alice", Password: hash}, nil)

	router := setupTestRouter(users, new(MockTicketStore), new(MockPublisher), new(MockPublisher))

	w := performForm(router, "/login", url.Values{"username": {"alice"}, "password": {"secret"}})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cookie := sessionCookie(w)
	assert.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("secret")
	assert.NoError(t, err)

	users := new(MockUserStore)
	users.On("GetUserByUsername", "alice").Return(&models.User{ID: 1, Username: "alice", Password: hash}, nil)

	router := setupTestRouter(users, new(MockTicketStore), new(MockPublisher), new(MockPublisher))

	w := performForm(router, "/login", url.Values{"username": {"alice"}, "password": {"wrong"}})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, sessionCookie(w))
}

func TestLoginUnknownUsername(t *testing.T) {
	// An unknown username must fail like a wrong password, not crash.
	users := new(MockUserStore)
	users.On("GetUserByUsername", "ghost").Return(nil, nil)

	router := setupTestRouter(users, new(MockTicketStore), new(MockPublisher), new(MockPublisher))

	w := performForm(router, "/login", url.Values{"username": {"ghost"}, "password": {"whatever"}})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password")
}

func TestRegisterCreatesUserAndLogsIn(t *testing.T) {
	users := new(MockUserStore)
	userQueue := new(MockPublisher)
	users.On("CreateUser", mock.MatchedBy(func(u *models.User) bool {
		return u.Username == "bob" && auth.CheckPassword(u.Password, "secret")
	})).Return(&models.User{ID: 2, Username: "bob", Password: "hash"}, nil)
	userQueue.On("Send", "User created: bob").Return(nil)

	router := setupTestRouter(users, new(MockTicketStore), userQueue, new(MockPublisher))

	w := performForm(router, "/register", url.Values{"username": {"bob"}, "password": {"secret"}})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.NotNil(t, sessionCookie(w))
	users.AssertExpectations(t)
	userQueue.AssertExpectations(t)
}

func TestLogoutClearsSession(t *testing.T) {
	router := setupTestRouter(new(MockUserStore), new(MockTicketStore), new(MockPublisher), new(MockPublisher))

	req, _ := http.NewRequest(http.MethodGet, "/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cookie := sessionCookie(w)
	assert.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.MaxAge < 0)
}

func TestHomeShowsSessionIdentity(t *testing.T) {
	users := new(MockUserStore)
	router := setupTestRouter(users, new(MockTicketStore), new(MockPublisher), new(MockPublisher))

	sessions := auth.NewSessionManager("test-secret", testSessionTTL)
	token, err := sessions.Issue(1, "alice")
	assert.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestUserTicketsListsAttachedTickets(t *testing.T) {
	users := new(MockUserStore)
	users.On("GetUserByID", 1).Return(&models.User{ID: 1, Username: "alice"}, nil)
	users.On("GetUserTickets", 1).Return([]models.Ticket{
		{ID: 1, Title: "Rock Night", Date: time.Now()},
		{ID: 2, Title: "Jazz Eve", Date: time.Now()},
	}, nil)

	router := setupTestRouter(users, new(MockTicketStore), new(MockPublisher), new(MockPublisher))

	req, _ := http.NewRequest(http.MethodGet, "/user_tickets/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Rock Night")
	assert.Contains(t, w.Body.String(), "Jazz Eve")
}

func TestUserTicketsUnknownUser(t *testing.T) {
	users := new(MockUserStore)
	users.On("GetUserByID", 99).Return(nil, nil)

	router := setupTestRouter(users, new(MockTicketStore), new(MockPublisher), new(MockPublisher))

	req, _ := http.NewRequest(http.MethodGet, "/user_tickets/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
	users.AssertNotCalled(t, "GetUserTickets", mock.Anything)
}
