package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"booking-service/internal/auth"
	"booking-service/internal/db/models"
)

const sessionKey = "session_claims"

// SessionMiddleware restores the logged-in identity from the session cookie
// when one is present. Anonymous requests proceed without it.
func SessionMiddleware(sessions *auth.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.SessionCookie)
		if err == nil && token != "" {
			if claims, err := sessions.Parse(token); err == nil {
				c.Set(sessionKey, claims)
			}
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(sessionKey); ok {
		return v.(*auth.Claims)
	}
	return nil
}

func (h *Handler) setSession(c *gin.Context, userID int, username string) error {
	token, err := h.sessions.Issue(userID, username)
	if err != nil {
		return err
	}
	c.SetCookie(auth.SessionCookie, token, int(h.sessions.TTL().Seconds()), "/", "", false, true)
	return nil
}

func clearSession(c *gin.Context) {
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
}

// Home renders the home view.
func (h *Handler) Home(c *gin.Context) {
	data := gin.H{}
	if claims := currentUser(c); claims != nil {
		data["username"] = claims.Username
	}
	c.HTML(http.StatusOK, "home.html", data)
}

// ShowRegister renders the sign-up form.
func (h *Handler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "sign_up.html", gin.H{})
}

// Register creates a user from the sign-up form, logs them in and redirects
// to the login view.
func (h *Handler) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		c.HTML(http.StatusBadRequest, "sign_up.html", gin.H{"error": "Username and password are required"})
		return
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		c.HTML(http.StatusInternalServerError, "sign_up.html", gin.H{"error": "Something went wrong"})
		return
	}

	created, err := h.users.CreateUser(&models.User{Username: username, Password: hashedPassword})
	if err != nil {
		if isUniqueViolation(err) {
			c.HTML(http.StatusConflict, "sign_up.html", gin.H{"error": "Username already taken"})
			return
		}
		log.Printf("Failed to create user: %v", err)
		c.HTML(http.StatusInternalServerError, "sign_up.html", gin.H{"error": "Something went wrong"})
		return
	}

	if err := h.userQueue.Send("User created: " + created.Username); err != nil {
		log.Printf("Failed to publish user notification: %v", err)
	}

	if err := h.setSession(c, created.ID, created.Username); err != nil {
		log.Printf("Failed to issue session: %v", err)
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

// ShowLogin renders the login form.
func (h *Handler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Login validates form credentials, establishes a session on success and
// redirects home. An unknown username fails the same way as a wrong
// password.
func (h *Handler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.users.GetUserByUsername(username)
	if err != nil {
		log.Printf("Failed to retrieve user %q: %v", username, err)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"error": "Something went wrong"})
		return
	}
	if user == nil || !auth.CheckPassword(user.Password, password) {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"error": "Invalid username or password"})
		return
	}

	if err := h.setSession(c, user.ID, user.Username); err != nil {
		log.Printf("Failed to issue session: %v", err)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"error": "Something went wrong"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout tears down the session and redirects home.
func (h *Handler) Logout(c *gin.Context) {
	clearSession(c)
	c.Redirect(http.StatusSeeOther, "/")
}

// UserTickets renders the tickets attached to a user.
func (h *Handler) UserTickets(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.users.GetUserByID(id)
	if err != nil {
		log.Printf("Failed to retrieve user %d: %v", id, err)
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}
	if user == nil {
		c.String(http.StatusNotFound, "User not found")
		return
	}

	tickets, err := h.users.GetUserTickets(id)
	if err != nil {
		log.Printf("Failed to retrieve tickets for user %d: %v", id, err)
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}

	c.HTML(http.StatusOK, "user_tickets.html", gin.H{
		"username": user.Username,
		"tickets":  tickets,
	})
}
