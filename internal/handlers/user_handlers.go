package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zayrajewels/zayra-golang/internal/models"
)

//
// --- User Handlers (auth boundary) ---
//
// Full account management lives in the accounts service; fulfillment only
// needs enough of a user table to authenticate customers and admins.
//

// RegisterUserInput holds the registration payload. Separate from
// models.User so clients cannot set id or role.
type RegisterUserInput struct {
	FullName    string `json:"fullName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// Register is the handler for POST /v1/register.
func (h *Handlers) Register(c *gin.Context) {
	var input RegisterUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var password models.Password
	if err := password.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	now := time.Now()
	result, err := h.DB.Exec(`
		INSERT INTO users (role, email, password_hash, full_name, phone_number, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		models.RoleCustomer, input.Email, password.Hash, input.FullName, input.PhoneNumber, now, now)
	if err != nil {
		// covers the unique email constraint as well
		c.JSON(http.StatusConflict, gin.H{"error": "Could not register with this email"})
		return
	}

	userID, err := result.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read new user id"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registered successfully",
		"userId":  userID,
	})
}

// LoginInput holds the login payload.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login is the handler for POST /v1/login.
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	err := h.DB.QueryRow(`
		SELECT id, role, email, password_hash, full_name
		FROM users WHERE email = ?`, input.Email).
		Scan(&user.ID, &user.Role, &user.Email, &user.PasswordHash, &user.FullName)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	password := models.Password{Hash: user.PasswordHash}
	matches, err := password.Matches(input.Password)
	if err != nil || !matches {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := h.Tokens.Generate(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"fullName": user.FullName,
			"role":     user.Role,
		},
	})
}
