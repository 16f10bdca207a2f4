package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobtrack/jobtrack-be/internal/api/auth"
	"github.com/jobtrack/jobtrack-be/internal/api/domain"
	"github.com/jobtrack/jobtrack-be/internal/api/dto"
)

// Register handles POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Username and password required",
		})
		return
	}

	if len(req.Username) < domain.MinUsernameLen {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Username must be at least %d characters", domain.MinUsernameLen),
		})
		return
	}

	if len(req.Password) < domain.MinPasswordLen {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Password must be at least %d characters", domain.MinPasswordLen),
		})
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("Failed to hash password", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create user",
		})
		return
	}

	// Single atomic insert; the store's uniqueness constraint resolves
	// concurrent registrations for the same username.
	userID, err := h.users.CreateUser(c.Request.Context(), req.Username, passwordHash)
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Username already exists",
			})
			return
		}
		h.logger.Error("Failed to create user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create user",
		})
		return
	}

	h.logger.Info("User registered",
		slog.String("username", req.Username),
		slog.Int64("user_id", userID),
	)

	c.JSON(http.StatusOK, gin.H{
		"message":  "User registered successfully",
		"userId":   userID,
		"username": req.Username,
	})
}

// Login handles POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Username and password required",
		})
		return
	}

	user, err := h.users.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Same response as a wrong password; the caller cannot probe
			// for which usernames exist.
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid username or password",
			})
			return
		}
		h.logger.Error("Failed to look up user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Database error",
		})
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid username or password",
		})
		return
	}

	h.logger.Info("User logged in", slog.String("username", user.Username))

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user": dto.UserDTO{
			ID:       user.ID,
			Username: user.Username,
		},
	})
}
