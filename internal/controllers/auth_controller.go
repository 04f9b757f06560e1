package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/matrixgesnet/proyecto-cursos/internal/middleware"
	"github.com/matrixgesnet/proyecto-cursos/internal/models"
	"github.com/matrixgesnet/proyecto-cursos/internal/services"
	log "github.com/sirupsen/logrus"
)

type AuthController struct {
	userService    services.UserService
	sessionService services.SessionService
	resetService   services.PasswordResetService
}

func NewAuthController(userService services.UserService, sessionService services.SessionService, resetService services.PasswordResetService) *AuthController {
	return &AuthController{
		userService:    userService,
		sessionService: sessionService,
		resetService:   resetService,
	}
}

func (ac *AuthController) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, err.Error()))
		return
	}

	user, err := ac.userService.Register(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusConflict, models.NewAPIError(models.ErrEmailTaken, "An account with that email already exists"))
			return
		}
		log.WithError(err).Error("Failed to register user")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to register user"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "email": user.Email})
}

func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, err.Error()))
		return
	}

	user, err := ac.sessionService.Authenticate(req.Email, req.Password)
	if err != nil {
		// One message for unknown email and wrong password alike.
		c.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrInvalidCredentials, "Incorrect email or password"))
		return
	}

	token, err := ac.sessionService.Establish(user)
	if err != nil {
		log.WithError(err).Error("Failed to establish session")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to establish session"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"is_admin": user.IsAdmin,
		},
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if err := ac.sessionService.Terminate(token); err != nil {
		log.WithError(err).Error("Failed to terminate session")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to terminate session"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged_out"})
}

// Me returns the account behind the current session.
func (ac *AuthController) Me(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrUnauthorized, "Authentication required"))
		return
	}

	user, err := ac.userService.GetUserByID(principal.UserID)
	if err != nil {
		log.WithError(err).Error("Failed to load the current user's profile")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to load profile"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"is_admin":   user.IsAdmin,
		"created_at": user.CreatedAt,
	})
}

func (ac *AuthController) RequestPasswordReset(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, err.Error()))
		return
	}

	if err := ac.resetService.RequestReset(req.Email); err != nil {
		log.WithError(err).Error("Failed to issue password reset token")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to process reset request"))
		return
	}

	// Accepted whether or not the email exists.
	c.JSON(http.StatusAccepted, gin.H{"message": "If the email is registered, reset instructions have been sent"})
}

func (ac *AuthController) RedeemPasswordReset(c *gin.Context) {
	var req struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, err.Error()))
		return
	}

	if err := ac.resetService.Redeem(req.Token, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrResetTokenInvalid) {
			c.JSON(http.StatusUnprocessableEntity, models.NewAPIError(models.ErrResetTokenInvalid, "The reset link is invalid or has expired"))
			return
		}
		log.WithError(err).Error("Failed to redeem password reset token")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to reset password"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password_updated"})
}
