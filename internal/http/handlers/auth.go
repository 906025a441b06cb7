package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/poketrainer/skillhub/internal/auth"
)

type AuthHandler struct {
	flows *auth.Service
}

func NewAuthHandler(flows *auth.Service) *AuthHandler {
	return &AuthHandler{flows: flows}
}

type SignUpRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) SignUp(ctx *gin.Context) {
	var req SignUpRequest

	if !BindJSON(ctx, &req) {
		return
	}

	err := h.flows.SignUp(ctx.Request.Context(), auth.SignUpInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})

	if err != nil {
		switch {
		case errors.Is(err, auth.ErrPasswordsDoNotMatch):
			RespondError(ctx, http.StatusBadRequest, "password_mismatch", "Passwords do not match", nil)
		case errors.Is(err, auth.ErrEmailTaken):
			RespondError(ctx, http.StatusBadRequest, "email_taken", "Email already in use", nil)
		default:
			RespondInternal(ctx, "Could not create user")
		}
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"success": true})
}

func (h *AuthHandler) SignIn(ctx *gin.Context) {
	var req SignInRequest

	if !BindJSON(ctx, &req) {
		return
	}

	result, err := h.flows.SignIn(ctx.Request.Context(), auth.SignInInput{
		Email:    req.Email,
		Password: req.Password,
	})

	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			RespondUnAuthorized(ctx, "invalid_credentials", "Invalid credentials")
			return
		}

		RespondInternal(ctx, "Could not sign in")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token": result.Token,
		"name":  result.Name,
		"email": result.Email,
	})
}
