package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bloomcare/bloom-practice-engine/internal/core/domain"
	"github.com/bloomcare/bloom-practice-engine/internal/core/services"
)

type AuthHandler struct {
	authService  *services.AuthService
	tokenService *services.TokenService
}

func NewAuthHandler(authService *services.AuthService, tokenService *services.TokenService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenService: tokenService,
	}
}

type registerRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	FullName   string `json:"fullName" binding:"required"`
	Profession string `json:"profession"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token        string                     `json:"token"`
	Practitioner domain.PractitionerSummary `json:"practitioner"`
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	input := services.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		FullName:   req.FullName,
		Profession: req.Profession,
	}

	practitioner, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			respondError(c, http.StatusConflict, "email already exists")
		case errors.Is(err, domain.ErrInvalidEmail):
			respondError(c, http.StatusBadRequest, "invalid email format")
		case errors.Is(err, domain.ErrPasswordTooShort):
			respondError(c, http.StatusBadRequest, "password too short")
		case errors.Is(err, domain.ErrNameEmpty):
			respondError(c, http.StatusBadRequest, "full name is required")
		default:
			_ = c.Error(err)
			respondError(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	token, err := h.tokenService.GenerateToken(practitioner.ID)
	if err != nil {
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	respondOK(c, http.StatusCreated, authResponse{
		Token:        token,
		Practitioner: practitioner.Summary(),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	practitioner, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "invalid email or password")
			return
		}
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	token, err := h.tokenService.GenerateToken(practitioner.ID)
	if err != nil {
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "internal server error")
		return
	}

	respondOK(c, http.StatusOK, authResponse{
		Token:        token,
		Practitioner: practitioner.Summary(),
	})
}
