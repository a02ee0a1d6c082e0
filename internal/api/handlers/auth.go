package handlers

import (
	"errors"
	"net/http"

	"github.com/mheijden/portfolio-tracker/internal/api/request"
	"github.com/mheijden/portfolio-tracker/internal/api/response"
	"github.com/mheijden/portfolio-tracker/internal/apperrors"
	"github.com/mheijden/portfolio-tracker/internal/service"
	"github.com/mheijden/portfolio-tracker/internal/validation"
)

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	userService *service.UserService
}

// NewAuthHandler creates a new AuthHandler with the provided service dependency.
func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

// Register handles POST requests to create a new user account.
//
// Endpoint: POST /api/auth/register
// Request Body: RegisterRequest (username, email, password)
// Response: 201 Created with the new user (password hash omitted)
// Error: 400 Bad Request if validation fails or the user already exists
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.RegisterRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateRegister(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	user, err := h.userService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserExists) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrUserExists.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to register user", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, user)
}

// TokenResponse represents a successful login response.
type TokenResponse struct {
	Token string `json:"token"`
}

// Login handles POST requests to exchange credentials for an auth token.
//
// Endpoint: POST /api/auth/login
// Request Body: LoginRequest (username, password)
// Response: 200 OK with TokenResponse
// Error: 401 Unauthorized on bad credentials
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LoginRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	token, err := h.userService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			response.RespondError(w, http.StatusUnauthorized, apperrors.ErrInvalidCredentials.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to log in", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, TokenResponse{Token: token})
}
