package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/planta-io/planta/internal/service"
)

// UserHandler handles registration and login.
type UserHandler struct {
	userService *service.UserService
	logger      zerolog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger.With().Str("handler", "user").Logger(),
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type registerResponse struct {
	Username    string `json:"username"`
	AccessToken string `json:"accessToken"`
	UserID      int64  `json:"userId"`
	Email       string `json:"email"`
}

// Register handles POST /register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	output, err := h.userService.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	user := output.User
	writeResponse(w, http.StatusCreated, registerResponse{
		Username:    user.Username,
		AccessToken: user.AccessToken,
		UserID:      user.ID,
		Email:       user.Email,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is flat rather than enveloped, matching the shape the
// existing clients were written against.
type loginResponse struct {
	Success     bool   `json:"success"`
	UserID      int64  `json:"userId"`
	Username    string `json:"username"`
	AccessToken string `json:"accessToken"`
}

// Login handles POST /login. Unknown usernames and wrong passwords get
// the same 400 so callers cannot probe for accounts.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.userService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Success:     true,
		UserID:      user.ID,
		Username:    user.Username,
		AccessToken: user.AccessToken,
	})
}
