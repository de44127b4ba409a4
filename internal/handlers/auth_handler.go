package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"prepwise/server/internal/auth"
	"prepwise/server/internal/models"
	"prepwise/server/internal/repositories"
	"prepwise/server/internal/utils"
)

// AuthHandler manages sign-up, sign-in, sign-out and the current-user
// lookup. Sessions are minted and cleared here; verification of gated
// routes lives in the auth middleware.
type AuthHandler struct {
	users    UserRepository
	verifier *auth.Verifier
	secure   bool
	logger   *zap.Logger
}

func NewAuthHandler(users UserRepository, verifier *auth.Verifier, secure bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:    users,
		verifier: verifier,
		secure:   secure,
		logger:   logger,
	}
}

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) SignUpHandler(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid_json", "Invalid JSON in request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.Fail(w, http.StatusBadRequest, "missing_fields", "Name, email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "unknown", "Failed to create an account")
		return
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.users.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			utils.Fail(w, http.StatusConflict, "email_taken", "This email is already in use")
			return
		}
		h.logger.Error("Failed to create user", zap.Error(err))
		utils.Fail(w, http.StatusInternalServerError, "unknown", "Failed to create an account")
		return
	}

	utils.JSON(w, http.StatusCreated, models.SuccessResponse{Success: true, Message: "User created successfully"})
}

func (h *AuthHandler) SignInHandler(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Fail(w, http.StatusBadRequest, "invalid_json", "Invalid JSON in request body")
		return
	}

	user, err := h.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			utils.Fail(w, http.StatusUnauthorized, "invalid_credentials", "User does not exist, Signup instead")
			return
		}
		h.logger.Error("Failed to look up user", zap.Error(err))
		utils.Fail(w, http.StatusInternalServerError, "unknown", "Failed to sign in")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		utils.Fail(w, http.StatusUnauthorized, "invalid_credentials", "Failed to sign in")
		return
	}

	credential, err := h.verifier.Mint(&models.Principal{
		UserID:        user.ID,
		Email:         user.Email,
		EmailVerified: user.EmailVerified,
	})
	if err != nil {
		h.logger.Error("Failed to mint session", zap.Error(err))
		utils.Fail(w, http.StatusInternalServerError, "unknown", "Failed to sign in")
		return
	}

	http.SetCookie(w, h.verifier.SessionCookie(credential, h.secure))
	utils.JSON(w, http.StatusOK, models.SuccessResponse{Success: true, Message: "Signed in successfully"})
}

func (h *AuthHandler) SignOutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ClearSessionCookie(h.secure))
	utils.JSON(w, http.StatusOK, models.SuccessResponse{Success: true, Message: "Signed out successfully."})
}

// CurrentUserHandler resolves the session itself instead of sitting
// behind the auth gate: a missing or invalid session yields a JSON
// null body, never a 401.
func (h *AuthHandler) CurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	principal, err := h.verifier.VerifyRequest(r)
	if err != nil {
		utils.JSON(w, http.StatusOK, nil)
		return
	}

	user, err := h.users.GetUserByID(r.Context(), principal.UserID)
	if err != nil {
		if !errors.Is(err, repositories.ErrUserNotFound) {
			h.logger.Error("Failed to load current user", zap.Error(err))
		}
		utils.JSON(w, http.StatusOK, nil)
		return
	}

	utils.JSON(w, http.StatusOK, user)
}
