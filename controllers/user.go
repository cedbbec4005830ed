package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"platyo/database"
	"platyo/middleware"
	"platyo/models"
	"platyo/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserController handles account-related requests
type UserController struct {
	DB           *database.Database
	EmailService *utils.EmailService
	Logger       *zap.Logger
}

// NewUserController creates a new UserController
func NewUserController(db *database.Database, emailService *utils.EmailService, logger *zap.Logger) *UserController {
	return &UserController{DB: db, EmailService: emailService, Logger: logger}
}

// Register creates a new restaurant-owner account and sends a verification email
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Name == "" || input.Email == "" || len(input.Password) < 8 {
		http.Error(w, "Name, email and a password of at least 8 characters are required", http.StatusBadRequest)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	now := time.Now()
	user := models.User{
		ID:                uuid.New().String(),
		Name:              input.Name,
		Email:             input.Email,
		Password:          string(hashed),
		Role:              models.RoleOwner,
		VerificationToken: uuid.New().String(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.DB.CreateUser(ctx, user); err != nil {
		http.Error(w, "Email already registered", http.StatusConflict)
		return
	}

	if err := uc.EmailService.SendVerificationEmail(user.Email, user.VerificationToken); err != nil {
		uc.Logger.Warn("verification email failed", zap.String("email", user.Email), zap.Error(err))
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Registered. Check your email to verify the account."})
}

// Login authenticates a user and returns a JWT
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := uc.DB.GetUserByEmail(ctx, input.Email)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	if !user.IsVerified {
		http.Error(w, "Account not verified", http.StatusForbidden)
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// VerifyEmail marks an account verified by its token
func (uc *UserController) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Missing token", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	users, err := uc.DB.Users(ctx)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	for _, user := range users {
		if user.VerificationToken == token && !user.IsVerified {
			user.IsVerified = true
			user.VerificationToken = ""
			user.UpdatedAt = time.Now()
			if err := uc.DB.UpdateUser(ctx, user); err != nil {
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"message": "Account verified"})
			return
		}
	}
	http.Error(w, "Invalid token", http.StatusBadRequest)
}

// GetProfile returns the authenticated user's profile
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := uc.DB.GetUserByID(ctx, claims.UserID)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, user.Public())
}

// ListUsers returns every account (superadmin only, enforced by routing)
func (uc *UserController) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	users, err := uc.DB.Users(ctx)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	view := make([]models.PublicUser, 0, len(users))
	for _, user := range users {
		view = append(view, user.Public())
	}
	writeJSON(w, http.StatusOK, view)
}
