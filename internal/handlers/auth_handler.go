package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhub/labor-marketplace/internal/config"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/httperr"
	"github.com/taskhub/labor-marketplace/internal/httpresp"
	"github.com/taskhub/labor-marketplace/internal/models"
	"github.com/taskhub/labor-marketplace/internal/result"
	"github.com/taskhub/labor-marketplace/internal/validators"
)

var errInvalidCredentials = httperr.ErrBusiness("invalid_credentials", "Invalid email or password")

type AuthHandler struct {
	users  user.Repository
	config *config.Config
	log    logrus.FieldLogger
}

func NewAuthHandler(users user.Repository, cfg *config.Config, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{users: users, config: cfg, log: log}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	Roles         []string `json:"roles"`
	AverageRating float64  `json:"average_rating"`
}

func userResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		Roles:         user.RolesOf(u).Names(),
		AverageRating: u.AverageRating,
	}
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.login(c.Request.Context(), req)
	if errors.Is(err, errInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, result.Fail[any]("invalid_credentials", "Invalid email or password"))
		return
	}
	httpresp.OK(c, h.log, resp, err)
}

func (h *AuthHandler) login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := h.users.GetByEmail(ctx, validators.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	token, err := h.generateToken(u)
	if err != nil {
		return nil, err
	}

	h.log.WithField("user_id", u.ID).Info("user logged in")
	return &LoginResponse{Token: token, User: userResponse(u)}, nil
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(u *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"roles": u.Roles,
		"exp":   now.Add(h.config.TokenTTL).Unix(),
		"iat":   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
