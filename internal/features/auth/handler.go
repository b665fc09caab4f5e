package auth

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/xyz-asif/trackback/internal/pkg/logger"
	"github.com/xyz-asif/trackback/internal/pkg/response"
	"github.com/xyz-asif/trackback/internal/pkg/token"
	apperrors "github.com/xyz-asif/trackback/pkg/errors"
)

type Handler struct {
	repo     Repository
	secret   string
	tokenTTL time.Duration
	hashCost int
	log      *logger.Logger
}

func NewHandler(repo Repository, secret string, tokenTTL time.Duration, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Default()
	}
	return &Handler{
		repo:     repo,
		secret:   secret,
		tokenTTL: tokenTTL,
		hashCost: bcrypt.DefaultCost,
		log:      log,
	}
}

// Signup godoc
// @Summary Register a new user
// @Description Create an account. Usernames are unique and case-sensitive.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Credentials"
// @Success 201 {object} response.SuccessResponse{data=SignupResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /auth/signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, "username and password required")
		return
	}
	if err := ValidateCredentials(&req); err != nil {
		response.FromError(c, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.hashCost)
	if err != nil {
		response.InternalServerError(c, "Failed to process password", "HASH_FAILED")
		return
	}

	user := &User{Username: req.Username, Password: string(hashed)}
	if err := h.repo.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateUser) {
			response.Conflict(c, "username exists", "USER_EXISTS")
			return
		}
		h.log.Error("create user %s: %v", req.Username, err)
		response.DatabaseError(c, "Failed to create user")
		return
	}

	h.log.Info("user %s signed up", user.Username)
	response.Created(c, SignupResponse{Username: user.Username})
}

// Login godoc
// @Summary Login user
// @Description Verify credentials and issue a bearer token for report calls
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Credentials"
// @Success 200 {object} response.SuccessResponse{data=LoginResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, "username and password required")
		return
	}
	if err := ValidateCredentials(&req); err != nil {
		response.FromError(c, err)
		return
	}

	user, err := h.repo.FindByUsername(c.Request.Context(), req.Username)
	if err != nil {
		h.log.Error("find user %s: %v", req.Username, err)
		response.DatabaseError(c, "Failed to look up user")
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		response.Unauthorized(c, "invalid credentials", "AUTH_FAILED")
		return
	}

	signed, err := token.GenerateToken(user.Username, h.secret, h.tokenTTL)
	if err != nil {
		response.InternalServerError(c, "Failed to generate token", "TOKEN_FAILED")
		return
	}

	response.Success(c, LoginResponse{Username: user.Username, Token: signed})
}
