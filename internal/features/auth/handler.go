package auth

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/wellnest-app/wellness-api/internal/config"
	"github.com/wellnest-app/wellness-api/internal/pkg/response"
	"github.com/wellnest-app/wellness-api/internal/pkg/token"
)

type Handler struct {
	repo *Repository
	cfg  *config.Config
}

func NewHandler(repo *Repository, cfg *config.Config) *Handler {
	return &Handler{repo: repo, cfg: cfg}
}

// Register godoc
// @Summary Register a new user
// @Description Register a new user with email, password, and name
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "User registration data"
// @Success 201 {object} response.Body
// @Failure 400 {object} response.Body
// @Failure 409 {object} response.Body
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_JSON")
		return
	}

	existing, err := h.repo.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.InternalServerError(c, "Failed to check email", "DB_ERROR")
		return
	}
	if existing != nil {
		response.Conflict(c, "Email already registered", "EMAIL_TAKEN")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		response.InternalServerError(c, "Failed to process password", "HASH_FAILED")
		return
	}

	user := &User{
		Email:    req.Email,
		Password: string(hashed),
		Name:     req.Name,
	}
	if err := h.repo.CreateUser(c.Request.Context(), user); err != nil {
		response.InternalServerError(c, "Failed to create user", "DB_ERROR")
		return
	}

	accessToken, err := token.GenerateToken(user.ID.Hex(), user.Email, h.cfg)
	if err != nil {
		response.InternalServerError(c, "Failed to generate token", "TOKEN_FAILED")
		return
	}

	response.Created(c, AuthResponse{User: user, AccessToken: accessToken})
}

// Login godoc
// @Summary Login user
// @Description Authenticate user with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "User login credentials"
// @Success 200 {object} response.Body
// @Failure 401 {object} response.Body
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_JSON")
		return
	}

	user, err := h.repo.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch user", "DB_ERROR")
		return
	}
	if user == nil {
		response.Unauthorized(c, "Invalid email or password", "INVALID_CREDENTIALS")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		response.Unauthorized(c, "Invalid email or password", "INVALID_CREDENTIALS")
		return
	}

	accessToken, err := token.GenerateToken(user.ID.Hex(), user.Email, h.cfg)
	if err != nil {
		response.InternalServerError(c, "Failed to generate token", "TOKEN_FAILED")
		return
	}

	response.Success(c, AuthResponse{User: user, AccessToken: accessToken})
}

// Me godoc
// @Summary Get current user
// @Description Get the account of the currently authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Body
// @Failure 401 {object} response.Body
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	user, err := h.repo.GetUserByID(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.InternalServerError(c, "Failed to fetch user", "DB_ERROR")
		return
	}
	if user == nil {
		response.NotFound(c, "User not found", "USER_NOT_FOUND")
		return
	}

	response.Success(c, user)
}
