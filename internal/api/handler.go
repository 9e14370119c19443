package api

import (
	"account-service/internal/model"
	"account-service/internal/service"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, email string) (string, error)
}

type AuthHandler struct {
	userService service.UserService
	tokens      TokenIssuer
	validate    *validator.Validate
	devMode     bool
}

func NewAuthHandler(userService service.UserService, tokens TokenIssuer, devMode bool) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		tokens:      tokens,
		validate:    validator.New(),
		devMode:     devMode,
	}
}

type RegisterRequest struct {
	Name      string  `json:"name" validate:"required,max=100"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=6,max=72"`
	Language  *string `json:"language,omitempty" validate:"omitempty,max=50"`
	Level     *string `json:"level,omitempty" validate:"omitempty,max=50"`
	Reason    *string `json:"reason,omitempty" validate:"omitempty,max=255"`
	DailyGoal *int    `json:"dailyGoal,omitempty" validate:"omitempty,min=0,max=1440"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Message string         `json:"message"`
	Token   string         `json:"token"`
	User    model.UserView `json:"user"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var request RegisterRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	user, err := h.userService.Register(c.UserContext(), service.RegisterParams{
		Name:     request.Name,
		Email:    request.Email,
		Password: request.Password,
		Preferences: model.Preferences{
			Language:  request.Language,
			Level:     request.Level,
			Reason:    request.Reason,
			DailyGoal: request.DailyGoal,
		},
	})
	if err != nil {
		authEventsTotal.WithLabelValues("register", "failure").Inc()
		return respondError(c, err, "registering user", h.devMode)
	}

	token, err := h.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return respondError(c, err, "registering user", h.devMode)
	}

	authEventsTotal.WithLabelValues("register", "success").Inc()
	slog.InfoContext(c.UserContext(), "User registered", slog.String("user_id", user.ID.String()))

	return c.Status(fiber.StatusCreated).JSON(AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    user.View(),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var request LoginRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	user, err := h.userService.Authenticate(c.UserContext(), request.Email, request.Password)
	if err != nil {
		authEventsTotal.WithLabelValues("login", "failure").Inc()
		return respondError(c, err, "logging in", h.devMode)
	}

	token, err := h.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return respondError(c, err, "logging in", h.devMode)
	}

	authEventsTotal.WithLabelValues("login", "success").Inc()

	return c.Status(fiber.StatusOK).JSON(AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    user.View(),
	})
}

func (h *AuthHandler) GetUserProfile(c *fiber.Ctx) error {
	return getProfile(c, h.userService, h.devMode)
}

func getProfile(c *fiber.Ctx, userService service.UserService, devMode bool) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	user, err := userService.GetProfile(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "fetching profile", devMode)
	}

	return c.Status(fiber.StatusOK).JSON(user.View())
}
