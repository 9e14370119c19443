package api

import (
	"account-service/internal/model"
	"account-service/internal/service"
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AvatarPresigner interface {
	GeneratePresignedUploadURL(ctx context.Context, objectKey string) (string, error)
	PublicURL(objectKey string) string
}

type UserHandler struct {
	userService service.UserService
	validate    *validator.Validate
	presigner   AvatarPresigner
	objectKey   func(userID uuid.UUID) string
	devMode     bool
}

func NewUserHandler(userService service.UserService, devMode bool) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
		devMode:     devMode,
	}
}

// WithAvatarUploads enables the avatar upload URL endpoint.
func (h *UserHandler) WithAvatarUploads(presigner AvatarPresigner, objectKey func(userID uuid.UUID) string) *UserHandler {
	h.presigner = presigner
	h.objectKey = objectKey
	return h
}

func (h *UserHandler) AvatarUploadsEnabled() bool {
	return h.presigner != nil
}

type UpdateUserProfileRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Language  *string `json:"language,omitempty" validate:"omitempty,max=50"`
	Level     *string `json:"level,omitempty" validate:"omitempty,max=50"`
	Reason    *string `json:"reason,omitempty" validate:"omitempty,max=255"`
	DailyGoal *int    `json:"dailyGoal,omitempty" validate:"omitempty,min=0,max=1440"`
	AvatarURL *string `json:"avatarUrl,omitempty" validate:"omitempty,url"`
}

type PreferencesRequest struct {
	Language  *string `json:"language,omitempty" validate:"omitempty,max=50"`
	Level     *string `json:"level,omitempty" validate:"omitempty,max=50"`
	Reason    *string `json:"reason,omitempty" validate:"omitempty,max=255"`
	DailyGoal *int    `json:"dailyGoal,omitempty" validate:"omitempty,min=0,max=1440"`
}

func (h *UserHandler) GetUserProfile(c *fiber.Ctx) error {
	return getProfile(c, h.userService, h.devMode)
}

func (h *UserHandler) UpdateUserProfile(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var req UpdateUserProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	updatedUser, err := h.userService.UpdateProfile(c.UserContext(), userID, service.UpdateProfileParams{
		Name:      req.Name,
		Language:  req.Language,
		Level:     req.Level,
		Reason:    req.Reason,
		DailyGoal: req.DailyGoal,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return respondError(c, err, "updating profile", h.devMode)
	}

	return c.Status(fiber.StatusOK).JSON(updatedUser.View())
}

func (h *UserHandler) GetPreferences(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	prefs, err := h.userService.GetPreferences(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "fetching preferences", h.devMode)
	}

	return c.Status(fiber.StatusOK).JSON(prefs)
}

func (h *UserHandler) SavePreferences(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var req PreferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	prefs, err := h.userService.SavePreferences(c.UserContext(), userID, model.Preferences{
		Language:  req.Language,
		Level:     req.Level,
		Reason:    req.Reason,
		DailyGoal: req.DailyGoal,
	})
	if err != nil {
		return respondError(c, err, "saving preferences", h.devMode)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":     "Preferences saved successfully",
		"preferences": prefs,
	})
}

func (h *UserHandler) GetAvatarUploadURL(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	objectKey := h.objectKey(userID)

	uploadURL, err := h.presigner.GeneratePresignedUploadURL(c.UserContext(), objectKey)
	if err != nil {
		return respondError(c, err, "generating upload URL", h.devMode)
	}

	return c.JSON(fiber.Map{
		"upload_url":      uploadURL,
		"final_image_url": h.presigner.PublicURL(objectKey),
	})
}
