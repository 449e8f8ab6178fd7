package handler

import (
	"log/slog"
	"net/http"

	"storybook/internal/delivery/http/response"
	"storybook/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CustomizationHandlerParams holds dependencies for CustomizationHandler, injected by Fx.
type CustomizationHandlerParams struct {
	fx.In

	CustomizationUC usecase.CustomizationUsecase
	Logger          *slog.Logger
}

// CustomizationHandler holds dependencies for personalization handlers.
type CustomizationHandler struct {
	customizationUC usecase.CustomizationUsecase
	logger          *slog.Logger
}

// NewCustomizationHandler is the constructor for CustomizationHandler.
func NewCustomizationHandler(params CustomizationHandlerParams) *CustomizationHandler {
	return &CustomizationHandler{
		customizationUC: params.CustomizationUC,
		logger:          params.Logger,
	}
}

// CreateCustomizationRequest represents the request body for personalizing a story
type CreateCustomizationRequest struct {
	StoryID      uuid.UUID         `json:"storyId" validate:"required"`
	ChildName    string            `json:"childName" validate:"required"`
	ChildGender  string            `json:"childGender" validate:"omitempty,oneof=boy girl other"`
	ChildAge     int               `json:"childAge" validate:"gte=0"`
	CustomFields map[string]string `json:"customFields"`
}

// UpdateCustomizationRequest represents a partial customization update
type UpdateCustomizationRequest struct {
	ChildName    string            `json:"childName"`
	ChildGender  string            `json:"childGender" validate:"omitempty,oneof=boy girl other"`
	ChildAge     int               `json:"childAge" validate:"gte=0"`
	CustomFields map[string]string `json:"customFields"`
}

// CreateCustomization personalizes a story for the authenticated user.
func (h *CustomizationHandler) CreateCustomization(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	var req CreateCustomizationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid customization input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	customization, err := h.customizationUC.CreateCustomization(c.Request().Context(), &usecase.CreateCustomizationInput{
		UserID:       userID,
		StoryID:      req.StoryID,
		ChildName:    req.ChildName,
		ChildGender:  req.ChildGender,
		ChildAge:     req.ChildAge,
		CustomFields: req.CustomFields,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, customization, "Customization created successfully")
}

// ListMine returns the authenticated user's customizations.
func (h *CustomizationHandler) ListMine(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	customizations, err := h.customizationUC.ListMine(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, customizations, "Customizations retrieved successfully")
}

// GetCustomization returns one customization. Public so share links resolve.
func (h *CustomizationHandler) GetCustomization(c echo.Context) error {
	customizationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid customization ID")
	}

	customization, err := h.customizationUC.GetCustomization(c.Request().Context(), customizationID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, customization, "Customization retrieved successfully")
}

// UpdateCustomization applies a partial update to an owned customization.
func (h *CustomizationHandler) UpdateCustomization(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	customizationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid customization ID")
	}

	var req UpdateCustomizationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid customization input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	customization, err := h.customizationUC.UpdateCustomization(c.Request().Context(), &usecase.UpdateCustomizationInput{
		ID:           customizationID,
		UserID:       userID,
		ChildName:    req.ChildName,
		ChildGender:  req.ChildGender,
		ChildAge:     req.ChildAge,
		CustomFields: req.CustomFields,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, customization, "Customization updated successfully")
}

// DeleteCustomization removes an owned customization.
func (h *CustomizationHandler) DeleteCustomization(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	customizationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid customization ID")
	}

	if err := h.customizationUC.DeleteCustomization(c.Request().Context(), customizationID, userID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Customization deleted"}, "Customization deleted successfully")
}

// GenerateBook renders the owned customization into its personalized book.
func (h *CustomizationHandler) GenerateBook(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	customizationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid customization ID")
	}

	book, err := h.customizationUC.GenerateBook(c.Request().Context(), customizationID, userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, book, "Book generated successfully")
}

// GetBook returns a rendered book. Public so QR share links resolve.
func (h *CustomizationHandler) GetBook(c echo.Context) error {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid book ID")
	}

	book, err := h.customizationUC.GetBook(c.Request().Context(), bookID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, book, "Book retrieved successfully")
}

// GetBookQRCode streams a PNG QR code for sharing the rendered book.
func (h *CustomizationHandler) GetBookQRCode(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	customizationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid customization ID")
	}

	png, err := h.customizationUC.GetBookQRCode(c.Request().Context(), customizationID, userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// getUserID extracts the user ID from the context
func (h *CustomizationHandler) getUserID(c echo.Context) (uuid.UUID, error) {
	userIDVal := c.Get("userID")
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, response.Unauthorized(c, "TOKEN_INVALID", "Invalid user ID in token")
	}

	return userID, nil
}
