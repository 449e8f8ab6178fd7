package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"storybook/internal/delivery/http/response"
	"storybook/internal/domain/entity"
	"storybook/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// StoryHandlerParams holds dependencies for StoryHandler, injected by Fx.
type StoryHandlerParams struct {
	fx.In

	StoryUC usecase.StoryUsecase
	Logger  *slog.Logger
}

// StoryHandler holds dependencies for catalog handlers.
type StoryHandler struct {
	storyUC usecase.StoryUsecase
	logger  *slog.Logger
}

// NewStoryHandler is the constructor for StoryHandler.
func NewStoryHandler(params StoryHandlerParams) *StoryHandler {
	return &StoryHandler{
		storyUC: params.StoryUC,
		logger:  params.Logger,
	}
}

// StoryElementRequest represents one element attached to a new story
type StoryElementRequest struct {
	ElementType    string         `json:"elementType" validate:"required"`
	Content        string         `json:"content"`
	Position       int            `json:"position"`
	IsCustomizable bool           `json:"isCustomizable"`
	Options        map[string]any `json:"options"`
}

// CreateStoryRequest represents the request body for adding a story
type CreateStoryRequest struct {
	Title       string                `json:"title" validate:"required"`
	Description string                `json:"description"`
	BaseContent entity.BookContent    `json:"baseContent"`
	CoverImage  string                `json:"coverImage"`
	AgeRangeMin int                   `json:"ageRangeMin" validate:"gte=0"`
	AgeRangeMax int                   `json:"ageRangeMax" validate:"gte=0"`
	Gender      string                `json:"gender" validate:"omitempty,oneof=boy girl neutral"`
	Elements    []StoryElementRequest `json:"elements"`
}

// UpdateStoryRequest represents a partial story update
type UpdateStoryRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	BaseContent *entity.BookContent `json:"baseContent"`
	CoverImage  string              `json:"coverImage"`
	AgeRangeMin *int                `json:"ageRangeMin" validate:"omitempty,gte=0"`
	AgeRangeMax *int                `json:"ageRangeMax" validate:"omitempty,gte=0"`
	Gender      string              `json:"gender" validate:"omitempty,oneof=boy girl neutral"`
}

// ListStories returns the whole catalog.
func (h *StoryHandler) ListStories(c echo.Context) error {
	stories, err := h.storyUC.ListStories(c.Request().Context(), entity.StoryFilter{})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, stories, "Stories retrieved successfully")
}

// FilterStories returns the catalog narrowed by gender and age bounds.
func (h *StoryHandler) FilterStories(c echo.Context) error {
	filter := entity.StoryFilter{Gender: c.QueryParam("gender")}

	if raw := c.QueryParam("minAge"); raw != "" {
		minAge, err := strconv.Atoi(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_QUERY", "minAge must be a number")
		}
		filter.MinAge = &minAge
	}
	if raw := c.QueryParam("maxAge"); raw != "" {
		maxAge, err := strconv.Atoi(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_QUERY", "maxAge must be a number")
		}
		filter.MaxAge = &maxAge
	}

	stories, err := h.storyUC.ListStories(c.Request().Context(), filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, stories, "Stories retrieved successfully")
}

// GetStory returns one story with its elements.
func (h *StoryHandler) GetStory(c echo.Context) error {
	storyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid story ID")
	}

	story, err := h.storyUC.GetStory(c.Request().Context(), storyID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, story, "Story retrieved successfully")
}

// ListElements returns a story's elements in display order.
func (h *StoryHandler) ListElements(c echo.Context) error {
	storyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid story ID")
	}

	elements, err := h.storyUC.ListElements(c.Request().Context(), storyID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, elements, "Story elements retrieved successfully")
}

// ListOptions returns the selectable choices for an element type.
func (h *StoryHandler) ListOptions(c echo.Context) error {
	options, err := h.storyUC.ListOptions(c.Request().Context(), c.Param("type"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, options, "Customization options retrieved successfully")
}

// CreateStory adds a story to the catalog.
func (h *StoryHandler) CreateStory(c echo.Context) error {
	var req CreateStoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid story input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	elements := make([]usecase.StoryElementInput, 0, len(req.Elements))
	for _, element := range req.Elements {
		elements = append(elements, usecase.StoryElementInput{
			ElementType:    element.ElementType,
			Content:        element.Content,
			Position:       element.Position,
			IsCustomizable: element.IsCustomizable,
			Options:        element.Options,
		})
	}

	story, err := h.storyUC.CreateStory(c.Request().Context(), &usecase.CreateStoryInput{
		Title:       req.Title,
		Description: req.Description,
		BaseContent: req.BaseContent,
		CoverImage:  req.CoverImage,
		MinAge:      req.AgeRangeMin,
		MaxAge:      req.AgeRangeMax,
		Gender:      req.Gender,
		Elements:    elements,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, story, "Story created successfully")
}

// UpdateStory applies a partial update to a story.
func (h *StoryHandler) UpdateStory(c echo.Context) error {
	storyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid story ID")
	}

	var req UpdateStoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid story input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	story, err := h.storyUC.UpdateStory(c.Request().Context(), &usecase.UpdateStoryInput{
		ID:          storyID,
		Title:       req.Title,
		Description: req.Description,
		BaseContent: req.BaseContent,
		CoverImage:  req.CoverImage,
		MinAge:      req.AgeRangeMin,
		MaxAge:      req.AgeRangeMax,
		Gender:      req.Gender,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, story, "Story updated successfully")
}

// DeleteStory removes a story from the catalog.
func (h *StoryHandler) DeleteStory(c echo.Context) error {
	storyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid story ID")
	}

	if err := h.storyUC.DeleteStory(c.Request().Context(), storyID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Story deleted"}, "Story deleted successfully")
}
