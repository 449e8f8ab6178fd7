package entity

import (
	"time"

	"github.com/google/uuid"
)

// AudienceGender describes which audience a story targets.
// Neutral stories are eligible for every requested gender.
type AudienceGender string

const (
	AudienceBoy     AudienceGender = "boy"
	AudienceGirl    AudienceGender = "girl"
	AudienceNeutral AudienceGender = "neutral"
)

// Story is a catalog template: placeholder-bearing page content plus the
// audience metadata used by the storefront filters.
type Story struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	BaseContent BookContent     `json:"baseContent"`
	CoverImage  string          `json:"coverImage"`
	MinAge      int             `json:"ageRangeMin"`
	MaxAge      int             `json:"ageRangeMax"`
	Gender      AudienceGender  `json:"gender"`
	Elements    []*StoryElement `json:"elements,omitempty"` // Populated on reads that join elements.
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// StoryProjection is the read-only story subset joined onto customizations.
type StoryProjection struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CoverImage  string `json:"coverImage"`
}

// Projection returns the read-only subset exposed alongside customizations.
func (s *Story) Projection() *StoryProjection {
	if s == nil {
		return nil
	}

	return &StoryProjection{
		Title:       s.Title,
		Description: s.Description,
		CoverImage:  s.CoverImage,
	}
}

// StoryElement describes one customizable slot within a story, ordered by
// Position within its parent.
type StoryElement struct {
	ID             uuid.UUID      `json:"id"`
	StoryID        uuid.UUID      `json:"storyId"`
	ElementType    string         `json:"elementType"`
	Content        string         `json:"content"`
	Position       int            `json:"position"`
	IsCustomizable bool           `json:"isCustomizable"`
	Options        map[string]any `json:"options,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// CustomizationOption is a selectable choice for an element type, shown by
// the storefront when a user fills a customizable slot.
type CustomizationOption struct {
	ID           uuid.UUID `json:"id"`
	ElementType  string    `json:"elementType"`
	Name         string    `json:"name"`
	Value        string    `json:"value"`
	ImagePath    string    `json:"imagePath"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// StoryFilter is the catalog filter predicate. A nil age bound means the
// bound was not supplied.
type StoryFilter struct {
	Gender string
	MinAge *int
	MaxAge *int
}

// Matches reports whether a story satisfies the filter. These are the
// reference semantics the persistence layer translates to SQL:
//   - gender matches exactly OR the story is neutral ("all" disables the check)
//   - with both bounds, the story's age interval must overlap [MinAge, MaxAge]
//   - with a single bound, it is compared against the opposite story field
func (f StoryFilter) Matches(s *Story) bool {
	if f.Gender != "" && f.Gender != "all" {
		if string(s.Gender) != f.Gender && s.Gender != AudienceNeutral {
			return false
		}
	}

	switch {
	case f.MinAge != nil && f.MaxAge != nil:
		return s.MinAge <= *f.MaxAge && s.MaxAge >= *f.MinAge
	case f.MinAge != nil:
		return s.MaxAge >= *f.MinAge
	case f.MaxAge != nil:
		return s.MinAge <= *f.MaxAge
	}

	return true
}
