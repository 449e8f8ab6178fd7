package entity

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ChildGender is the gender recorded for the personalized child character.
type ChildGender string

const (
	ChildBoy   ChildGender = "boy"
	ChildGirl  ChildGender = "girl"
	ChildOther ChildGender = "other"
)

// BookStatus is the lifecycle state of a customized book. A book becomes
// final only through a successful render; clients never set it directly.
type BookStatus string

const (
	BookStatusDraft    BookStatus = "draft"
	BookStatusFinal    BookStatus = "final"
	BookStatusArchived BookStatus = "archived"
)

// Customization records one user's personalization choices for a story.
// At most one CustomizedBook exists per customization.
type Customization struct {
	ID           uuid.UUID         `json:"id"`
	UserID       uuid.UUID         `json:"userId"`
	StoryID      uuid.UUID         `json:"storyId"`
	Name         string            `json:"childName"`
	Gender       ChildGender       `json:"childGender"`
	Age          int               `json:"childAge"`
	CustomFields map[string]string `json:"customFields,omitempty"`
	Story        *Story            `json:"story,omitempty"` // Populated on reads that join the story.
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// Replacements builds the ordered substitution sequence for rendering:
// the child's name first, then the custom fields sorted by key so repeated
// renders are deterministic. Token sets are disjoint by construction; if a
// custom field reuses a token, the last applied replacement wins.
func (c *Customization) Replacements() []Replacement {
	replacements := make([]Replacement, 0, len(c.CustomFields)+1)
	replacements = append(replacements, Replacement{Placeholder: "name", Value: c.Name})

	keys := make([]string, 0, len(c.CustomFields))
	for key := range c.CustomFields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		replacements = append(replacements, Replacement{Placeholder: key, Value: c.CustomFields[key]})
	}

	return replacements
}

// CoverImagePath synthesizes the cover path for one render. The path is
// identity-bearing: it embeds the customization id and the render instant,
// so repeated renders of the same customization produce distinct paths.
func (c *Customization) CoverImagePath(renderedAt time.Time) string {
	return fmt.Sprintf("/covers/customized/%s_%d.jpg", c.ID, renderedAt.UnixNano())
}

// CustomizedBook is the rendered result of a customization: the story's base
// content with every placeholder substituted.
type CustomizedBook struct {
	ID              uuid.UUID   `json:"id"`
	CustomizationID uuid.UUID   `json:"customizationId"`
	RenderedContent BookContent `json:"renderedContent"`
	CoverImage      string      `json:"coverImage"`
	Status          BookStatus  `json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}
