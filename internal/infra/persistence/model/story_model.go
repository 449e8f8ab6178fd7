package model

import (
	"time"

	"github.com/google/uuid"

	"storybook/internal/domain/entity"
)

// StoryModel mirrors the 'stories' table. Page content lives in a JSONB
// column handled by GORM's json serializer.
type StoryModel struct {
	ID          uuid.UUID          `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Title       string             `gorm:"type:varchar(255);not null"`
	Description string             `gorm:"type:text"`
	BaseContent entity.BookContent `gorm:"type:jsonb;serializer:json;not null"`
	CoverImage  string             `gorm:"type:varchar(255)"`
	AgeRangeMin int                `gorm:"not null;default:0"`
	AgeRangeMax int                `gorm:"not null;default:12"`
	Gender      string             `gorm:"type:varchar(10);not null;default:'neutral'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Elements []StoryElementModel `gorm:"foreignKey:StoryID"`
}

// TableName explicitly sets the table name for GORM.
func (StoryModel) TableName() string {
	return "stories"
}

// StoryElementModel mirrors the 'story_elements' table. StoryID references stories.id (UUID).
type StoryElementModel struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	StoryID        uuid.UUID      `gorm:"type:uuid;not null;index"`
	ElementType    string         `gorm:"type:varchar(50);not null"`
	Content        string         `gorm:"type:text"`
	Position       int            `gorm:"not null;default:0"`
	IsCustomizable bool           `gorm:"not null;default:true"`
	Options        map[string]any `gorm:"type:jsonb;serializer:json"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (StoryElementModel) TableName() string {
	return "story_elements"
}

// CustomizationOptionModel mirrors the 'customization_options' table.
// Options are grouped by element type, not bound to a single story.
type CustomizationOptionModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ElementType  string    `gorm:"type:varchar(50);not null;index"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Value        string    `gorm:"type:varchar(255);not null"`
	ImagePath    string    `gorm:"type:varchar(255)"`
	DisplayOrder int       `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (CustomizationOptionModel) TableName() string {
	return "customization_options"
}
