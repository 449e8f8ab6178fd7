package model

import (
	"time"

	"github.com/google/uuid"

	"storybook/internal/domain/entity"
)

// CustomizationModel mirrors the 'customizations' table. Free-form element
// choices are stored in a JSONB column keyed by element type.
type CustomizationModel struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	StoryID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	ChildName    string            `gorm:"type:varchar(100);not null"`
	ChildGender  string            `gorm:"type:varchar(10)"`
	ChildAge     int               `gorm:"not null;default:0"`
	CustomFields map[string]string `gorm:"type:jsonb;serializer:json"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Story *StoryModel `gorm:"foreignKey:StoryID"`
}

// TableName explicitly sets the table name for GORM.
func (CustomizationModel) TableName() string {
	return "customizations"
}

// CustomizedBookModel mirrors the 'customized_books' table.
// At most one rendered book exists per customization.
type CustomizedBookModel struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CustomizationID uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex"`
	RenderedContent entity.BookContent `gorm:"type:jsonb;serializer:json;not null"`
	CoverImage      string             `gorm:"type:varchar(255)"`
	Status          string             `gorm:"type:varchar(20);not null;default:'draft'"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (CustomizedBookModel) TableName() string {
	return "customized_books"
}

// SavedBookModel mirrors the 'saved_books' table. The composite unique index
// keeps one bookmark per user and book.
type SavedBookModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_books_user_book"`
	CustomizedBookID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_books_user_book"`
	CreatedAt        time.Time

	Book *CustomizedBookModel `gorm:"foreignKey:CustomizedBookID"`
}

// TableName explicitly sets the table name for GORM.
func (SavedBookModel) TableName() string {
	return "saved_books"
}
