package domain

import (
	"time"
)

const (
	// TagNameMinLength is the minimum tag name length.
	TagNameMinLength = 3

	// TagNameMaxLength is the maximum tag name length.
	TagNameMaxLength = 50

	// TagDescriptionMaxLength is the maximum tag description length.
	TagDescriptionMaxLength = 255
)

// Tag represents a label that categorizes blogs.
// Tag names are globally unique.
type Tag struct {
	// ID is the unique identifier for the tag (auto-generated).
	ID int64 `json:"id"`

	// Name is the globally unique tag name.
	// Constraints: 3-50 characters.
	Name string `json:"name"`

	// Description is an optional free-form description.
	// Constraints: at most 255 characters.
	Description string `json:"description,omitempty"`

	// CreatedAt is the timestamp when the tag was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the tag was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTag creates a new Tag.
func NewTag(name, description string) *Tag {
	now := time.Now().UTC()
	return &Tag{
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ValidateTagName checks the tag name length constraint.
func ValidateTagName(name string) error {
	if len(name) < TagNameMinLength || len(name) > TagNameMaxLength {
		return ErrTagNameLength
	}
	return nil
}

// ValidateTagDescription checks the tag description length constraint.
func ValidateTagDescription(description string) error {
	if len(description) > TagDescriptionMaxLength {
		return ErrTagDescriptionLength
	}
	return nil
}

// BlogTagLink is a single row of the blog/tag association.
// Links have no independent lifecycle: rows are created and destroyed
// only as a side effect of blog tag updates and cascade deletes.
type BlogTagLink struct {
	// BlogID references an existing blog.
	BlogID int64 `json:"blog_id"`

	// TagID references an existing tag.
	TagID int64 `json:"tag_id"`
}
