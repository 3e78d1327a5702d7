package domain

import (
	"time"
)

const (
	// CommentMinLength is the minimum comment content length.
	CommentMinLength = 1

	// CommentMaxLength is the maximum comment content length.
	CommentMaxLength = 500
)

// Comment represents a comment left on a blog.
// The author and blog references are immutable after creation.
type Comment struct {
	// ID is the unique identifier for the comment (auto-generated).
	ID int64 `json:"id"`

	// Content is the comment body. Constraints: 1-500 characters.
	Content string `json:"content"`

	// AuthorID is the ID of the user who wrote the comment.
	// Immutable after creation.
	AuthorID int64 `json:"author_id"`

	// BlogID is the ID of the blog the comment belongs to.
	// Immutable after creation.
	BlogID int64 `json:"blog_id"`

	// CreatedAt is the timestamp when the comment was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the comment was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewComment creates a new Comment.
func NewComment(authorID, blogID int64, content string) *Comment {
	now := time.Now().UTC()
	return &Comment{
		Content:   content,
		AuthorID:  authorID,
		BlogID:    blogID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ValidateCommentContent checks the comment length constraint.
func ValidateCommentContent(content string) error {
	if len(content) < CommentMinLength || len(content) > CommentMaxLength {
		return ErrCommentLength
	}
	return nil
}
