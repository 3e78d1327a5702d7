package domain

import (
	"time"
)

// DefaultBlogImage is the placeholder URL assigned to blogs without a
// cover image.
const DefaultBlogImage = "https://static.blogapi.dev/placeholders/blog.png"

// Blog represents a blog post.
// A blog is owned by its author; the author never changes after creation.
type Blog struct {
	// ID is the unique identifier for the blog (auto-generated).
	ID int64 `json:"id"`

	// Title is the non-empty title of the post.
	Title string `json:"title"`

	// Content is the non-empty body of the post.
	Content string `json:"content"`

	// AuthorID is the ID of the user who authored the blog.
	// Immutable after creation.
	AuthorID int64 `json:"author_id"`

	// IsPublished is the visibility state of the blog.
	// Draft blogs are only visible to their author and admins.
	IsPublished bool `json:"is_published"`

	// ImageURL is the URL of the blog's cover image.
	ImageURL string `json:"image_url"`

	// CreatedAt is the timestamp when the blog was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the blog was last updated.
	UpdatedAt time.Time `json:"updated_at"`

	// Tags are the tags currently linked to the blog.
	// Populated by reads; not written directly (links go through the
	// blog-tag gateway).
	Tags []*Tag `json:"tags,omitempty"`
}

// NewBlog creates a new draft Blog with default values.
func NewBlog(authorID int64, title, content string) *Blog {
	now := time.Now().UTC()
	return &Blog{
		Title:       title,
		Content:     content,
		AuthorID:    authorID,
		IsPublished: false,
		ImageURL:    DefaultBlogImage,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TagIDs returns the IDs of the tags linked to the blog.
func (b *Blog) TagIDs() []int64 {
	ids := make([]int64, 0, len(b.Tags))
	for _, t := range b.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// BlogStats holds aggregate counts over the blogs table.
type BlogStats struct {
	// PublishedCount is the number of published blogs.
	PublishedCount int64 `json:"published_count"`

	// AuthorCount is the number of blogs by a specific author,
	// drafts included. Zero when no author filter was applied.
	AuthorCount int64 `json:"author_count,omitempty"`
}
