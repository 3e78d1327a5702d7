// Package repository defines data access interfaces for BlogAPI.
// These interfaces abstract database operations, allowing for different
// implementations (SQLite, PostgreSQL, in-memory for testing) while
// keeping the service layer clean.
package repository

import (
	"context"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/domain"
)

// =============================================================================
// User Repository
// =============================================================================

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create creates a new user and assigns its ID.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update updates an existing user.
	Update(ctx context.Context, user *domain.User) error

	// Delete deletes a user by ID, cascading to the user's blogs,
	// the comments on those blogs, the user's own comments, and the
	// tag links of the deleted blogs. All deletes happen in one
	// transaction.
	Delete(ctx context.Context, id int64) error

	// List returns all users with pagination, ordered by ID ascending.
	List(ctx context.Context, opts ListOptions) (*ListResult[domain.User], error)

	// ExistsByUsername checks if a user with the given username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail checks if a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// =============================================================================
// Blog Repository
// =============================================================================

// BlogRepository defines the interface for blog data access.
type BlogRepository interface {
	// Create creates a new blog and assigns its ID.
	Create(ctx context.Context, blog *domain.Blog) error

	// GetByID retrieves a blog by ID with its linked tags populated.
	GetByID(ctx context.Context, id int64) (*domain.Blog, error)

	// Update persists the blog's mutable fields (title, content,
	// image_url, updated_at). The author reference is never written and
	// visibility changes go through UpdatePublished.
	Update(ctx context.Context, blog *domain.Blog) error

	// UpdatePublished flips only the visibility flag.
	UpdatePublished(ctx context.Context, id int64, published bool) error

	// Delete deletes a blog by ID, cascading to its comments and tag
	// links in the same transaction.
	Delete(ctx context.Context, id int64) error

	// List returns all blogs regardless of visibility, ordered by ID
	// ascending. Intended for admin use.
	List(ctx context.Context, opts ListOptions) (*ListResult[domain.Blog], error)

	// ListPublished returns published blogs, ordered by ID ascending.
	ListPublished(ctx context.Context, opts ListOptions) (*ListResult[domain.Blog], error)

	// ListByAuthor returns all blogs by the given author, drafts
	// included, ordered by ID ascending.
	ListByAuthor(ctx context.Context, authorID int64, opts ListOptions) (*ListResult[domain.Blog], error)

	// ListPublishedByAuthor returns the author's published blogs,
	// ordered by ID ascending.
	ListPublishedByAuthor(ctx context.Context, authorID int64, opts ListOptions) (*ListResult[domain.Blog], error)

	// CountAuthors counts the distinct authors with at least one
	// published blog.
	CountAuthors(ctx context.Context) (int64, error)

	// CountPublished counts all published blogs.
	CountPublished(ctx context.Context) (int64, error)
}

// =============================================================================
// Tag Repository
// =============================================================================

// TagRepository defines the interface for tag data access.
type TagRepository interface {
	// Create creates a new tag and assigns its ID.
	Create(ctx context.Context, tag *domain.Tag) error

	// GetByID retrieves a tag by ID.
	GetByID(ctx context.Context, id int64) (*domain.Tag, error)

	// GetByName retrieves a tag by its unique name.
	GetByName(ctx context.Context, name string) (*domain.Tag, error)

	// Update updates an existing tag.
	Update(ctx context.Context, tag *domain.Tag) error

	// Delete deletes a tag by ID, removing its blog links in the same
	// transaction.
	Delete(ctx context.Context, id int64) error

	// List returns all tags with pagination, ordered by ID ascending.
	List(ctx context.Context, opts ListOptions) (*ListResult[domain.Tag], error)

	// ExistingIDs returns the subset of the given IDs that reference
	// existing tags. Used to validate desired tag sets atomically.
	ExistingIDs(ctx context.Context, ids []int64) (map[int64]struct{}, error)
}

// =============================================================================
// Comment Repository
// =============================================================================

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	// Create creates a new comment and assigns its ID.
	Create(ctx context.Context, comment *domain.Comment) error

	// GetByID retrieves a comment by ID.
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)

	// UpdateContent updates only the comment body.
	UpdateContent(ctx context.Context, id int64, content string) error

	// Delete deletes a comment by ID.
	Delete(ctx context.Context, id int64) error

	// DeleteByIDAndAuthor deletes a comment only when both the ID and
	// the author match. Returns domain.ErrCommentNotFound when no row
	// matched, whether the comment is absent or owned by someone else.
	DeleteByIDAndAuthor(ctx context.Context, id, authorID int64) error

	// ListByBlog returns the comments on a blog, ordered by ID ascending.
	ListByBlog(ctx context.Context, blogID int64, opts ListOptions) (*ListResult[domain.Comment], error)

	// ListByAuthor returns the comments written by a user, ordered by
	// ID ascending.
	ListByAuthor(ctx context.Context, authorID int64, opts ListOptions) (*ListResult[domain.Comment], error)
}

// =============================================================================
// Blog-Tag Link Repository
// =============================================================================

// BlogTagRepository manages the blog/tag association set.
// Link rows have no independent lifecycle: they are created and removed
// only as a side effect of blog mutations, inside the blog's transaction.
type BlogTagRepository interface {
	// Link inserts association rows for the given tag IDs. Pairs that
	// are already linked are left in place.
	Link(ctx context.Context, blogID int64, tagIDs []int64) error

	// Unlink removes the association rows for the given tag IDs.
	// Pairs that are not linked are ignored.
	Unlink(ctx context.Context, blogID int64, tagIDs []int64) error

	// ListTagIDs returns the IDs of the tags linked to a blog.
	ListTagIDs(ctx context.Context, blogID int64) ([]int64, error)

	// ListTags returns the tags linked to a blog, ordered by ID ascending.
	ListTags(ctx context.Context, blogID int64) ([]*domain.Tag, error)
}

// =============================================================================
// Common Types
// =============================================================================

// ListOptions contains common pagination options.
type ListOptions struct {
	// Offset is the number of records to skip.
	Offset int

	// Limit is the maximum number of records to return.
	Limit int
}

// ListResult is a generic paginated list result.
type ListResult[T any] struct {
	// Items is the list of items.
	Items []*T

	// Total is the total number of items (without pagination).
	Total int64

	// Offset is the current offset.
	Offset int

	// Limit is the current limit.
	Limit int
}

// =============================================================================
// Transaction Support
// =============================================================================

// TxManager defines the interface for transaction management.
// Implementations propagate the transaction through the context so that
// repository calls made inside fn share it.
type TxManager interface {
	// WithTx executes the given function within a transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
