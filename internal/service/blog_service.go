package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/domain"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/repository"
)

// BlogService handles blog operations, including tag reconciliation
// and visibility toggling.
type BlogService struct {
	blogRepo    repository.BlogRepository
	tagRepo     repository.TagRepository
	blogTagRepo repository.BlogTagRepository
	tx          repository.TxManager
	policy      Policy
	logger      zerolog.Logger
}

// NewBlogService creates a new BlogService.
func NewBlogService(
	blogRepo repository.BlogRepository,
	tagRepo repository.TagRepository,
	blogTagRepo repository.BlogTagRepository,
	tx repository.TxManager,
	policy Policy,
	logger zerolog.Logger,
) *BlogService {
	return &BlogService{
		blogRepo:    blogRepo,
		tagRepo:     tagRepo,
		blogTagRepo: blogTagRepo,
		tx:          tx,
		policy:      policy,
		logger:      logger.With().Str("service", "blog").Logger(),
	}
}

// CreateBlogInput contains the data needed to create a blog.
type CreateBlogInput struct {
	Actor    domain.Actor
	Title    string
	Content  string
	ImageURL string
	TagIDs   []int64
}

// CreateBlogOutput contains the created blog with its tags populated.
type CreateBlogOutput struct {
	Blog *domain.Blog
}

// Create creates a new blog as a draft authored by the actor and links
// the requested tags. Unknown tag IDs reject the whole operation.
func (s *BlogService) Create(ctx context.Context, input CreateBlogInput) (*CreateBlogOutput, error) {
	if input.Title == "" {
		return nil, domain.ErrBlogTitleEmpty
	}
	if input.Content == "" {
		return nil, domain.ErrBlogContentEmpty
	}

	if err := s.verifyTagIDs(ctx, input.TagIDs); err != nil {
		return nil, err
	}

	blog := domain.NewBlog(input.Actor.UserID, input.Title, input.Content)
	if input.ImageURL != "" {
		blog.ImageURL = input.ImageURL
	}

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.blogRepo.Create(ctx, blog); err != nil {
			return err
		}
		return s.blogTagRepo.Link(ctx, blog.ID, input.TagIDs)
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnknownTag) {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("author_id", input.Actor.UserID).Msg("failed to create blog")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	tags, err := s.blogTagRepo.ListTags(ctx, blog.ID)
	if err != nil {
		s.logger.Error().Err(err).Int64("blog_id", blog.ID).Msg("failed to load blog tags")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	blog.Tags = tags

	s.logger.Info().
		Int64("blog_id", blog.ID).
		Int64("author_id", blog.AuthorID).
		Int("tags", len(tags)).
		Msg("blog created")

	return &CreateBlogOutput{Blog: blog}, nil
}

// GetByID retrieves a blog by ID with its tags.
func (s *BlogService) GetByID(ctx context.Context, id int64) (*domain.Blog, error) {
	blog, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrBlogNotFound) {
			return nil, domain.ErrBlogNotFound
		}
		s.logger.Error().Err(err).Int64("blog_id", id).Msg("failed to get blog")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return blog, nil
}

// UpdateBlogInput contains the data needed to update a blog.
// Nil field pointers are left unchanged. A nil TagIDs slice leaves the
// tag set alone; an empty non-nil slice clears it.
type UpdateBlogInput struct {
	Actor    domain.Actor
	BlogID   int64
	Title    *string
	Content  *string
	ImageURL *string
	TagIDs   []int64
}

// UpdateBlogOutput contains the updated blog with its tags populated.
type UpdateBlogOutput struct {
	Blog *domain.Blog
}

// Update updates a blog's fields and reconciles its tag set in a
// single transaction. Only the owner or an admin may update; NotFound
// is resolved before the ownership check.
func (s *BlogService) Update(ctx context.Context, input UpdateBlogInput) (*UpdateBlogOutput, error) {
	blog, err := s.blogRepo.GetByID(ctx, input.BlogID)
	if err != nil {
		if errors.Is(err, domain.ErrBlogNotFound) {
			return nil, domain.ErrBlogNotFound
		}
		s.logger.Error().Err(err).Int64("blog_id", input.BlogID).Msg("failed to get blog")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if err := s.policy.Authorize(input.Actor, blog.AuthorID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, domain.ErrBlogTitleEmpty
		}
		blog.Title = *input.Title
	}
	if input.Content != nil {
		if *input.Content == "" {
			return nil, domain.ErrBlogContentEmpty
		}
		blog.Content = *input.Content
	}
	if input.ImageURL != nil {
		blog.ImageURL = *input.ImageURL
	}

	if input.TagIDs != nil {
		if err := s.verifyTagIDs(ctx, input.TagIDs); err != nil {
			return nil, err
		}
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.blogRepo.Update(ctx, blog); err != nil {
			return err
		}

		if input.TagIDs == nil {
			return nil
		}

		current, err := s.blogTagRepo.ListTagIDs(ctx, blog.ID)
		if err != nil {
			return err
		}

		changes := ReconcileTags(current, input.TagIDs)
		if changes.Empty() {
			return nil
		}

		if err := s.blogTagRepo.Link(ctx, blog.ID, changes.ToAdd); err != nil {
			return err
		}
		return s.blogTagRepo.Unlink(ctx, blog.ID, changes.ToRemove)
	})
	if err != nil {
		if errors.Is(err, domain.ErrBlogNotFound) || errors.Is(err, domain.ErrUnknownTag) {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("blog_id", blog.ID).Msg("failed to update blog")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	tags, err := s.blogTagRepo.ListTags(ctx, blog.ID)
	if err != nil {
		s.logger.Error().Err(err).Int64("blog_id", blog.ID).Msg("failed to load blog tags")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	blog.Tags = tags

	s.logger.Info().Int64("blog_id", blog.ID).Msg("blog updated")

	return &UpdateBlogOutput{Blog: blog}, nil
}

// SetPublished toggles the blog's visibility. Only the owner or an
// admin may do so.
func (s *BlogService) SetPublished(ctx context.Context, actor domain.Actor, blogID int64, published bool) error {
	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		if errors.Is(err, domain.ErrBlogNotFound) {
			return domain.ErrBlogNotFound
		}
		s.logger.Error().Err(err).Int64("blog_id", blogID).Msg("failed to get blog")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if err := s.policy.Authorize(actor, blog.AuthorID); err != nil {
		return err
	}

	if err := s.blogRepo.UpdatePublished(ctx, blogID, published); err != nil {
		if errors.Is(err, domain.ErrBlogNotFound) {
			return domain.ErrBlogNotFound
		}
		s.logger.Error().Err(err).Int64("blog_id", blogID).Msg("failed to update blog visibility")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int64("blog_id", blogID).
		Bool("published", published).
		Msg("blog visibility updated")

	return nil
}

// UpdateImage stores a new image URL for the blog and returns the
// previous one so the caller can clean up the blob. Only the owner or
// an admin may do so.
func (s *BlogService) UpdateImage(ctx context.Context, actor domain.Actor, blogID int64, imageURL string) (previous string, err error) {
	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		if errors.Is(err, domain.ErrBlogNotFound) {
			return "", domain.ErrBlogNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if err := s.policy.Authorize(actor, blog.AuthorID); err != nil {
		return "", err
	}

	previous = blog.ImageURL
	blog.ImageURL = imageURL

	if err := s.blogRepo.Update(ctx, blog); err != nil {
		s.logger.Error().Err(err).Int64("blog_id", blogID).Msg("failed to update blog image")
		return "", fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Int64("blog_id", blogID).Msg("blog image updated")
	return previous, nil
}

// Delete deletes a blog along with its comments and tag links. Only
// the owner or an admin may do so.
func (s *BlogService) Delete(ctx context.Context, actor domain.Actor, blogID int64) error {
	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		if errors.Is(err, domain.ErrBlogNotFound) {
			return domain.ErrBlogNotFound
		}
		s.logger.Error().Err(err).Int64("blog_id", blogID).Msg("failed to get blog")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if err := s.policy.Authorize(actor, blog.AuthorID); err != nil {
		return err
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		return s.blogRepo.Delete(ctx, blogID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrBlogNotFound) {
			return domain.ErrBlogNotFound
		}
		s.logger.Error().Err(err).Int64("blog_id", blogID).Msg("failed to delete blog")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Int64("blog_id", blogID).Msg("blog deleted")
	return nil
}

// ListBlogsInput contains pagination options for listing blogs.
type ListBlogsInput struct {
	Limit  int
	Offset int
}

// ListBlogsOutput contains the result of listing blogs.
type ListBlogsOutput struct {
	Blogs      []*domain.Blog
	TotalCount int64
}

// ListPublished returns published blogs with pagination.
func (s *BlogService) ListPublished(ctx context.Context, input ListBlogsInput) (*ListBlogsOutput, error) {
	result, err := s.blogRepo.ListPublished(ctx, normalizeListOptions(input.Limit, input.Offset))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list published blogs")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return &ListBlogsOutput{
		Blogs:      result.Items,
		TotalCount: result.Total,
	}, nil
}

// List returns all blogs regardless of visibility. Admin only.
func (s *BlogService) List(ctx context.Context, actor domain.Actor, input ListBlogsInput) (*ListBlogsOutput, error) {
	if !actor.Role.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	result, err := s.blogRepo.List(ctx, normalizeListOptions(input.Limit, input.Offset))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list blogs")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return &ListBlogsOutput{
		Blogs:      result.Items,
		TotalCount: result.Total,
	}, nil
}

// ListByAuthor returns an author's blogs. The author themselves and
// admins see drafts; everyone else sees only published blogs.
func (s *BlogService) ListByAuthor(ctx context.Context, actor domain.Actor, authorID int64, input ListBlogsInput) (*ListBlogsOutput, error) {
	opts := normalizeListOptions(input.Limit, input.Offset)

	var result *repository.ListResult[domain.Blog]
	var err error
	if actor.Role.IsAdmin() || actor.UserID == authorID {
		result, err = s.blogRepo.ListByAuthor(ctx, authorID, opts)
	} else {
		result, err = s.blogRepo.ListPublishedByAuthor(ctx, authorID, opts)
	}
	if err != nil {
		s.logger.Error().Err(err).Int64("author_id", authorID).Msg("failed to list blogs by author")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return &ListBlogsOutput{
		Blogs:      result.Items,
		TotalCount: result.Total,
	}, nil
}

// Stats returns publication counts for the stats endpoint.
func (s *BlogService) Stats(ctx context.Context) (*domain.BlogStats, error) {
	published, err := s.blogRepo.CountPublished(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count published blogs")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	authors, err := s.blogRepo.CountAuthors(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count authors")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return &domain.BlogStats{
		PublishedCount: published,
		AuthorCount:    authors,
	}, nil
}

// verifyTagIDs rejects the operation when any of the given tag IDs
// does not reference an existing tag.
func (s *BlogService) verifyTagIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	existing, err := s.tagRepo.ExistingIDs(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to verify tag ids")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	for _, id := range ids {
		if _, ok := existing[id]; !ok {
			return fmt.Errorf("%w: tag %d", domain.ErrUnknownTag, id)
		}
	}
	return nil
}
