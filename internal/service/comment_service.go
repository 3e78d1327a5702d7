package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/domain"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/repository"
)

// CommentService handles comment operations.
type CommentService struct {
	commentRepo repository.CommentRepository
	blogRepo    repository.BlogRepository
	logger      zerolog.Logger
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	blogRepo repository.BlogRepository,
	logger zerolog.Logger,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		blogRepo:    blogRepo,
		logger:      logger.With().Str("service", "comment").Logger(),
	}
}

// CreateCommentInput contains the data needed to create a comment.
type CreateCommentInput struct {
	Actor   domain.Actor
	BlogID  int64
	Content string
}

// CreateCommentOutput contains the created comment.
type CreateCommentOutput struct {
	Comment *domain.Comment
}

// Create creates a comment on a blog, authored by the actor.
func (s *CommentService) Create(ctx context.Context, input CreateCommentInput) (*CreateCommentOutput, error) {
	if err := domain.ValidateCommentContent(input.Content); err != nil {
		return nil, err
	}

	if _, err := s.blogRepo.GetByID(ctx, input.BlogID); err != nil {
		if errors.Is(err, domain.ErrBlogNotFound) {
			return nil, domain.ErrBlogNotFound
		}
		s.logger.Error().Err(err).Int64("blog_id", input.BlogID).Msg("failed to get blog")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	comment := domain.NewComment(input.Actor.UserID, input.BlogID, input.Content)

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		if errors.Is(err, domain.ErrBlogNotFound) {
			return nil, domain.ErrBlogNotFound
		}
		s.logger.Error().Err(err).Int64("blog_id", input.BlogID).Msg("failed to create comment")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int64("comment_id", comment.ID).
		Int64("blog_id", comment.BlogID).
		Int64("author_id", comment.AuthorID).
		Msg("comment created")

	return &CreateCommentOutput{Comment: comment}, nil
}

// GetByID retrieves a comment by ID.
func (s *CommentService) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrCommentNotFound) {
			return nil, domain.ErrCommentNotFound
		}
		s.logger.Error().Err(err).Int64("comment_id", id).Msg("failed to get comment")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return comment, nil
}

// UpdateCommentInput contains the data needed to update a comment.
type UpdateCommentInput struct {
	Actor     domain.Actor
	CommentID int64
	Content   string
}

// UpdateCommentOutput contains the updated comment.
type UpdateCommentOutput struct {
	Comment *domain.Comment
}

// Update changes a comment's content. Only the author may edit a
// comment; admins cannot edit on another user's behalf.
func (s *CommentService) Update(ctx context.Context, input UpdateCommentInput) (*UpdateCommentOutput, error) {
	if err := domain.ValidateCommentContent(input.Content); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, input.CommentID)
	if err != nil {
		if errors.Is(err, domain.ErrCommentNotFound) {
			return nil, domain.ErrCommentNotFound
		}
		s.logger.Error().Err(err).Int64("comment_id", input.CommentID).Msg("failed to get comment")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if comment.AuthorID != input.Actor.UserID {
		return nil, domain.ErrForbidden
	}

	if err := s.commentRepo.UpdateContent(ctx, comment.ID, input.Content); err != nil {
		if errors.Is(err, domain.ErrCommentNotFound) {
			return nil, domain.ErrCommentNotFound
		}
		s.logger.Error().Err(err).Int64("comment_id", comment.ID).Msg("failed to update comment")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	comment.Content = input.Content

	s.logger.Info().Int64("comment_id", comment.ID).Msg("comment updated")

	return &UpdateCommentOutput{Comment: comment}, nil
}

// Delete deletes a comment. Admins delete by ID; everyone else deletes
// by the (id, author) pair, so a comment owned by another user is
// reported as not found rather than forbidden.
func (s *CommentService) Delete(ctx context.Context, actor domain.Actor, commentID int64) error {
	var err error
	if actor.Role.IsAdmin() {
		err = s.commentRepo.Delete(ctx, commentID)
	} else {
		err = s.commentRepo.DeleteByIDAndAuthor(ctx, commentID, actor.UserID)
	}
	if err != nil {
		if errors.Is(err, domain.ErrCommentNotFound) {
			return domain.ErrCommentNotFound
		}
		s.logger.Error().Err(err).Int64("comment_id", commentID).Msg("failed to delete comment")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Int64("comment_id", commentID).Msg("comment deleted")
	return nil
}

// ListCommentsInput contains pagination options for listing comments.
type ListCommentsInput struct {
	Limit  int
	Offset int
}

// ListCommentsOutput contains the result of listing comments.
type ListCommentsOutput struct {
	Comments   []*domain.Comment
	TotalCount int64
}

// ListByBlog returns the comments on a blog, ordered by ID.
func (s *CommentService) ListByBlog(ctx context.Context, blogID int64, input ListCommentsInput) (*ListCommentsOutput, error) {
	if _, err := s.blogRepo.GetByID(ctx, blogID); err != nil {
		if errors.Is(err, domain.ErrBlogNotFound) {
			return nil, domain.ErrBlogNotFound
		}
		s.logger.Error().Err(err).Int64("blog_id", blogID).Msg("failed to get blog")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	result, err := s.commentRepo.ListByBlog(ctx, blogID, normalizeListOptions(input.Limit, input.Offset))
	if err != nil {
		s.logger.Error().Err(err).Int64("blog_id", blogID).Msg("failed to list comments")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return &ListCommentsOutput{
		Comments:   result.Items,
		TotalCount: result.Total,
	}, nil
}

// ListByAuthor returns the comments written by a user, ordered by ID.
func (s *CommentService) ListByAuthor(ctx context.Context, authorID int64, input ListCommentsInput) (*ListCommentsOutput, error) {
	result, err := s.commentRepo.ListByAuthor(ctx, authorID, normalizeListOptions(input.Limit, input.Offset))
	if err != nil {
		s.logger.Error().Err(err).Int64("author_id", authorID).Msg("failed to list comments")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return &ListCommentsOutput{
		Comments:   result.Items,
		TotalCount: result.Total,
	}, nil
}
