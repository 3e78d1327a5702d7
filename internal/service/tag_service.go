package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/domain"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/repository"
)

// TagService handles tag operations.
type TagService struct {
	tagRepo repository.TagRepository
	tx      repository.TxManager
	logger  zerolog.Logger
}

// NewTagService creates a new TagService.
func NewTagService(tagRepo repository.TagRepository, tx repository.TxManager, logger zerolog.Logger) *TagService {
	return &TagService{
		tagRepo: tagRepo,
		tx:      tx,
		logger:  logger.With().Str("service", "tag").Logger(),
	}
}

// CreateTagInput contains the data needed to create a tag.
type CreateTagInput struct {
	Name        string
	Description string
}

// CreateTagOutput contains the created tag.
type CreateTagOutput struct {
	Tag *domain.Tag
}

// Create creates a new tag. The name must be unique; the check runs
// before the write and the unique constraint backs it up.
func (s *TagService) Create(ctx context.Context, input CreateTagInput) (*CreateTagOutput, error) {
	if err := domain.ValidateTagName(input.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidateTagDescription(input.Description); err != nil {
		return nil, err
	}

	_, err := s.tagRepo.GetByName(ctx, input.Name)
	if err == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrTagAlreadyExists, input.Name)
	}
	if !errors.Is(err, domain.ErrTagNotFound) {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to check tag name")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	tag := domain.NewTag(input.Name, input.Description)

	if err := s.tagRepo.Create(ctx, tag); err != nil {
		if errors.Is(err, domain.ErrTagAlreadyExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create tag")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int64("tag_id", tag.ID).
		Str("name", tag.Name).
		Msg("tag created")

	return &CreateTagOutput{Tag: tag}, nil
}

// GetByID retrieves a tag by ID.
func (s *TagService) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTagNotFound) {
			return nil, domain.ErrTagNotFound
		}
		s.logger.Error().Err(err).Int64("tag_id", id).Msg("failed to get tag")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return tag, nil
}

// UpdateTagInput contains the data needed to update a tag.
// Nil fields are left unchanged.
type UpdateTagInput struct {
	TagID       int64
	Name        *string
	Description *string
}

// UpdateTagOutput contains the updated tag.
type UpdateTagOutput struct {
	Tag *domain.Tag
}

// Update renames a tag or changes its description. A rename to a name
// held by another tag is rejected with AlreadyExists.
func (s *TagService) Update(ctx context.Context, input UpdateTagInput) (*UpdateTagOutput, error) {
	tag, err := s.tagRepo.GetByID(ctx, input.TagID)
	if err != nil {
		if errors.Is(err, domain.ErrTagNotFound) {
			return nil, domain.ErrTagNotFound
		}
		s.logger.Error().Err(err).Int64("tag_id", input.TagID).Msg("failed to get tag")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if input.Name != nil && *input.Name != tag.Name {
		if err := domain.ValidateTagName(*input.Name); err != nil {
			return nil, err
		}

		existing, err := s.tagRepo.GetByName(ctx, *input.Name)
		if err == nil && existing.ID != tag.ID {
			return nil, fmt.Errorf("%w: %q", domain.ErrTagAlreadyExists, *input.Name)
		}
		if err != nil && !errors.Is(err, domain.ErrTagNotFound) {
			s.logger.Error().Err(err).Str("name", *input.Name).Msg("failed to check tag name")
			return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
		}

		tag.Name = *input.Name
	}

	if input.Description != nil {
		if err := domain.ValidateTagDescription(*input.Description); err != nil {
			return nil, err
		}
		tag.Description = *input.Description
	}

	if err := s.tagRepo.Update(ctx, tag); err != nil {
		if errors.Is(err, domain.ErrTagAlreadyExists) || errors.Is(err, domain.ErrTagNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("tag_id", tag.ID).Msg("failed to update tag")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Int64("tag_id", tag.ID).Msg("tag updated")

	return &UpdateTagOutput{Tag: tag}, nil
}

// Delete deletes a tag. Blogs referencing it lose the link; the blogs
// themselves are untouched. Admin only.
func (s *TagService) Delete(ctx context.Context, actor domain.Actor, tagID int64) error {
	if !actor.Role.IsAdmin() {
		return domain.ErrForbidden
	}

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		return s.tagRepo.Delete(ctx, tagID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrTagNotFound) {
			return domain.ErrTagNotFound
		}
		s.logger.Error().Err(err).Int64("tag_id", tagID).Msg("failed to delete tag")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Int64("tag_id", tagID).Msg("tag deleted")
	return nil
}

// ListTagsInput contains pagination options for listing tags.
type ListTagsInput struct {
	Limit  int
	Offset int
}

// ListTagsOutput contains the result of listing tags.
type ListTagsOutput struct {
	Tags       []*domain.Tag
	TotalCount int64
}

// List returns all tags with pagination, ordered by ID.
func (s *TagService) List(ctx context.Context, input ListTagsInput) (*ListTagsOutput, error) {
	result, err := s.tagRepo.List(ctx, normalizeListOptions(input.Limit, input.Offset))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list tags")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return &ListTagsOutput{
		Tags:       result.Items,
		TotalCount: result.Total,
	}, nil
}
