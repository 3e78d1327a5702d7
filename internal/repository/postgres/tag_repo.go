package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/domain"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/repository"
)

const tagEntity = "tag"

const tagColumns = `id, name, description, created_at, updated_at`

// tagRepository implements repository.TagRepository for PostgreSQL.
type tagRepository struct {
	db *DB
}

// NewTagRepository creates a new PostgreSQL tag repository.
func NewTagRepository(db *DB) repository.TagRepository {
	return &tagRepository{db: db}
}

// Create creates a new tag.
func (r *tagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	query := `
		INSERT INTO tags (name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.conn(ctx).QueryRow(ctx, query,
		tag.Name,
		tag.Description,
		tag.CreatedAt,
		tag.UpdatedAt,
	).Scan(&tag.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %q", domain.ErrTagAlreadyExists, tag.Name)
		}
		return domain.NewStorageError("create", tagEntity, err)
	}

	return nil
}

func scanTag(row interface{ Scan(...any) error }) (*domain.Tag, error) {
	tag := &domain.Tag{}

	err := row.Scan(
		&tag.ID,
		&tag.Name,
		&tag.Description,
		&tag.CreatedAt,
		&tag.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// GetByID retrieves a tag by ID.
func (r *tagRepository) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags WHERE id = $1`

	tag, err := scanTag(r.db.conn(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrTagNotFound
		}
		return nil, domain.NewStorageError("get", tagEntity, err)
	}
	return tag, nil
}

// GetByName retrieves a tag by its unique name.
func (r *tagRepository) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags WHERE name = $1`

	tag, err := scanTag(r.db.conn(ctx).QueryRow(ctx, query, name))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrTagNotFound
		}
		return nil, domain.NewStorageError("get", tagEntity, err)
	}
	return tag, nil
}

// Update updates a tag's name and description.
func (r *tagRepository) Update(ctx context.Context, tag *domain.Tag) error {
	tag.UpdatedAt = time.Now().UTC()

	query := `UPDATE tags SET name = $1, description = $2, updated_at = $3 WHERE id = $4`

	cmdTag, err := r.db.conn(ctx).Exec(ctx, query,
		tag.Name,
		tag.Description,
		tag.UpdatedAt,
		tag.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %q", domain.ErrTagAlreadyExists, tag.Name)
		}
		return domain.NewStorageError("update", tagEntity, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return domain.ErrTagNotFound
	}

	return nil
}

// Delete deletes a tag by ID, removing its blog links first.
func (r *tagRepository) Delete(ctx context.Context, id int64) error {
	conn := r.db.conn(ctx)

	if _, err := conn.Exec(ctx, `DELETE FROM blogs_tags WHERE tag_id = $1`, id); err != nil {
		return domain.NewStorageError("delete", tagEntity, err)
	}

	cmdTag, err := conn.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return domain.NewStorageError("delete", tagEntity, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return domain.ErrTagNotFound
	}

	return nil
}

// List returns all tags with pagination, ordered by ID ascending.
func (r *tagRepository) List(ctx context.Context, opts repository.ListOptions) (*repository.ListResult[domain.Tag], error) {
	conn := r.db.conn(ctx)

	var total int64
	if err := conn.QueryRow(ctx, `SELECT COUNT(*) FROM tags`).Scan(&total); err != nil {
		return nil, domain.NewStorageError("list", tagEntity, err)
	}

	query := `SELECT ` + tagColumns + ` FROM tags ORDER BY id ASC LIMIT $1 OFFSET $2`

	rows, err := conn.Query(ctx, query, opts.Limit, opts.Offset)
	if err != nil {
		return nil, domain.NewStorageError("list", tagEntity, err)
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, domain.NewStorageError("list", tagEntity, err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("list", tagEntity, err)
	}

	return &repository.ListResult[domain.Tag]{
		Items:  tags,
		Total:  total,
		Offset: opts.Offset,
		Limit:  opts.Limit,
	}, nil
}

// ExistingIDs returns the subset of the given tag IDs that exist,
// as a set.
func (r *tagRepository) ExistingIDs(ctx context.Context, ids []int64) (map[int64]struct{}, error) {
	existing := make(map[int64]struct{}, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	rows, err := r.db.conn(ctx).Query(ctx, `SELECT id FROM tags WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, domain.NewStorageError("exists", tagEntity, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, domain.NewStorageError("exists", tagEntity, err)
		}
		existing[id] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("exists", tagEntity, err)
	}

	return existing, nil
}

var _ repository.TagRepository = (*tagRepository)(nil)
