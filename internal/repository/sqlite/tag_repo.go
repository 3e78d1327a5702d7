package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/domain"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/repository"
)

const tagEntity = "tag"

const tagColumns = `id, name, description, created_at, updated_at`

// tagRepository implements repository.TagRepository for SQLite.
type tagRepository struct {
	db *DB
}

// NewTagRepository creates a new SQLite tag repository.
func NewTagRepository(db *DB) repository.TagRepository {
	return &tagRepository{db: db}
}

// Create creates a new tag.
func (r *tagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	query := `
		INSERT INTO tags (name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.conn(ctx).ExecContext(ctx, query,
		tag.Name,
		tag.Description,
		tag.CreatedAt.Format(time.RFC3339),
		tag.UpdatedAt.Format(time.RFC3339),
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %q", domain.ErrTagAlreadyExists, tag.Name)
		}
		return domain.NewStorageError("create", tagEntity, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.NewStorageError("create", tagEntity, err)
	}
	tag.ID = id

	return nil
}

func scanTag(row interface{ Scan(...interface{}) error }) (*domain.Tag, error) {
	tag := &domain.Tag{}
	var createdAt, updatedAt string

	err := row.Scan(
		&tag.ID,
		&tag.Name,
		&tag.Description,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	tag.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	tag.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return tag, nil
}

// GetByID retrieves a tag by ID.
func (r *tagRepository) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags WHERE id = ?`

	tag, err := scanTag(r.db.conn(ctx).QueryRowContext(ctx, query, id))
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
	query := `SELECT ` + tagColumns + ` FROM tags WHERE name = ?`

	tag, err := scanTag(r.db.conn(ctx).QueryRowContext(ctx, query, name))
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

	query := `UPDATE tags SET name = ?, description = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.conn(ctx).ExecContext(ctx, query,
		tag.Name,
		tag.Description,
		tag.UpdatedAt.Format(time.RFC3339),
		tag.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %q", domain.ErrTagAlreadyExists, tag.Name)
		}
		return domain.NewStorageError("update", tagEntity, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrTagNotFound
	}

	return nil
}

// Delete deletes a tag by ID, removing its blog links first.
func (r *tagRepository) Delete(ctx context.Context, id int64) error {
	conn := r.db.conn(ctx)

	if _, err := conn.ExecContext(ctx, `DELETE FROM blogs_tags WHERE tag_id = ?`, id); err != nil {
		return domain.NewStorageError("delete", tagEntity, err)
	}

	result, err := conn.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return domain.NewStorageError("delete", tagEntity, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrTagNotFound
	}

	return nil
}

// List returns all tags with pagination, ordered by ID ascending.
func (r *tagRepository) List(ctx context.Context, opts repository.ListOptions) (*repository.ListResult[domain.Tag], error) {
	conn := r.db.conn(ctx)

	var total int64
	if err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM tags`).Scan(&total); err != nil {
		return nil, domain.NewStorageError("list", tagEntity, err)
	}

	query := `SELECT ` + tagColumns + ` FROM tags ORDER BY id ASC LIMIT ? OFFSET ?`

	rows, err := conn.QueryContext(ctx, query, opts.Limit, opts.Offset)
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
// as a set. Duplicate input IDs are harmless.
func (r *tagRepository) ExistingIDs(ctx context.Context, ids []int64) (map[int64]struct{}, error) {
	existing := make(map[int64]struct{}, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	query := `SELECT id FROM tags WHERE id IN (` + placeholders + `)`

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, args...)
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
