package sqlite

import (
	"context"
	"strings"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/domain"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/repository"
)

const linkEntity = "blog_tag"

// blogTagRepository implements repository.BlogTagRepository for SQLite.
type blogTagRepository struct {
	db *DB
}

// NewBlogTagRepository creates a new SQLite blog-tag link repository.
func NewBlogTagRepository(db *DB) repository.BlogTagRepository {
	return &blogTagRepository{db: db}
}

// Link inserts association rows for the given tag IDs. Pairs that are
// already linked are left in place.
func (r *blogTagRepository) Link(ctx context.Context, blogID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	conn := r.db.conn(ctx)
	query := `INSERT OR IGNORE INTO blogs_tags (blog_id, tag_id) VALUES (?, ?)`

	for _, tagID := range tagIDs {
		if _, err := conn.ExecContext(ctx, query, blogID, tagID); err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrUnknownTag
			}
			return domain.NewStorageError("link", linkEntity, err)
		}
	}
	return nil
}

// Unlink removes the association rows for the given tag IDs. Pairs
// that are not linked are ignored.
func (r *blogTagRepository) Unlink(ctx context.Context, blogID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(tagIDs)), ",")
	args := make([]interface{}, 0, len(tagIDs)+1)
	args = append(args, blogID)
	for _, tagID := range tagIDs {
		args = append(args, tagID)
	}

	query := `DELETE FROM blogs_tags WHERE blog_id = ? AND tag_id IN (` + placeholders + `)`

	if _, err := r.db.conn(ctx).ExecContext(ctx, query, args...); err != nil {
		return domain.NewStorageError("unlink", linkEntity, err)
	}
	return nil
}

// ListTagIDs returns the IDs of the tags linked to a blog, ascending.
func (r *blogTagRepository) ListTagIDs(ctx context.Context, blogID int64) ([]int64, error) {
	query := `SELECT tag_id FROM blogs_tags WHERE blog_id = ? ORDER BY tag_id ASC`

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, blogID)
	if err != nil {
		return nil, domain.NewStorageError("list", linkEntity, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, domain.NewStorageError("list", linkEntity, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("list", linkEntity, err)
	}

	return ids, nil
}

// ListTags returns the tags linked to a blog, ordered by tag ID.
func (r *blogTagRepository) ListTags(ctx context.Context, blogID int64) ([]*domain.Tag, error) {
	query := `
		SELECT t.id, t.name, t.description, t.created_at, t.updated_at
		FROM tags t
		JOIN blogs_tags bt ON bt.tag_id = t.id
		WHERE bt.blog_id = ?
		ORDER BY t.id ASC
	`

	rows, err := r.db.conn(ctx).QueryContext(ctx, query, blogID)
	if err != nil {
		return nil, domain.NewStorageError("list", linkEntity, err)
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, domain.NewStorageError("list", linkEntity, err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("list", linkEntity, err)
	}

	return tags, nil
}

var _ repository.BlogTagRepository = (*blogTagRepository)(nil)
