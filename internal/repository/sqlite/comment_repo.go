package sqlite

import (
	"context"
	"time"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/domain"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/repository"
)

const commentEntity = "comment"

const commentColumns = `id, content, author_id, blog_id, created_at, updated_at`

// commentRepository implements repository.CommentRepository for SQLite.
type commentRepository struct {
	db *DB
}

// NewCommentRepository creates a new SQLite comment repository.
func NewCommentRepository(db *DB) repository.CommentRepository {
	return &commentRepository{db: db}
}

// Create creates a new comment.
func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (content, author_id, blog_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.conn(ctx).ExecContext(ctx, query,
		comment.Content,
		comment.AuthorID,
		comment.BlogID,
		comment.CreatedAt.Format(time.RFC3339),
		comment.UpdatedAt.Format(time.RFC3339),
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrBlogNotFound
		}
		return domain.NewStorageError("create", commentEntity, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.NewStorageError("create", commentEntity, err)
	}
	comment.ID = id

	return nil
}

func scanComment(row interface{ Scan(...interface{}) error }) (*domain.Comment, error) {
	comment := &domain.Comment{}
	var createdAt, updatedAt string

	err := row.Scan(
		&comment.ID,
		&comment.Content,
		&comment.AuthorID,
		&comment.BlogID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	comment.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	comment.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return comment, nil
}

// GetByID retrieves a comment by ID.
func (r *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = ?`

	comment, err := scanComment(r.db.conn(ctx).QueryRowContext(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, domain.NewStorageError("get", commentEntity, err)
	}
	return comment, nil
}

// UpdateContent updates a comment's content.
func (r *commentRepository) UpdateContent(ctx context.Context, id int64, content string) error {
	query := `UPDATE comments SET content = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.conn(ctx).ExecContext(ctx, query,
		content,
		time.Now().UTC().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return domain.NewStorageError("update", commentEntity, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrCommentNotFound
	}

	return nil
}

// Delete deletes a comment by ID regardless of its author.
func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.conn(ctx).ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return domain.NewStorageError("delete", commentEntity, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrCommentNotFound
	}

	return nil
}

// DeleteByIDAndAuthor deletes a comment only when both the ID and the
// author match. A mismatch on either is indistinguishable from the
// comment not existing.
func (r *commentRepository) DeleteByIDAndAuthor(ctx context.Context, id, authorID int64) error {
	result, err := r.db.conn(ctx).ExecContext(ctx,
		`DELETE FROM comments WHERE id = ? AND author_id = ?`, id, authorID)
	if err != nil {
		return domain.NewStorageError("delete", commentEntity, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrCommentNotFound
	}

	return nil
}

// listComments runs a filtered list query plus its count query.
func (r *commentRepository) listComments(ctx context.Context, countQuery, listQuery string, opts repository.ListOptions, args ...interface{}) (*repository.ListResult[domain.Comment], error) {
	conn := r.db.conn(ctx)

	var total int64
	if err := conn.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, domain.NewStorageError("list", commentEntity, err)
	}

	listArgs := append(append([]interface{}{}, args...), opts.Limit, opts.Offset)
	rows, err := conn.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, domain.NewStorageError("list", commentEntity, err)
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, domain.NewStorageError("list", commentEntity, err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("list", commentEntity, err)
	}

	return &repository.ListResult[domain.Comment]{
		Items:  comments,
		Total:  total,
		Offset: opts.Offset,
		Limit:  opts.Limit,
	}, nil
}

// ListByBlog returns the comments on a blog, ordered by ID ascending.
func (r *commentRepository) ListByBlog(ctx context.Context, blogID int64, opts repository.ListOptions) (*repository.ListResult[domain.Comment], error) {
	return r.listComments(ctx,
		`SELECT COUNT(*) FROM comments WHERE blog_id = ?`,
		`SELECT `+commentColumns+` FROM comments WHERE blog_id = ? ORDER BY id ASC LIMIT ? OFFSET ?`,
		opts,
		blogID,
	)
}

// ListByAuthor returns the comments written by a user.
func (r *commentRepository) ListByAuthor(ctx context.Context, authorID int64, opts repository.ListOptions) (*repository.ListResult[domain.Comment], error) {
	return r.listComments(ctx,
		`SELECT COUNT(*) FROM comments WHERE author_id = ?`,
		`SELECT `+commentColumns+` FROM comments WHERE author_id = ? ORDER BY id ASC LIMIT ? OFFSET ?`,
		opts,
		authorID,
	)
}

var _ repository.CommentRepository = (*commentRepository)(nil)
