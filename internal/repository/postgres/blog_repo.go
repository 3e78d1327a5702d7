package postgres

import (
	"context"
	"time"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/domain"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/repository"
)

const blogEntity = "blog"

const blogColumns = `id, title, content, author_id, is_published, image_url, created_at, updated_at`

// blogRepository implements repository.BlogRepository for PostgreSQL.
type blogRepository struct {
	db *DB
}

// NewBlogRepository creates a new PostgreSQL blog repository.
func NewBlogRepository(db *DB) repository.BlogRepository {
	return &blogRepository{db: db}
}

// Create creates a new blog.
func (r *blogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	query := `
		INSERT INTO blogs (title, content, author_id, is_published, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.conn(ctx).QueryRow(ctx, query,
		blog.Title,
		blog.Content,
		blog.AuthorID,
		blog.IsPublished,
		blog.ImageURL,
		blog.CreatedAt,
		blog.UpdatedAt,
	).Scan(&blog.ID)

	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return domain.NewStorageError("create", blogEntity, err)
	}

	return nil
}

func scanBlog(row interface{ Scan(...any) error }) (*domain.Blog, error) {
	blog := &domain.Blog{}

	err := row.Scan(
		&blog.ID,
		&blog.Title,
		&blog.Content,
		&blog.AuthorID,
		&blog.IsPublished,
		&blog.ImageURL,
		&blog.CreatedAt,
		&blog.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return blog, nil
}

// GetByID retrieves a blog by ID, including its tags.
func (r *blogRepository) GetByID(ctx context.Context, id int64) (*domain.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs WHERE id = $1`

	blog, err := scanBlog(r.db.conn(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrBlogNotFound
		}
		return nil, domain.NewStorageError("get", blogEntity, err)
	}

	tags, err := r.tagsForBlog(ctx, id)
	if err != nil {
		return nil, err
	}
	blog.Tags = tags

	return blog, nil
}

func (r *blogRepository) tagsForBlog(ctx context.Context, blogID int64) ([]*domain.Tag, error) {
	query := `
		SELECT t.id, t.name, t.description, t.created_at, t.updated_at
		FROM tags t
		JOIN blogs_tags bt ON bt.tag_id = t.id
		WHERE bt.blog_id = $1
		ORDER BY t.id ASC
	`

	rows, err := r.db.conn(ctx).Query(ctx, query, blogID)
	if err != nil {
		return nil, domain.NewStorageError("get", blogEntity, err)
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, domain.NewStorageError("get", blogEntity, err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("get", blogEntity, err)
	}

	return tags, nil
}

// Update updates a blog's title, content and image URL.
func (r *blogRepository) Update(ctx context.Context, blog *domain.Blog) error {
	blog.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE blogs
		SET title = $1, content = $2, image_url = $3, updated_at = $4
		WHERE id = $5
	`

	tag, err := r.db.conn(ctx).Exec(ctx, query,
		blog.Title,
		blog.Content,
		blog.ImageURL,
		blog.UpdatedAt,
		blog.ID,
	)
	if err != nil {
		return domain.NewStorageError("update", blogEntity, err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrBlogNotFound
	}

	return nil
}

// UpdatePublished sets a blog's publication flag.
func (r *blogRepository) UpdatePublished(ctx context.Context, id int64, published bool) error {
	query := `UPDATE blogs SET is_published = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.db.conn(ctx).Exec(ctx, query, published, time.Now().UTC(), id)
	if err != nil {
		return domain.NewStorageError("update", blogEntity, err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrBlogNotFound
	}

	return nil
}

// Delete deletes a blog by ID, cascading to its comments and tag
// links. The caller is expected to run this inside WithTx.
func (r *blogRepository) Delete(ctx context.Context, id int64) error {
	conn := r.db.conn(ctx)

	if _, err := conn.Exec(ctx, `DELETE FROM comments WHERE blog_id = $1`, id); err != nil {
		return domain.NewStorageError("delete", blogEntity, err)
	}

	if _, err := conn.Exec(ctx, `DELETE FROM blogs_tags WHERE blog_id = $1`, id); err != nil {
		return domain.NewStorageError("delete", blogEntity, err)
	}

	tag, err := conn.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return domain.NewStorageError("delete", blogEntity, err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrBlogNotFound
	}

	return nil
}

func (r *blogRepository) listBlogs(ctx context.Context, countQuery, listQuery string, opts repository.ListOptions, args ...any) (*repository.ListResult[domain.Blog], error) {
	conn := r.db.conn(ctx)

	var total int64
	if err := conn.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, domain.NewStorageError("list", blogEntity, err)
	}

	listArgs := append(append([]any{}, args...), opts.Limit, opts.Offset)
	rows, err := conn.Query(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, domain.NewStorageError("list", blogEntity, err)
	}
	defer rows.Close()

	var blogs []*domain.Blog
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, domain.NewStorageError("list", blogEntity, err)
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("list", blogEntity, err)
	}

	for _, blog := range blogs {
		tags, err := r.tagsForBlog(ctx, blog.ID)
		if err != nil {
			return nil, err
		}
		blog.Tags = tags
	}

	return &repository.ListResult[domain.Blog]{
		Items:  blogs,
		Total:  total,
		Offset: opts.Offset,
		Limit:  opts.Limit,
	}, nil
}

// List returns all blogs with pagination, ordered by ID ascending.
func (r *blogRepository) List(ctx context.Context, opts repository.ListOptions) (*repository.ListResult[domain.Blog], error) {
	return r.listBlogs(ctx,
		`SELECT COUNT(*) FROM blogs`,
		`SELECT `+blogColumns+` FROM blogs ORDER BY id ASC LIMIT $1 OFFSET $2`,
		opts,
	)
}

// ListPublished returns published blogs with pagination.
func (r *blogRepository) ListPublished(ctx context.Context, opts repository.ListOptions) (*repository.ListResult[domain.Blog], error) {
	return r.listBlogs(ctx,
		`SELECT COUNT(*) FROM blogs WHERE is_published`,
		`SELECT `+blogColumns+` FROM blogs WHERE is_published ORDER BY id ASC LIMIT $1 OFFSET $2`,
		opts,
	)
}

// ListByAuthor returns all blogs by the given author, drafts included.
func (r *blogRepository) ListByAuthor(ctx context.Context, authorID int64, opts repository.ListOptions) (*repository.ListResult[domain.Blog], error) {
	return r.listBlogs(ctx,
		`SELECT COUNT(*) FROM blogs WHERE author_id = $1`,
		`SELECT `+blogColumns+` FROM blogs WHERE author_id = $1 ORDER BY id ASC LIMIT $2 OFFSET $3`,
		opts,
		authorID,
	)
}

// ListPublishedByAuthor returns the author's published blogs.
func (r *blogRepository) ListPublishedByAuthor(ctx context.Context, authorID int64, opts repository.ListOptions) (*repository.ListResult[domain.Blog], error) {
	return r.listBlogs(ctx,
		`SELECT COUNT(*) FROM blogs WHERE author_id = $1 AND is_published`,
		`SELECT `+blogColumns+` FROM blogs WHERE author_id = $1 AND is_published ORDER BY id ASC LIMIT $2 OFFSET $3`,
		opts,
		authorID,
	)
}

// CountAuthors returns the number of distinct authors with at least
// one published blog.
func (r *blogRepository) CountAuthors(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(DISTINCT author_id) FROM blogs WHERE is_published`,
	).Scan(&count)
	if err != nil {
		return 0, domain.NewStorageError("count", blogEntity, err)
	}
	return count, nil
}

// CountPublished returns the number of published blogs.
func (r *blogRepository) CountPublished(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM blogs WHERE is_published`,
	).Scan(&count)
	if err != nil {
		return 0, domain.NewStorageError("count", blogEntity, err)
	}
	return count, nil
}

var _ repository.BlogRepository = (*blogRepository)(nil)
