package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/domain"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/repository"
)

const userEntity = "user"

const userColumns = `id, username, email, name, last_name, hashed_password, role, is_active, profile_picture, created_at, updated_at`

// userRepository implements repository.UserRepository for PostgreSQL.
type userRepository struct {
	db *DB
}

// NewUserRepository creates a new PostgreSQL user repository.
func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (username, email, name, last_name, hashed_password, role, is_active, profile_picture, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.db.conn(ctx).QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.Name,
		user.LastName,
		user.HashedPassword,
		string(user.Role),
		user.IsActive,
		user.ProfilePicture,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username or email already exists", domain.ErrUserAlreadyExists)
		}
		return domain.NewStorageError("create", userEntity, err)
	}

	return nil
}

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	user := &domain.User{}
	var role string

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Name,
		&user.LastName,
		&user.HashedPassword,
		&role,
		&user.IsActive,
		&user.ProfilePicture,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Role = domain.Role(role)
	return user, nil
}

// GetByID retrieves a user by ID.
func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.conn(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.NewStorageError("get", userEntity, err)
	}
	return user, nil
}

// GetByUsername retrieves a user by username.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.db.conn(ctx).QueryRow(ctx, query, username))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.NewStorageError("get", userEntity, err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.conn(ctx).QueryRow(ctx, query, email))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.NewStorageError("get", userEntity, err)
	}
	return user, nil
}

// Update updates an existing user.
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE users
		SET username = $1, email = $2, name = $3, last_name = $4, hashed_password = $5, role = $6, is_active = $7, profile_picture = $8, updated_at = $9
		WHERE id = $10
	`

	tag, err := r.db.conn(ctx).Exec(ctx, query,
		user.Username,
		user.Email,
		user.Name,
		user.LastName,
		user.HashedPassword,
		string(user.Role),
		user.IsActive,
		user.ProfilePicture,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username or email already exists", domain.ErrUserAlreadyExists)
		}
		return domain.NewStorageError("update", userEntity, err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// Delete deletes a user by ID, cascading to the user's blogs and
// comments, the comments on those blogs, and the tag links of the
// deleted blogs. The caller is expected to run this inside WithTx.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	conn := r.db.conn(ctx)

	if _, err := conn.Exec(ctx,
		`DELETE FROM comments WHERE author_id = $1 OR blog_id IN (SELECT id FROM blogs WHERE author_id = $1)`,
		id,
	); err != nil {
		return domain.NewStorageError("delete", userEntity, err)
	}

	if _, err := conn.Exec(ctx,
		`DELETE FROM blogs_tags WHERE blog_id IN (SELECT id FROM blogs WHERE author_id = $1)`,
		id,
	); err != nil {
		return domain.NewStorageError("delete", userEntity, err)
	}

	if _, err := conn.Exec(ctx, `DELETE FROM blogs WHERE author_id = $1`, id); err != nil {
		return domain.NewStorageError("delete", userEntity, err)
	}

	tag, err := conn.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return domain.NewStorageError("delete", userEntity, err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// List returns all users with pagination, ordered by ID ascending.
func (r *userRepository) List(ctx context.Context, opts repository.ListOptions) (*repository.ListResult[domain.User], error) {
	conn := r.db.conn(ctx)

	var total int64
	if err := conn.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, domain.NewStorageError("list", userEntity, err)
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id ASC LIMIT $1 OFFSET $2`

	rows, err := conn.Query(ctx, query, opts.Limit, opts.Offset)
	if err != nil {
		return nil, domain.NewStorageError("list", userEntity, err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, domain.NewStorageError("list", userEntity, err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("list", userEntity, err)
	}

	return &repository.ListResult[domain.User]{
		Items:  users,
		Total:  total,
		Offset: opts.Offset,
		Limit:  opts.Limit,
	}, nil
}

// ExistsByUsername checks if a user with the given username exists.
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, domain.NewStorageError("exists", userEntity, err)
	}
	return exists, nil
}

// ExistsByEmail checks if a user with the given email exists.
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, domain.NewStorageError("exists", userEntity, err)
	}
	return exists, nil
}

var _ repository.UserRepository = (*userRepository)(nil)
