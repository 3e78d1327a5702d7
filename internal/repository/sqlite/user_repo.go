package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/domain"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/repository"
)

const userEntity = "user"

// userColumns is the scan order shared by every user query.
const userColumns = `id, username, email, name, last_name, hashed_password, role, is_active, profile_picture, created_at, updated_at`

// userRepository implements repository.UserRepository for SQLite.
type userRepository struct {
	db *DB
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (username, email, name, last_name, hashed_password, role, is_active, profile_picture, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.conn(ctx).ExecContext(ctx, query,
		user.Username,
		user.Email,
		user.Name,
		user.LastName,
		user.HashedPassword,
		string(user.Role),
		boolToInt(user.IsActive),
		user.ProfilePicture,
		user.CreatedAt.Format(time.RFC3339),
		user.UpdatedAt.Format(time.RFC3339),
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username or email already exists", domain.ErrUserAlreadyExists)
		}
		return domain.NewStorageError("create", userEntity, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.NewStorageError("create", userEntity, err)
	}
	user.ID = id

	return nil
}

// scanUser scans one user row in userColumns order.
func scanUser(row interface{ Scan(...interface{}) error }) (*domain.User, error) {
	user := &domain.User{}
	var role string
	var isActive int
	var createdAt, updatedAt string

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Name,
		&user.LastName,
		&user.HashedPassword,
		&role,
		&isActive,
		&user.ProfilePicture,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Role = domain.Role(role)
	user.IsActive = isActive != 0
	user.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	user.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return user, nil
}

// GetByID retrieves a user by ID.
func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	user, err := scanUser(r.db.conn(ctx).QueryRowContext(ctx, query, id))
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
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`

	user, err := scanUser(r.db.conn(ctx).QueryRowContext(ctx, query, username))
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
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`

	user, err := scanUser(r.db.conn(ctx).QueryRowContext(ctx, query, email))
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
		SET username = ?, email = ?, name = ?, last_name = ?, hashed_password = ?, role = ?, is_active = ?, profile_picture = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.conn(ctx).ExecContext(ctx, query,
		user.Username,
		user.Email,
		user.Name,
		user.LastName,
		user.HashedPassword,
		string(user.Role),
		boolToInt(user.IsActive),
		user.ProfilePicture,
		user.UpdatedAt.Format(time.RFC3339),
		user.ID,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username or email already exists", domain.ErrUserAlreadyExists)
		}
		return domain.NewStorageError("update", userEntity, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// Delete deletes a user by ID, cascading to the user's blogs and
// comments, the comments on those blogs, and the tag links of the
// deleted blogs. The caller is expected to run this inside WithTx; the
// statements join the active transaction through the context.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	conn := r.db.conn(ctx)

	if _, err := conn.ExecContext(ctx,
		`DELETE FROM comments WHERE author_id = ? OR blog_id IN (SELECT id FROM blogs WHERE author_id = ?)`,
		id, id,
	); err != nil {
		return domain.NewStorageError("delete", userEntity, err)
	}

	if _, err := conn.ExecContext(ctx,
		`DELETE FROM blogs_tags WHERE blog_id IN (SELECT id FROM blogs WHERE author_id = ?)`,
		id,
	); err != nil {
		return domain.NewStorageError("delete", userEntity, err)
	}

	if _, err := conn.ExecContext(ctx, `DELETE FROM blogs WHERE author_id = ?`, id); err != nil {
		return domain.NewStorageError("delete", userEntity, err)
	}

	result, err := conn.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return domain.NewStorageError("delete", userEntity, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// List returns all users with pagination, ordered by ID ascending.
func (r *userRepository) List(ctx context.Context, opts repository.ListOptions) (*repository.ListResult[domain.User], error) {
	conn := r.db.conn(ctx)

	var total int64
	if err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, domain.NewStorageError("list", userEntity, err)
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id ASC LIMIT ? OFFSET ?`

	rows, err := conn.QueryContext(ctx, query, opts.Limit, opts.Offset)
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
	var count int
	err := r.db.conn(ctx).QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE username = ?`, username).Scan(&count)
	if err != nil {
		return false, domain.NewStorageError("exists", userEntity, err)
	}
	return count > 0, nil
}

// ExistsByEmail checks if a user with the given email exists.
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int
	err := r.db.conn(ctx).QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&count)
	if err != nil {
		return false, domain.NewStorageError("exists", userEntity, err)
	}
	return count > 0, nil
}

// boolToInt converts a boolean to an integer (SQLite doesn't have native boolean).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Ensure userRepository implements repository.UserRepository.
var _ repository.UserRepository = (*userRepository)(nil)
