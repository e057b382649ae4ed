package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/dtroode/scorepredictor-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (int64, error) {
	query := `INSERT INTO users (username, email, password_hash, full_name, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.FullName, formatTime(user.CreatedAt),
	)
	if err != nil {
		if dup := uniqueConstraintError(err); dup != nil {
			return 0, dup
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read user id: %w", err)
	}
	return id, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	query := `SELECT id, username, email, password_hash, full_name, created_at, last_login
			  FROM users WHERE username = ?`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (model.User, error) {
	query := `SELECT id, username, email, password_hash, full_name, created_at, last_login
			  FROM users WHERE id = ?`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET last_login = ? WHERE id = ?`, formatTime(at), id)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return requireAffected(res)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, update model.ProfileUpdate) error {
	if update.Empty() {
		return nil
	}

	builder := sq.StatementBuilder.PlaceholderFormat(sq.Question).Update("users")
	if update.FullName != nil {
		builder = builder.Set("full_name", *update.FullName)
	}
	if update.Email != nil {
		builder = builder.Set("email", *update.Email)
	}

	query, args, err := builder.Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build profile update: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if dup := uniqueConstraintError(err); dup != nil {
			return dup
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return requireAffected(res)
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, hash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return requireAffected(res)
}

func scanUser(row *sql.Row) (model.User, error) {
	var (
		user      model.User
		createdAt string
		lastLogin sql.NullString
	)

	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.FullName, &createdAt, &lastLogin)
	if err != nil {
		return model.User{}, err
	}

	if user.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.User{}, err
	}
	if lastLogin.Valid {
		t, err := parseTime(lastLogin.String)
		if err != nil {
			return model.User{}, err
		}
		user.LastLogin = &t
	}

	return user, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}
