package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Tanimou/user-management-system-sub001/internal/auth/domain"
	autherror "github.com/Tanimou/user-management-system-sub001/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxIface is the subset of pgxpool.Pool the repository uses; pgxmock
// satisfies it in tests.
type PgxIface interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db PgxIface
}

func NewPostgresRepository(db PgxIface) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `
		SELECT u.id, u.email, u.password_hash, u.is_active,
		       COALESCE(array_agg(r.name) FILTER (WHERE r.name IS NOT NULL), '{}') AS roles,
		       u.created_at, u.updated_at
		FROM users u
		LEFT JOIN user_roles ur ON ur.user_id = u.id
		LEFT JOIN roles r ON r.id = ur.role_id`

func (r *PostgresRepository) FindActiveByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := userColumns + `
		WHERE u.email = $1 AND u.is_active = TRUE
		GROUP BY u.id;`

	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *PostgresRepository) FindActiveByID(ctx context.Context, id string) (*domain.User, error) {
	query := userColumns + `
		WHERE u.id = $1 AND u.is_active = TRUE
		GROUP BY u.id;`

	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	query := userColumns + `
		GROUP BY u.id
		ORDER BY u.created_at;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		err := rows.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.IsActive,
			&user.Roles, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

func (r *PostgresRepository) UpdateUserRoles(ctx context.Context, id string, roles []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	err = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1);`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return autherror.ErrUserNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1;`, id); err != nil {
		return fmt.Errorf("failed to clear user roles: %w", err)
	}

	query := `INSERT INTO user_roles (user_id, role_id)
	          SELECT $1, r.id FROM roles r WHERE r.name = ANY($2);`
	if _, err := tx.Exec(ctx, query, id, roles); err != nil {
		return fmt.Errorf("failed to assign user roles: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) SetUserActive(ctx context.Context, id string, active bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1;`, id, active)
	if err != nil {
		return fmt.Errorf("failed to update user active flag: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return autherror.ErrUserNotFound
	}

	return nil
}

func (r *PostgresRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.IsActive,
		&user.Roles, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
