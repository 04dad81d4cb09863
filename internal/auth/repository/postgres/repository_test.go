package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	repo "github.com/Tanimou/user-management-system-sub001/internal/auth/repository/postgres"
	autherror "github.com/Tanimou/user-management-system-sub001/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "email", "password_hash", "is_active", "roles", "created_at", "updated_at"}

func newRepo(t *testing.T) (pgxmock.PgxPoolIface, *repo.PostgresRepository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, repo.NewPostgresRepository(mock)
}

func TestFindActiveByEmail(t *testing.T) {
	ctx := context.Background()
	userEmail := "test@example.com"

	t.Run("success", func(t *testing.T) {
		mock, r := newRepo(t)

		mock.ExpectQuery("SELECT u.id, u.email").
			WithArgs(userEmail).
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow("user-123", userEmail, "hash", true, []string{"user", "admin"}, time.Now(), time.Now()))

		user, err := r.FindActiveByEmail(ctx, userEmail)
		require.NoError(t, err)
		assert.Equal(t, "user-123", user.ID)
		assert.Equal(t, []string{"user", "admin"}, user.Roles)
		assert.True(t, user.IsActive)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found yields nil user, nil error", func(t *testing.T) {
		mock, r := newRepo(t)

		mock.ExpectQuery("SELECT u.id, u.email").
			WithArgs(userEmail).
			WillReturnError(pgx.ErrNoRows)

		user, err := r.FindActiveByEmail(ctx, userEmail)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("database error", func(t *testing.T) {
		mock, r := newRepo(t)

		mock.ExpectQuery("SELECT u.id, u.email").
			WithArgs(userEmail).
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.FindActiveByEmail(ctx, userEmail)
		assert.Error(t, err)
	})
}

func TestFindActiveByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock, r := newRepo(t)

		mock.ExpectQuery("SELECT u.id, u.email").
			WithArgs("user-123").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow("user-123", "test@example.com", "hash", true, []string{"user"}, time.Now(), time.Now()))

		user, err := r.FindActiveByID(ctx, "user-123")
		require.NoError(t, err)
		assert.Equal(t, "test@example.com", user.Email)
	})

	t.Run("not found", func(t *testing.T) {
		mock, r := newRepo(t)

		mock.ExpectQuery("SELECT u.id, u.email").
			WithArgs("ghost").
			WillReturnError(pgx.ErrNoRows)

		user, err := r.FindActiveByID(ctx, "ghost")
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock, r := newRepo(t)

		mock.ExpectQuery("SELECT u.id, u.email").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow("user-1", "a@example.com", "hash", true, []string{"user"}, time.Now(), time.Now()).
				AddRow("user-2", "b@example.com", "hash", false, []string{}, time.Now(), time.Now()))

		users, err := r.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "a@example.com", users[0].Email)
		assert.False(t, users[1].IsActive)
	})

	t.Run("query error", func(t *testing.T) {
		mock, r := newRepo(t)

		mock.ExpectQuery("SELECT u.id, u.email").
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.ListUsers(ctx)
		assert.Error(t, err)
	})
}

func TestUpdateUserRoles(t *testing.T) {
	ctx := context.Background()
	roles := []string{"admin", "user"}

	t.Run("success", func(t *testing.T) {
		mock, r := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("user-123").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectExec("DELETE FROM user_roles").
			WithArgs("user-123").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectExec("INSERT INTO user_roles").
			WithArgs("user-123", roles).
			WillReturnResult(pgxmock.NewResult("INSERT", 2))
		mock.ExpectCommit()

		err := r.UpdateUserRoles(ctx, "user-123", roles)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown user", func(t *testing.T) {
		mock, r := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("ghost").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectRollback()

		err := r.UpdateUserRoles(ctx, "ghost", roles)
		assert.ErrorIs(t, err, autherror.ErrUserNotFound)
	})

	t.Run("insert failure rolls back", func(t *testing.T) {
		mock, r := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("user-123").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectExec("DELETE FROM user_roles").
			WithArgs("user-123").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectExec("INSERT INTO user_roles").
			WithArgs("user-123", roles).
			WillReturnError(fmt.Errorf("constraint violation"))
		mock.ExpectRollback()

		err := r.UpdateUserRoles(ctx, "user-123", roles)
		assert.Error(t, err)
	})
}

func TestSetUserActive(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock, r := newRepo(t)

		mock.ExpectExec("UPDATE users SET is_active").
			WithArgs("user-123", false).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := r.SetUserActive(ctx, "user-123", false)
		assert.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		mock, r := newRepo(t)

		mock.ExpectExec("UPDATE users SET is_active").
			WithArgs("ghost", true).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := r.SetUserActive(ctx, "ghost", true)
		assert.ErrorIs(t, err, autherror.ErrUserNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		mock, r := newRepo(t)

		mock.ExpectExec("UPDATE users SET is_active").
			WithArgs("user-123", true).
			WillReturnError(fmt.Errorf("db error"))

		err := r.SetUserActive(ctx, "user-123", true)
		assert.Error(t, err)
	})
}
