package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/account-service/internal/domain"
)

var columns = []string{
	"id", "username", "email", "password_hash", "first_name", "last_name",
	"mobile_number", "gender", "created_at", "updated_at",
}

func sampleUser(now time.Time) domain.User {
	return domain.User{
		ID:           "u1",
		Username:     "hazem_h",
		Email:        "hazem@example.com",
		PasswordHash: "$2a$10$hash",
		FirstName:    "Hazem",
		LastName:     "Hassan",
		MobileNumber: "+201234567890",
		Gender:       "male",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func userRows(u domain.User) *sqlmock.Rows {
	return sqlmock.NewRows(columns).AddRow(
		u.ID, u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName,
		u.MobileNumber, u.Gender, u.CreatedAt, u.UpdatedAt,
	)
}

func newMockStore(t *testing.T) (*UserStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewUserStore(db), mock
}

func TestUserStore_FindByEmail(t *testing.T) {
	store, mock := newMockStore(t)
	u := sampleUser(time.Now().UTC())

	t.Run("success_mapping", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email =").
			WithArgs("hazem@example.com").
			WillReturnRows(userRows(u))

		got, err := store.FindByEmail(context.Background(), "  HAZEM@example.com ")
		require.NoError(t, err)
		assert.Equal(t, u, got)
	})

	t.Run("not_found_mapping", func(t *testing.T) {
		mock.ExpectQuery("SELECT").WithArgs("none@x.com").WillReturnError(sql.ErrNoRows)

		_, err := store.FindByEmail(context.Background(), "none@x.com")
		assert.True(t, domain.Is(err, "user_not_found"), "got %v", err)
	})

	t.Run("db_down_mapping", func(t *testing.T) {
		mock.ExpectQuery("SELECT").WithArgs("a@x.com").WillReturnError(errors.New("conn reset"))

		_, err := store.FindByEmail(context.Background(), "a@x.com")
		assert.True(t, domain.Is(err, "storage_unavailable"), "got %v", err)
	})

	t.Run("empty_is_not_found_without_query", func(t *testing.T) {
		_, err := store.FindByEmail(context.Background(), "   ")
		assert.True(t, domain.Is(err, "user_not_found"))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_FindByUsernameAndID(t *testing.T) {
	store, mock := newMockStore(t)
	u := sampleUser(time.Now().UTC())

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username =").
		WithArgs("hazem_h").
		WillReturnRows(userRows(u))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id =").
		WithArgs("u1").
		WillReturnRows(userRows(u))

	got, err := store.FindByUsername(context.Background(), "Hazem_H")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)

	got, err = store.FindByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "hazem_h", got.Username)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_Insert(t *testing.T) {
	now := time.Now().UTC()
	u := sampleUser(now)

	t.Run("success", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(u.ID, u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName,
				u.MobileNumber, u.Gender, u.CreatedAt, u.UpdatedAt).
			WillReturnRows(userRows(u))

		got, err := store.Insert(context.Background(), u)
		require.NoError(t, err)
		assert.Equal(t, u, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("email_unique_violation", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		_, err := store.Insert(context.Background(), u)
		assert.True(t, domain.Is(err, "email_already_exists"), "got %v", err)
	})

	t.Run("username_unique_violation", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

		_, err := store.Insert(context.Background(), u)
		assert.True(t, domain.Is(err, "username_already_exists"), "got %v", err)
	})

	t.Run("other_error", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("INSERT INTO users").WillReturnError(errors.New("timeout"))

		_, err := store.Insert(context.Background(), u)
		assert.True(t, domain.Is(err, "storage_unavailable"), "got %v", err)
	})

	t.Run("missing_id", func(t *testing.T) {
		store, _ := newMockStore(t)
		bad := u
		bad.ID = ""
		_, err := store.Insert(context.Background(), bad)
		assert.True(t, domain.Is(err, "missing_field"))
	})
}

func TestUserStore_Update(t *testing.T) {
	now := time.Now().UTC()
	u := sampleUser(now)

	t.Run("success", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE users")).
			WithArgs(u.ID, u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName,
				u.MobileNumber, u.Gender, u.UpdatedAt).
			WillReturnRows(userRows(u))

		got, err := store.Update(context.Background(), u)
		require.NoError(t, err)
		assert.Equal(t, u, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no_rows_is_not_found", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("UPDATE users").WillReturnError(sql.ErrNoRows)

		_, err := store.Update(context.Background(), u)
		assert.True(t, domain.Is(err, "user_not_found"), "got %v", err)
	})
}

func TestUserStore_List(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()
	a := sampleUser(now)
	b := sampleUser(now.Add(time.Second))
	b.ID, b.Email, b.Username = "u2", "b@x.com", "bee"

	rows := userRows(a).AddRow(
		b.ID, b.Username, b.Email, b.PasswordHash, b.FirstName, b.LastName,
		b.MobileNumber, b.Gender, b.CreatedAt, b.UpdatedAt,
	)
	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY created_at").WillReturnRows(rows)

	got, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "u1", got[0].ID)
	assert.Equal(t, "u2", got[1].ID)

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("down"))
	_, err = store.List(context.Background())
	assert.True(t, domain.Is(err, "storage_unavailable"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
