// Package sqlite is a single-file document store for user records. Each user is kept as a JSON
// document; email and username are lifted into indexed columns so the database enforces their
// uniqueness.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/baechuer/account-service/internal/domain"
	"github.com/baechuer/account-service/internal/infrastructure/db/sqlite/migrations"
)

// UserStore implements account.UserStore over SQLite.
type UserStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the bundled migrations.
func Open(ctx context.Context, path string) (*UserStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &UserStore{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		return err
	}
	_, err = provider.Up(ctx)
	return err
}

// Close releases the underlying database.
func (s *UserStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping reports whether the database is usable; used by the readiness probe.
func (s *UserStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// userDocument is the stored JSON shape.
type userDocument struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Password     string    `json:"password"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	MobileNumber string    `json:"mobileNumber"`
	Gender       string    `json:"gender"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toDocument(u domain.User) userDocument {
	return userDocument{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Password:     u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		MobileNumber: u.MobileNumber,
		Gender:       u.Gender,
		CreatedAt:    u.CreatedAt.UTC(),
		UpdatedAt:    u.UpdatedAt.UTC(),
	}
}

func (d userDocument) toDomain() domain.User {
	return domain.User{
		ID:           d.ID,
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.Password,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		MobileNumber: d.MobileNumber,
		Gender:       d.Gender,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func decode(raw string) (domain.User, error) {
	var d userDocument
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return domain.User{}, domain.ErrStorageUnavailable(fmt.Errorf("decode user document: %w", err))
	}
	return d.toDomain(), nil
}

// mapWriteErr turns UNIQUE constraint failures into Conflict errors.
func mapWriteErr(err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) && se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "UNIQUE") {
		if strings.Contains(se.Error(), "user_documents.username") {
			return domain.ErrUsernameAlreadyExists()
		}
		return domain.ErrEmailAlreadyExists()
	}
	return domain.ErrStorageUnavailable(err)
}

func (s *UserStore) findOne(ctx context.Context, column, value string) (domain.User, error) {
	if value == "" {
		return domain.User{}, domain.ErrUserNotFound()
	}
	q := `SELECT doc FROM user_documents WHERE ` + column + ` = ? LIMIT 1;`

	var raw string
	if err := s.db.QueryRowContext(ctx, q, value).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrStorageUnavailable(err)
	}
	return decode(raw)
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.findOne(ctx, "email", normalizeKey(email))
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return s.findOne(ctx, "username", normalizeKey(username))
}

func (s *UserStore) FindByID(ctx context.Context, id string) (domain.User, error) {
	return s.findOne(ctx, "id", strings.TrimSpace(id))
}

func (s *UserStore) Insert(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = normalizeKey(u.Email)
	u.Username = normalizeKey(u.Username)
	if u.ID == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}

	d := toDocument(u)
	raw, err := json.Marshal(d)
	if err != nil {
		return domain.User{}, domain.ErrInternal(err)
	}

	const q = `
INSERT INTO user_documents (id, email, username, doc, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?);
`
	if _, err := s.db.ExecContext(ctx, q,
		d.ID, d.Email, d.Username, string(raw),
		d.CreatedAt.UnixMilli(), d.UpdatedAt.UnixMilli(),
	); err != nil {
		return domain.User{}, mapWriteErr(err)
	}
	return d.toDomain(), nil
}

func (s *UserStore) Update(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = normalizeKey(u.Email)
	u.Username = normalizeKey(u.Username)

	d := toDocument(u)
	raw, err := json.Marshal(d)
	if err != nil {
		return domain.User{}, domain.ErrInternal(err)
	}

	const q = `
UPDATE user_documents
SET email = ?, username = ?, doc = ?, updated_at = ?
WHERE id = ?;
`
	res, err := s.db.ExecContext(ctx, q,
		d.Email, d.Username, string(raw), d.UpdatedAt.UnixMilli(), d.ID,
	)
	if err != nil {
		return domain.User{}, mapWriteErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.User{}, domain.ErrStorageUnavailable(err)
	}
	if n == 0 {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return d.toDomain(), nil
}

func (s *UserStore) List(ctx context.Context) ([]domain.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM user_documents ORDER BY created_at, id;`)
	if err != nil {
		return nil, domain.ErrStorageUnavailable(err)
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, domain.ErrStorageUnavailable(err)
		}
		u, err := decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrStorageUnavailable(err)
	}
	return out, nil
}
