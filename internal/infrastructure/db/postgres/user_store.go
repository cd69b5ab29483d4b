package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/baechuer/account-service/internal/domain"
)

const (
	uniqueViolation = "23505"

	emailConstraint    = "users_email_key"
	usernameConstraint = "users_username_key"
)

const userColumns = `id, username, email, password_hash, first_name, last_name, mobile_number, gender, created_at, updated_at`

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// ---------- helpers ----------

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (userRow, error) {
	var ur userRow
	err := row.Scan(
		&ur.ID,
		&ur.Username,
		&ur.Email,
		&ur.PasswordHash,
		&ur.FirstName,
		&ur.LastName,
		&ur.MobileNumber,
		&ur.Gender,
		&ur.CreatedAt,
		&ur.UpdatedAt,
	)
	return ur, err
}

// mapWriteErr turns unique violations into Conflict errors by constraint name.
func mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case usernameConstraint:
			return domain.ErrUsernameAlreadyExists()
		default:
			return domain.ErrEmailAlreadyExists()
		}
	}
	return domain.ErrStorageUnavailable(err)
}

func (r *UserStore) findOne(ctx context.Context, column, value string) (domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1 LIMIT 1;`

	ur, err := scanUser(r.db.QueryRowContext(ctx, q, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrStorageUnavailable(err)
	}
	return ur.toDomain(), nil
}

// ---------- account.UserStore ----------

func (r *UserStore) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	email = normalizeKey(email)
	if email == "" {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return r.findOne(ctx, "email", email)
}

func (r *UserStore) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	username = normalizeKey(username)
	if username == "" {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return r.findOne(ctx, "username", username)
}

func (r *UserStore) FindByID(ctx context.Context, id string) (domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return r.findOne(ctx, "id", id)
}

func (r *UserStore) Insert(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = normalizeKey(u.Email)
	u.Username = normalizeKey(u.Username)
	if u.ID == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}
	if u.PasswordHash == "" {
		return domain.User{}, domain.ErrMissingField("password_hash")
	}

	const q = `
INSERT INTO users (id, username, email, password_hash, first_name, last_name, mobile_number, gender, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
RETURNING ` + userColumns + `;
`
	ur, err := scanUser(r.db.QueryRowContext(ctx, q,
		u.ID, u.Username, u.Email, u.PasswordHash,
		u.FirstName, u.LastName, u.MobileNumber, u.Gender,
		u.CreatedAt, u.UpdatedAt,
	))
	if err != nil {
		return domain.User{}, mapWriteErr(err)
	}
	return ur.toDomain(), nil
}

func (r *UserStore) Update(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = normalizeKey(u.Email)
	u.Username = normalizeKey(u.Username)
	if strings.TrimSpace(u.ID) == "" {
		return domain.User{}, domain.ErrUserNotFound()
	}

	const q = `
UPDATE users
SET username = $2,
    email = $3,
    password_hash = $4,
    first_name = $5,
    last_name = $6,
    mobile_number = $7,
    gender = $8,
    updated_at = $9
WHERE id = $1
RETURNING ` + userColumns + `;
`
	ur, err := scanUser(r.db.QueryRowContext(ctx, q,
		u.ID, u.Username, u.Email, u.PasswordHash,
		u.FirstName, u.LastName, u.MobileNumber, u.Gender,
		u.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, mapWriteErr(err)
	}
	return ur.toDomain(), nil
}

func (r *UserStore) List(ctx context.Context) ([]domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users ORDER BY created_at, id;`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.ErrStorageUnavailable(err)
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		ur, err := scanUser(rows)
		if err != nil {
			return nil, domain.ErrStorageUnavailable(err)
		}
		out = append(out, ur.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrStorageUnavailable(err)
	}
	return out, nil
}

// Ping reports whether the database is reachable; used by the readiness probe.
func (r *UserStore) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
