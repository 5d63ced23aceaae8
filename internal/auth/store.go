package auth

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gopkg.in/yaml.v3"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user already exists")
)

// NormalizeUserID canonicalizes an account identifier. Identity is
// case-insensitive, so everything is stored and looked up in lower case.
func NormalizeUserID(userID string) string {
	return strings.ToLower(strings.TrimSpace(userID))
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

const userColumns = `id, user_id, password_hash, first_name, last_name, is_administrator, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*User, error) {
	u := &User{}
	if err := row.Scan(&u.ID, &u.UserID, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.IsAdministrator, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Store) GetByUserID(ctx context.Context, userID string) (*User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	u, err := scanUser(s.db.QueryRowContext(ctx, q, NormalizeUserID(userID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *Store) List(ctx context.Context) ([]User, error) {
	const q = `SELECT ` + userColumns + ` FROM users ORDER BY user_id`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}
	return result, rows.Err()
}

// CreateParams carries the fields accepted on account creation. The plaintext
// password is hashed here and never stored.
type CreateParams struct {
	UserID          string
	Password        string
	FirstName       string
	LastName        string
	IsAdministrator bool
}

func (s *Store) Create(ctx context.Context, p CreateParams) (*User, error) {
	hash, err := HashPassword(p.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	const q = `
		INSERT INTO users (id, user_id, password_hash, first_name, last_name, is_administrator, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING ` + userColumns
	u, err := scanUser(s.db.QueryRowContext(ctx, q,
		uuid.NewString(), NormalizeUserID(p.UserID), hash, p.FirstName, p.LastName, p.IsAdministrator, now))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return u, nil
}

// UpdateParams carries a partial update; nil fields are left untouched. A
// non-nil Password is re-hashed.
type UpdateParams struct {
	Password        *string
	FirstName       *string
	LastName        *string
	IsAdministrator *bool
}

func (s *Store) Update(ctx context.Context, userID string, p UpdateParams) (*User, error) {
	u, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.Password != nil {
		hash, err := HashPassword(*p.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.IsAdministrator != nil {
		u.IsAdministrator = *p.IsAdministrator
	}
	const q = `
		UPDATE users
		SET password_hash = $2, first_name = $3, last_name = $4, is_administrator = $5, updated_at = $6
		WHERE user_id = $1
		RETURNING ` + userColumns
	return scanUser(s.db.QueryRowContext(ctx, q,
		u.UserID, u.PasswordHash, u.FirstName, u.LastName, u.IsAdministrator, time.Now().UTC()))
}

func (s *Store) Delete(ctx context.Context, userID string) error {
	const q = `DELETE FROM users WHERE user_id = $1`
	res, err := s.db.ExecContext(ctx, q, NormalizeUserID(userID))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

type seedFile struct {
	Users []struct {
		UserID          string `yaml:"userID"`
		Password        string `yaml:"password"`
		FirstName       string `yaml:"firstName"`
		LastName        string `yaml:"lastName"`
		IsAdministrator bool   `yaml:"isAdministrator"`
	} `yaml:"users"`
}

// SeedFromFile creates any accounts listed in a YAML file that do not exist
// yet. Existing accounts are left alone.
func (s *Store) SeedFromFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var sf seedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return err
	}
	for _, u := range sf.Users {
		if u.UserID == "" || u.Password == "" {
			continue
		}
		_, err := s.Create(ctx, CreateParams{
			UserID:          u.UserID,
			Password:        u.Password,
			FirstName:       u.FirstName,
			LastName:        u.LastName,
			IsAdministrator: u.IsAdministrator,
		})
		if err != nil && !errors.Is(err, ErrDuplicateUser) {
			return err
		}
	}
	return nil
}

// EnsureAdmin creates the bootstrap administrator account if it does not
// exist. Concurrent startups can both miss the lookup; the unique index on
// user_id decides the race and the loser's duplicate error is swallowed.
func (s *Store) EnsureAdmin(ctx context.Context, userID, password string) (bool, error) {
	if _, err := s.GetByUserID(ctx, userID); err == nil {
		return false, nil
	} else if !errors.Is(err, ErrUserNotFound) {
		return false, err
	}
	_, err := s.Create(ctx, CreateParams{
		UserID:          userID,
		Password:        password,
		FirstName:       "Admin",
		LastName:        "User",
		IsAdministrator: true,
	})
	if errors.Is(err, ErrDuplicateUser) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
