package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Compared against when the username is unknown, so login latency does not
// reveal whether an account exists.
var dummyPasswordHash = []byte("$2a$10$CwTycUXWue0Thq9StjUM0uJ8n4VWeNseyX2fA9DE.D7su7J6iYGTC")

// User is a registered account.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
}

// Users owns user accounts.
type Users struct {
	db *sql.DB
}

// NewUsers wires a Users store over the shared database handle.
func NewUsers(db *sql.DB) *Users {
	return &Users{db: db}
}

// Create registers a new user and returns the generated id.
func (u *Users) Create(ctx context.Context, username, password, fullname string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", fmt.Errorf("username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	id, err := newID("user")
	if err != nil {
		return "", fmt.Errorf("generate user id: %w", err)
	}

	var inserted string
	err = u.db.QueryRowContext(ctx, `
		INSERT INTO users (id, username, password_hash, fullname)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, id, username, hash, fullname).Scan(&inserted)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("insert user: %w", ErrInvariant)
	}
	if isUniqueViolation(err) {
		return "", ErrUserExists
	}
	if err != nil {
		return "", fmt.Errorf("insert user: %w", err)
	}
	return inserted, nil
}

// GetByID returns a single user.
func (u *Users) GetByID(ctx context.Context, id string) (User, error) {
	var user User
	err := u.db.QueryRowContext(ctx, `
		SELECT id, username, fullname
		FROM users
		WHERE id = $1
	`, id).Scan(&user.ID, &user.Username, &user.Fullname)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// MustExist confirms a user id references a stored row.
func (u *Users) MustExist(ctx context.Context, id string) error {
	var found string
	err := u.db.QueryRowContext(ctx, `
		SELECT id
		FROM users
		WHERE id = $1
	`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	return nil
}

// VerifyCredentials validates a username/password pair and returns the
// account's user id.
func (u *Users) VerifyCredentials(ctx context.Context, username, password string) (string, error) {
	var (
		id   string
		hash []byte
	)
	err := u.db.QueryRowContext(ctx, `
		SELECT id, password_hash
		FROM users
		WHERE username = $1
	`, username).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return id, nil
}
