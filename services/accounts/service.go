package accounts

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"

	"ignisplay/internal/database"
	"ignisplay/models"
)

var (
	// ErrUsernameTaken is returned when registering a username that
	// already has an account.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials is returned for both unknown usernames and
	// wrong passwords; callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Service manages viewer accounts backed by the user-state database.
type Service struct {
	db *database.DB
}

// NewService creates an account service on top of the shared database handle.
func NewService(db *database.DB) *Service {
	return &Service{db: db}
}

// Register creates a new non-premium account. The password is stored as a
// bcrypt hash, never in the clear.
func (s *Service) Register(username, password string) (*models.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	res, err := s.db.Connection().Exec(
		"INSERT INTO users (username, password_hash, is_premium) VALUES (?, ?, 0)",
		username, string(hash),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("resolve account id: %w", err)
	}

	log.Printf("[accounts] registered account id=%d username=%q", id, username)

	return &models.Account{
		ID:           id,
		Username:     username,
		IsPremium:    false,
		PasswordHash: string(hash),
	}, nil
}

// Login verifies the claimed credentials and returns the matching account.
// Unknown usernames and wrong passwords both surface ErrInvalidCredentials.
func (s *Service) Login(username, password string) (*models.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	account, err := s.findByUsername(username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return account, nil
}

// Get returns the account with the given id, or nil when it does not exist.
func (s *Service) Get(accountID int64) (*models.Account, error) {
	row := s.db.Connection().QueryRow(
		"SELECT id, username, password_hash, is_premium FROM users WHERE id = ?",
		accountID,
	)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("look up account: %w", err)
	}
	return account, nil
}

// SetPremium updates the premium flag on the stored account. In-memory
// session snapshots are the caller's responsibility to refresh.
func (s *Service) SetPremium(accountID int64, isPremium bool) error {
	flag := 0
	if isPremium {
		flag = 1
	}

	if _, err := s.db.Connection().Exec(
		"UPDATE users SET is_premium = ? WHERE id = ?", flag, accountID,
	); err != nil {
		return fmt.Errorf("update premium flag: %w", err)
	}

	log.Printf("[accounts] premium flag updated id=%d premium=%t", accountID, isPremium)
	return nil
}

func (s *Service) findByUsername(username string) (*models.Account, error) {
	row := s.db.Connection().QueryRow(
		"SELECT id, username, password_hash, is_premium FROM users WHERE username = ?",
		username,
	)
	return scanAccount(row)
}

func scanAccount(row *sql.Row) (*models.Account, error) {
	var account models.Account
	var premium int
	if err := row.Scan(&account.ID, &account.Username, &account.PasswordHash, &premium); err != nil {
		return nil, err
	}
	account.IsPremium = premium != 0
	return &account, nil
}
