package accounts_test

import (
	"errors"
	"path/filepath"
	"testing"

	"ignisplay/internal/database"
	"ignisplay/services/accounts"
)

func setupService(t *testing.T) *accounts.Service {
	t.Helper()

	db, err := database.NewDB(database.Config{
		DatabasePath: filepath.Join(t.TempDir(), "state.db"),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return accounts.NewService(db)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := setupService(t)

	created, err := svc.Register("alice", "pw")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected created account to have an id")
	}
	if created.IsPremium {
		t.Fatalf("expected new account to be non-premium")
	}

	account, err := svc.Login("alice", "pw")
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	if account.ID != created.ID {
		t.Fatalf("expected login to return account %d, got %d", created.ID, account.ID)
	}
	if account.IsPremium {
		t.Fatalf("expected freshly registered account to be non-premium")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := setupService(t)

	first, err := svc.Register("alice", "pw")
	if err != nil {
		t.Fatalf("first register returned error: %v", err)
	}

	if _, err := svc.Register("alice", "other"); !errors.Is(err, accounts.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	// The first account still logs in with its original password.
	account, err := svc.Login("alice", "pw")
	if err != nil {
		t.Fatalf("login after duplicate register failed: %v", err)
	}
	if account.ID != first.ID {
		t.Fatalf("expected original account %d, got %d", first.ID, account.ID)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := setupService(t)

	if _, err := svc.Register("alice", "pw"); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	if _, err := svc.Login("alice", "wrong"); !errors.Is(err, accounts.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Login("nobody", "pw"); !errors.Is(err, accounts.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestPasswordIsNotStoredInTheClear(t *testing.T) {
	svc := setupService(t)

	account, err := svc.Register("alice", "hunter2")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if account.PasswordHash == "hunter2" {
		t.Fatalf("password stored in the clear")
	}
	if account.PasswordHash == "" {
		t.Fatalf("expected a stored password hash")
	}
}

func TestSetPremiumIsDurable(t *testing.T) {
	svc := setupService(t)

	account, err := svc.Register("alice", "pw")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	if err := svc.SetPremium(account.ID, true); err != nil {
		t.Fatalf("set premium returned error: %v", err)
	}

	// A fresh login reads the flag from the store, not from memory.
	fresh, err := svc.Login("alice", "pw")
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	if !fresh.IsPremium {
		t.Fatalf("expected premium flag to survive a fresh login")
	}
}

func TestGetMissingAccount(t *testing.T) {
	svc := setupService(t)

	account, err := svc.Get(9999)
	if err != nil {
		t.Fatalf("get returned error: %v", err)
	}
	if account != nil {
		t.Fatalf("expected nil for missing account, got %+v", account)
	}
}
