package session

import (
	"log"
	"sync"

	"ignisplay/models"
	"ignisplay/services/accounts"
)

// Session tracks which account, if any, is currently authenticated in this
// process. It starts anonymous, lives for the process lifetime and is never
// persisted; a restart always comes back anonymous.
//
// The session is constructed once at the application root and passed to
// every component that needs it.
type Session struct {
	accounts *accounts.Service

	mu      sync.RWMutex
	current *models.Account
}

// New returns an anonymous session bound to the given account service.
func New(accountsSvc *accounts.Service) *Session {
	return &Session{accounts: accountsSvc}
}

// Current returns a snapshot of the authenticated account, or nil when the
// session is anonymous.
func (s *Session) Current() *models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	snapshot := *s.current
	return &snapshot
}

// Login authenticates the credentials and, on success, transitions the
// session to the returned account.
func (s *Session) Login(username, password string) (*models.Account, error) {
	account, err := s.accounts.Login(username, password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = account
	s.mu.Unlock()

	log.Printf("[session] authenticated id=%d username=%q", account.ID, account.Username)
	return account, nil
}

// Register creates a new account. It does not transition the session;
// callers log in explicitly afterwards.
func (s *Session) Register(username, password string) (*models.Account, error) {
	return s.accounts.Register(username, password)
}

// Logout drops the authenticated account. No store cleanup happens.
func (s *Session) Logout() {
	s.mu.Lock()
	was := s.current
	s.current = nil
	s.mu.Unlock()

	if was != nil {
		log.Printf("[session] logged out id=%d", was.ID)
	}
}

// SetPremium updates the premium flag in the store and, when this session
// holds that account, re-snapshots the in-memory copy without re-querying.
func (s *Session) SetPremium(accountID int64, isPremium bool) error {
	if err := s.accounts.SetPremium(accountID, isPremium); err != nil {
		return err
	}

	s.mu.Lock()
	if s.current != nil && s.current.ID == accountID {
		updated := *s.current
		updated.IsPremium = isPremium
		s.current = &updated
	}
	s.mu.Unlock()
	return nil
}
