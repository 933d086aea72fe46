package models

// Account models a registered IgnisPlay viewer.
type Account struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	IsPremium bool   `json:"isPremium"`

	// PasswordHash is the bcrypt hash of the account password. It never
	// leaves the process.
	PasswordHash string `json:"-"`
}
