package domain

import "time"

// User is an authenticated owner of accounts, transactions, and loans.
type User struct {
	UserID           int64      `json:"userID"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	RefreshTokenHash string     `json:"-"`
	RefreshExpiresAt *time.Time `json:"-"`
	AuditFields
}
