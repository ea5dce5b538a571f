package domain

import "time"

// AdminUser is a staff account able to access the admin API.
// Accounts are provisioned out-of-band (cmd/seedadmin); the service itself
// only ever reads them.
type AdminUser struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}
