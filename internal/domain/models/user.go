package models

import "time"

const (
	RoleAdmin   = "admin"
	RoleFinance = "finance"
)

type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
	IsActive   bool   `json:"isActive"`
}

// Session is resolved from the session cookie by the session middleware.
type Session struct {
	Token     string
	UserID    string
	Role      string
	ExpiresAt time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
