package user

import "github.com/google/uuid"

// хэш пароля наружу не отдаём
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsActive     bool      `json:"is_active" db:"is_active"`
}

const UsernameMinLen = 4
const UsernameMaxLen = 20
