package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserStatus string

const (
	UserActive  UserStatus = "ACTIVE"
	UserBlocked UserStatus = "BLOCKED"
	UserPending UserStatus = "PENDING"
)

type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Status    UserStatus
	CreatedAt time.Time
}

func (u *User) IsActive() bool {
	return u.Status == UserActive
}
