package modmin

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleModerator Role = "Moderator"
)

// Actor identifies the staff member behind a request. Moderators only see
// records they authored; Admins see everything.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

type Modmin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Surname      string    `json:"surname"`
	OtherNames   string    `json:"otherNames"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewModmin(email, surname, otherNames, passwordHash string, role Role) *Modmin {
	now := time.Now()
	return &Modmin{
		ID:           uuid.NewString(),
		Email:        email,
		Surname:      surname,
		OtherNames:   otherNames,
		PasswordHash: passwordHash,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (m *Modmin) ToggleStatus() {
	m.Active = !m.Active
	m.UpdatedAt = time.Now()
}
