package models

import (
	"strings"
	"time"
)

type User struct {
	ID           uint64      `gorm:"primarykey" json:"id"`
	FirstName    string      `gorm:"type:varchar(100)" json:"first_name"`
	LastName     string      `gorm:"type:varchar(100)" json:"last_name"`
	Name         string      `gorm:"type:varchar(255);not null" json:"name"`
	Email        string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string      `gorm:"type:varchar(255);not null" json:"-"`
	Role         string      `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	IsActive     bool        `gorm:"not null;default:true" json:"is_active"`
	AuthProvider string      `gorm:"type:varchar(50)" json:"auth_provider,omitempty"`
	ProviderID   string      `gorm:"type:varchar(100)" json:"-"`
	Settings     SettingsMap `gorm:"type:json" json:"settings,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	LastLogin    *time.Time  `json:"last_login,omitempty"`

	// Relations
	Tasks []Task `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// ComposeName derives the combined display name from its parts. The legacy
// name column must always equal "first last" when both parts are set.
func ComposeName(firstName, lastName string) string {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	switch {
	case firstName != "" && lastName != "":
		return firstName + " " + lastName
	case firstName != "":
		return firstName
	default:
		return lastName
	}
}

// SplitName breaks a combined display name into first and last parts.
// Names without a space become the first name only.
func SplitName(name string) (firstName, lastName string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	parts := strings.SplitN(name, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

// SetName updates the legacy name column and keeps the first/last parts in
// sync. Called at the boundary when only a combined name is supplied.
func (u *User) SetName(name string) {
	u.Name = name
	first, last := SplitName(name)
	if first != "" && last != "" {
		u.FirstName = first
		u.LastName = last
	}
}

// SetNameParts updates first/last name and re-derives the legacy column.
func (u *User) SetNameParts(firstName, lastName string) {
	u.FirstName = firstName
	u.LastName = lastName
	u.Name = ComposeName(firstName, lastName)
}
