// Package model defines the persisted entities of the condo panel.
package model

import "time"

// User roles. Exactly one sindico should exist once the database is
// bootstrapped; role changes go through the role transfer service only.
const (
	RoleMorador = "morador"
	RoleSindico = "sindico"
)

// Canonical request statuses. The status column is constrained to this set;
// anything else is rejected before it reaches the database.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In-Progress"
	StatusCompleted  = "Completed"
)

// ValidStatus reports whether s is one of the canonical request statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type User struct {
	Id           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`
	Role         string `json:"role" gorm:"not null"`

	// Resident profile, filled at registration (cadastro).
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Block     string `json:"block"`
	Apartment string `json:"apartment"`
}

type ServiceType struct {
	Id   int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

type Request struct {
	Id            int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserId        int       `json:"userId" gorm:"not null;index"`
	ServiceTypeId int       `json:"serviceTypeId" gorm:"not null;index"`
	Title         string    `json:"title" gorm:"not null"`
	Description   string    `json:"description"`
	PhotoPath     string    `json:"photoPath"`
	Status        string    `json:"status" gorm:"not null;default:Pending"`
	Note          string    `json:"note"`
	CreatedAt     time.Time `json:"createdAt"`

	User        User        `json:"user" gorm:"foreignKey:UserId;references:Id"`
	ServiceType ServiceType `json:"serviceType" gorm:"foreignKey:ServiceTypeId;references:Id"`
}

type Setting struct {
	Id    int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key" gorm:"uniqueIndex;not null"`
	Value string `json:"value" gorm:"not null"`
}
