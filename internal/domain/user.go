package domain

import (
	"time"

	"github.com/google/uuid"
)

// Module is an optional tracker module a user can switch on or off.
type Module string

const (
	ModuleStress   Module = "stress"
	ModuleFungal   Module = "fungal"
	ModuleSleep    Module = "sleep"
	ModuleWeather  Module = "weather"
	ModuleSweating Module = "sweating"
	ModuleContact  Module = "contact"
)

// ModuleSet records which trigger modules are evaluated. Foods are always
// tracked and have no toggle.
// @Description Enabled tracker modules.
type ModuleSet struct {
	Stress   bool `gorm:"not null" json:"stress"`
	Fungal   bool `gorm:"not null" json:"fungal"`
	Sleep    bool `gorm:"not null" json:"sleep"`
	Weather  bool `gorm:"not null" json:"weather"`
	Sweating bool `gorm:"not null" json:"sweating"`
	Contact  bool `gorm:"not null" json:"contact"`
}

// AllModules returns a set with every module enabled.
func AllModules() ModuleSet {
	return ModuleSet{Stress: true, Fungal: true, Sleep: true, Weather: true, Sweating: true, Contact: true}
}

// Enabled reports whether m is switched on.
func (s ModuleSet) Enabled(m Module) bool {
	switch m {
	case ModuleStress:
		return s.Stress
	case ModuleFungal:
		return s.Fungal
	case ModuleSleep:
		return s.Sleep
	case ModuleWeather:
		return s.Weather
	case ModuleSweating:
		return s.Sweating
	case ModuleContact:
		return s.Contact
	default:
		return false
	}
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Timezone  string    `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	Modules   ModuleSet `gorm:"embedded;embeddedPrefix:module_" json:"modules"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// Location returns the user's home timezone, falling back to UTC.
func (u *User) Location() *time.Location {
	if u.Timezone != "" {
		if loc, err := time.LoadLocation(u.Timezone); err == nil {
			return loc
		}
	}
	return time.UTC
}

// Today returns the user's current calendar day.
func (u *User) Today(now time.Time) time.Time {
	return CalendarDay(now.In(u.Location()))
}

// CreateUserRequest is the request body for creating a user
type CreateUserRequest struct {
	Timezone string     `json:"timezone" validate:"required,timezone"`
	Modules  *ModuleSet `json:"modules,omitempty"`
}

// UpdateModulesRequest replaces the enabled tracker modules.
type UpdateModulesRequest struct {
	Modules ModuleSet `json:"modules"`
}

// UserResponse is the response body for user endpoints
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Timezone  string    `json:"timezone"`
	Modules   ModuleSet `json:"modules"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Timezone:  u.Timezone,
		Modules:   u.Modules,
		CreatedAt: u.CreatedAt,
	}
}
