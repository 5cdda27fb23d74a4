package domain

import (
	"errors"
	"time"
)

const (
	// DateLayout is the ISO calendar date format used for dates of birth.
	DateLayout = "2006-01-02"
	// MaxNameLength bounds first_name and last_name, in characters.
	MaxNameLength = 100
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrOwnerNotFound = errors.New("owner user not found")
)

// User is a person that can own properties.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	// DateOfBirth is a YYYY-MM-DD date, empty once explicitly cleared.
	DateOfBirth string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsValidDate reports whether s is a real calendar date in DateLayout.
func IsValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
