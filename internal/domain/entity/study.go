package entity

import (
	"time"

	"github.com/google/uuid"
)

// StudyCategory groups study rooms under a common theme.
type StudyCategory struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StudyRoom is a shared space where users study together. Every room
// belongs to exactly one category.
type StudyRoom struct {
	ID          uuid.UUID
	Name        string
	Description string
	CategoryID  uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AttendanceCheck records a single daily check-in by a user.
type AttendanceCheck struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
}
