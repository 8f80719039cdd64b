package model

import (
	"time"

	"github.com/google/uuid"
)

// StudyCategoryModel mirrors the 'study_categories' table.
type StudyCategoryModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name        string    `gorm:"type:varchar(100);unique;not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	StudyRooms []StudyRoomModel `gorm:"foreignKey:CategoryID"`
}

// TableName explicitly sets the table name for GORM.
func (StudyCategoryModel) TableName() string {
	return "study_categories"
}

// StudyRoomModel mirrors the 'study_rooms' table.
type StudyRoomModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (StudyRoomModel) TableName() string {
	return "study_rooms"
}

// AttendanceCheckModel mirrors the 'attendance_checks' table.
type AttendanceCheckModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (AttendanceCheckModel) TableName() string {
	return "attendance_checks"
}
