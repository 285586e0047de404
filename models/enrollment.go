package models

import (
	"time"

	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment is one checkout attempt against the payment processor.
type Payment struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null"`
	CourseID  uint   `gorm:"index;not null"`
	OrderID   string `gorm:"uniqueIndex;not null"`
	PaymentID string
	Amount    float64
	Currency  string
	Status    PaymentStatus `gorm:"default:pending"`
}

type Enrollment struct {
	gorm.Model
	UserID   uint   `gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID uint   `gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	User     User   `gorm:"foreignKey:UserID"`
	Course   Course `gorm:"foreignKey:CourseID"`
}

// CourseProgress tracks a learner's consumption of one course.
type CourseProgress struct {
	gorm.Model
	UserID       uint `gorm:"not null;uniqueIndex:idx_progress_user_course"`
	CourseID     uint `gorm:"not null;uniqueIndex:idx_progress_user_course"`
	LastAccessed time.Time
	Completed    []CompletedLecture `gorm:"foreignKey:CourseProgressID"`
}

// CompletedLecture rows form a set: the unique index makes duplicate
// completion marks no-ops.
type CompletedLecture struct {
	gorm.Model
	CourseProgressID uint `gorm:"not null;uniqueIndex:idx_completed_progress_lecture"`
	LectureID        uint `gorm:"not null;uniqueIndex:idx_completed_progress_lecture"`
}

// Rating is one per (user, course); a second submission overwrites the first.
type Rating struct {
	gorm.Model
	UserID   uint `gorm:"not null;uniqueIndex:idx_rating_user_course"`
	CourseID uint `gorm:"not null;uniqueIndex:idx_rating_user_course"`
	Value    int  `gorm:"not null"`
}
