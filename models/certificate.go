package models

import (
	"time"

	"gorm.io/gorm"
)

type CertificateStatus string

const (
	CertificateStatusPending  CertificateStatus = "pending"
	CertificateStatusIssued   CertificateStatus = "issued"
	CertificateStatusRejected CertificateStatus = "rejected"
)

// CertificateRequest is creatable only at 100% progress on a premium course
// that exposes a certificate. The unique index blocks duplicate requests.
type CertificateRequest struct {
	gorm.Model
	UserID          uint   `gorm:"not null;uniqueIndex:idx_certreq_user_course"`
	CourseID        uint   `gorm:"not null;uniqueIndex:idx_certreq_user_course"`
	Phone           string `gorm:"not null"`
	Email           string `gorm:"not null"`
	Status          CertificateStatus `gorm:"default:pending"`
	RejectionReason string
	User            User   `gorm:"foreignKey:UserID"`
	Course          Course `gorm:"foreignKey:CourseID"`
}

type Certificate struct {
	gorm.Model
	UserID   uint   `gorm:"index;not null"`
	CourseID uint   `gorm:"index;not null"`
	Number   string `gorm:"uniqueIndex;not null"`
	URL      string
	IssuedAt time.Time
}
