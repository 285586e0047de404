package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// EducatorApplication is created by a prospective educator and decided by an
// admin. Approval upgrades the applicant's role and opens a wallet.
type EducatorApplication struct {
	gorm.Model
	UserID          uint `gorm:"uniqueIndex;not null"`
	Name            string
	Tagline         string
	Bio             string
	TechTags        datatypes.JSON
	GitHubURL       string
	LinkedInURL     string
	ImageURL        string
	Status          ApplicationStatus `gorm:"default:pending"`
	RejectionReason string
	User            User `gorm:"foreignKey:UserID"`
}
