package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CourseStatus is the publication state of a course listing.
type CourseStatus string

const (
	CourseStatusPending  CourseStatus = "pending"
	CourseStatusApproved CourseStatus = "approved"
	CourseStatusRejected CourseStatus = "rejected"
)

func (s CourseStatus) IsValid() bool {
	switch s {
	case CourseStatusPending, CourseStatusApproved, CourseStatusRejected:
		return true
	}
	return false
}

type CourseType string

const (
	CourseTypeBasic   CourseType = "basic"
	CourseTypePremium CourseType = "premium"
)

type Course struct {
	gorm.Model
	Title            string `gorm:"not null"`
	Description      string
	Category         string
	Difficulty       string // beginner, intermediate, advanced
	Language         string
	Tags             datatypes.JSON
	Requirements     datatypes.JSON
	LearningOutcomes datatypes.JSON
	Price            float64
	DiscountPercent  int
	ThumbnailURL     string
	PromoVideoURL    string
	CourseType       CourseType   `gorm:"default:basic"`
	Status           CourseStatus `gorm:"default:pending;index"`
	RejectionReason  string
	EducatorID       uint `gorm:"index;not null"`
	Educator         User `gorm:"foreignKey:EducatorID"`
	Chapters         []Chapter
	PremiumFeatures  *PremiumFeatures
}

// DiscountedPrice is the price after the listed discount is applied.
func (c *Course) DiscountedPrice() float64 {
	return c.Price * float64(100-c.DiscountPercent) / 100
}

// TotalLectures counts lectures across all chapters. Chapters must be preloaded.
func (c *Course) TotalLectures() int {
	total := 0
	for _, ch := range c.Chapters {
		total += len(ch.Lectures)
	}
	return total
}

type Chapter struct {
	gorm.Model
	CourseID      uint `gorm:"index;not null"`
	Title         string
	SequenceOrder int
	Lectures      []Lecture
}

type Lecture struct {
	gorm.Model
	ChapterID       uint `gorm:"index;not null"`
	Title           string
	DurationMinutes int
	MediaURL        string
	IsFreePreview   bool
	SequenceOrder   int
}

// PremiumFeatures exists only for premium courses.
type PremiumFeatures struct {
	gorm.Model
	CourseID             uint `gorm:"uniqueIndex;not null"`
	CommunityURL         string
	QAEnabled            bool
	CareerSupport        bool
	InstructorAssistance string
	LiveSessionSchedule  string
	HasCertificate       bool
	Handouts             []Handout
}

type Handout struct {
	gorm.Model
	PremiumFeaturesID uint `gorm:"index;not null"`
	Name              string
	MimeType          string
	SizeBytes         int64
	URL               string
	UploadedAt        time.Time
}
