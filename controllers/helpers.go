package controllers

import (
	"gorm.io/gorm"

	"learnhub/models"
)

// completionStats recomputes a learner's completion for one course from the
// completed-lecture set and the course's lecture count. Marks are counted
// only while their lecture is still part of the course; a content save that
// removes lectures also retires their marks.
func completionStats(db *gorm.DB, userID, courseID uint) (completed, total int64, percent float64) {
	db.Model(&models.Lecture{}).
		Joins("JOIN chapters ON chapters.id = lectures.chapter_id").
		Where("chapters.course_id = ?", courseID).
		Count(&total)

	db.Model(&models.CompletedLecture{}).
		Joins("JOIN course_progresses ON course_progresses.id = completed_lectures.course_progress_id").
		Joins("JOIN lectures ON lectures.id = completed_lectures.lecture_id AND lectures.deleted_at IS NULL").
		Joins("JOIN chapters ON chapters.id = lectures.chapter_id AND chapters.course_id = course_progresses.course_id").
		Where("course_progresses.user_id = ? AND course_progresses.course_id = ?", userID, courseID).
		Count(&completed)

	if total == 0 {
		return completed, total, 0
	}
	return completed, total, float64(completed) / float64(total) * 100
}

func clampDiscount(d int) int {
	if d < 0 {
		return 0
	}
	if d > 100 {
		return 100
	}
	return d
}
