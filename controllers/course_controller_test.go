package controllers_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/models"
)

func TestCatalogListsOnlyApprovedCourses(t *testing.T) {
	env := newTestEnv(t)
	_, educatorID := env.newEducator(t, "cat-edu@example.com")

	env.seedCourse(t, educatorID, "Visible Course", models.CourseStatusApproved, 2)
	env.seedCourse(t, educatorID, "Draft Course", models.CourseStatusPending, 2)
	env.seedCourse(t, educatorID, "Rejected Course", models.CourseStatusRejected, 2)

	resp, body := env.doJSON(t, "GET", "/api/course/all", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	courses := body["data"].([]interface{})
	require.Len(t, courses, 1)
	assert.Equal(t, "Visible Course", courses[0].(map[string]interface{})["title"])
}

func TestCatalogSearch(t *testing.T) {
	env := newTestEnv(t)
	_, educatorID := env.newEducator(t, "search-edu@example.com")

	env.seedCourse(t, educatorID, "Intro to Go", models.CourseStatusApproved, 1)
	env.seedCourse(t, educatorID, "Advanced Rust", models.CourseStatusApproved, 1)

	resp, body := env.doJSON(t, "GET", "/api/course/all?search=Go", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	courses := body["data"].([]interface{})
	require.Len(t, courses, 1)
	assert.Equal(t, "Intro to Go", courses[0].(map[string]interface{})["title"])
}

func TestCourseDetailHidesMediaForGuests(t *testing.T) {
	env := newTestEnv(t)
	_, educatorID := env.newEducator(t, "detail-edu@example.com")

	course := env.seedCourse(t, educatorID, "Locked Course", models.CourseStatusApproved, 2)

	// Mark the first lecture as a free preview.
	var first models.Lecture
	require.NoError(t, env.db.Where("title = ?", "Lecture 1").First(&first).Error)
	require.NoError(t, env.db.Model(&first).Update("is_free_preview", true).Error)

	resp, body := env.doJSON(t, "GET", fmt.Sprintf("/api/course/%d", course.ID), "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	chapters := data["courseContent"].([]interface{})
	lectures := chapters[0].(map[string]interface{})["lectures"].([]interface{})

	preview := lectures[0].(map[string]interface{})
	locked := lectures[1].(map[string]interface{})
	assert.NotEmpty(t, preview["mediaUrl"], "free preview should expose its media URL")
	assert.Empty(t, locked["mediaUrl"], "locked lecture must not expose its media URL")
}

func TestCourseDetailShowsMediaWhenEnrolled(t *testing.T) {
	env := newTestEnv(t)
	_, educatorID := env.newEducator(t, "enrolled-edu@example.com")
	studentToken, studentID := env.register(t, "Student", "enrolled-student@example.com")

	course := env.seedCourse(t, educatorID, "Open Course", models.CourseStatusApproved, 1)
	env.enroll(t, studentID, course.ID)

	resp, body := env.doJSON(t, "GET", fmt.Sprintf("/api/course/%d", course.ID), studentToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["isEnrolled"])

	chapters := data["courseContent"].([]interface{})
	lectures := chapters[0].(map[string]interface{})["lectures"].([]interface{})
	assert.NotEmpty(t, lectures[0].(map[string]interface{})["mediaUrl"])
}

func TestPendingCourseHiddenFromPublicDetail(t *testing.T) {
	env := newTestEnv(t)
	_, educatorID := env.newEducator(t, "hidden-edu@example.com")

	course := env.seedCourse(t, educatorID, "Hidden Course", models.CourseStatusPending, 1)

	resp, _ := env.doJSON(t, "GET", fmt.Sprintf("/api/course/%d", course.ID), "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
