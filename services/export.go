package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// EnrollmentRow is one line of the educator's roster export.
type EnrollmentRow struct {
	StudentName  string
	StudentEmail string
	CourseTitle  string
	EnrolledAt   time.Time
	AmountPaid   float64
	Progress     float64
}

// EnrollmentSheet renders the roster as an xlsx workbook.
func EnrollmentSheet(rows []EnrollmentRow) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	sheet := "Enrollments"

	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"Student", "Email", "Course", "Enrolled", "Amount Paid", "Progress %"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for r, row := range rows {
		values := []interface{}{
			row.StudentName,
			row.StudentEmail,
			row.CourseTitle,
			row.EnrolledAt.Format("2006-01-02"),
			row.AmountPaid,
			row.Progress,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	return f.WriteToBuffer()
}
