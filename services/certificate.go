package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// RenderCertificatePDF produces the completion certificate as a landscape A4
// PDF.
func RenderCertificatePDF(studentName, courseTitle, number string, issued time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetDrawColor(40, 60, 120)
	pdf.SetLineWidth(1.2)
	pdf.Rect(8, 8, 281, 194, "D")

	pdf.SetFont("Helvetica", "B", 34)
	pdf.SetY(45)
	pdf.CellFormat(0, 16, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.Ln(10)
	pdf.CellFormat(0, 10, "This certifies that", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 26)
	pdf.CellFormat(0, 14, studentName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 10, "has successfully completed the course", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, courseTitle, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.Ln(14)
	pdf.CellFormat(0, 8, fmt.Sprintf("Issued on %s", issued.Format("January 2, 2006")), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Certificate no. %s", number), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render certificate: %w", err)
	}
	return buf.Bytes(), nil
}
