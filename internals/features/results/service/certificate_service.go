package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// CertificateData carries everything the renderer needs; no DB access here.
type CertificateData struct {
	StudentName string
	EventTitle  string
	Rank        int
	EventDate   time.Time
	IssuedAt    time.Time
}

// RenderCertificate draws a landscape A4 certificate and returns the PDF
// bytes.
func RenderCertificate(data CertificateData) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Certificate of Achievement", false)
	pdf.AddPage()

	w, h := pdf.GetPageSize()

	// Border
	pdf.SetLineWidth(1.2)
	pdf.SetDrawColor(30, 60, 120)
	pdf.Rect(8, 8, w-16, h-16, "D")
	pdf.SetLineWidth(0.4)
	pdf.Rect(11, 11, w-22, h-22, "D")

	pdf.SetY(35)
	pdf.SetFont("Helvetica", "B", 34)
	pdf.SetTextColor(30, 60, 120)
	pdf.CellFormat(0, 16, "Certificate of Achievement", "", 1, "C", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 8, "This certificate is proudly presented to", "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 28)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(0, 14, data.StudentName, "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 8,
		fmt.Sprintf("for securing %s place in", ordinal(data.Rank)),
		"", 1, "C", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(0, 10, data.EventTitle, "", 1, "C", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 13)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 8,
		fmt.Sprintf("held on %s", data.EventDate.Format("January 2, 2006")),
		"", 1, "C", false, 0, "")

	pdf.SetY(h - 35)
	pdf.SetFont("Helvetica", "I", 11)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6,
		fmt.Sprintf("Issued by EventHub on %s", data.IssuedAt.Format("January 2, 2006")),
		"", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render certificate: %w", err)
	}
	return buf.Bytes(), nil
}

func ordinal(n int) string {
	switch {
	case n%100 >= 11 && n%100 <= 13:
		return fmt.Sprintf("%dth", n)
	case n%10 == 1:
		return fmt.Sprintf("%dst", n)
	case n%10 == 2:
		return fmt.Sprintf("%dnd", n)
	case n%10 == 3:
		return fmt.Sprintf("%drd", n)
	default:
		return fmt.Sprintf("%dth", n)
	}
}
