package document

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// PacketData is everything the onboarding packet summary needs. The packet
// is a generated summary document, not a filled government form.
type PacketData struct {
	EmployeeName string
	PropertyName string
	JobTitle     string
	StartDate    time.Time
	PayRate      float64
	PayFrequency string
	Supervisor   string

	Steps []PacketStep
}

type PacketStep struct {
	Name        string
	CompletedAt time.Time
	CompletedBy string
}

type Generator interface {
	OnboardingPacket(data PacketData) ([]byte, error)
}

type PDFGenerator struct{}

func NewPDFGenerator() *PDFGenerator {
	return &PDFGenerator{}
}

func (g *PDFGenerator) OnboardingPacket(data PacketData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Onboarding Packet", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Employee Onboarding Packet", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	kv := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}

	kv("Employee", data.EmployeeName)
	kv("Property", data.PropertyName)
	kv("Position", data.JobTitle)
	kv("Start Date", data.StartDate.Format("January 2, 2006"))
	kv("Pay", fmt.Sprintf("$%.2f / %s", data.PayRate, data.PayFrequency))
	kv("Supervisor", data.Supervisor)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Completed Steps", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(80, 7, "Step", "1", 0, "L", true, 0, "")
	pdf.CellFormat(55, 7, "Completed At", "1", 0, "L", true, 0, "")
	pdf.CellFormat(0, 7, "By", "1", 1, "L", true, 0, "")

	for _, s := range data.Steps {
		pdf.CellFormat(80, 7, s.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(55, 7, s.CompletedAt.Format("2006-01-02 15:04 MST"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, s.CompletedBy, "1", 1, "L", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s", time.Now().UTC().Format(time.RFC1123)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
