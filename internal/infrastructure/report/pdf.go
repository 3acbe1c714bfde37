package report

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/encoding/charmap"

	"bloodgroup-bot/internal/domain/entity"
	"bloodgroup-bot/internal/domain/port"
)

const (
	methodologyText = "The blood group detection was performed using YOLO object detection model. " +
		"The model analyzes the blood sample and identifies key markers associated with different blood groups."
	conclusionText = "Conclusion: Based on the analysis of the blood sample, the detected blood group is provided above. " +
		"For further analysis or additional tests, please consult with the attending physician."
	unknownText   = "WARNING: the detected markers do not match any known blood group. This is not a diagnosis."
	noMarkersText = "WARNING: no blood group markers were detected on the sample."
)

// Clinic реквизиты учреждения в шапке отчёта
type Clinic struct {
	Name    string
	Address string
	Contact string
}

// utf8Family — имя, под которым регистрируется TTF-шрифт.
const utf8Family = "ReportFont"

// PDFRenderer формирует PDF-отчёт с QR-кодом.
//
// Без fontPath используется встроенный Arial в кодировке cp1252: текст
// вне этой кодировки (например, кириллица) отклоняется с
// port.ErrUnsupportedText. С fontPath (TTF с нужными глифами) любой
// UTF-8 текст выводится как есть.
type PDFRenderer struct {
	clinic   Clinic
	logoPath string
	fontPath string
}

// NewPDFRenderer создаёт генератор отчётов. logoPath и fontPath могут быть пустыми.
func NewPDFRenderer(clinic Clinic, logoPath, fontPath string) *PDFRenderer {
	return &PDFRenderer{clinic: clinic, logoPath: logoPath, fontPath: fontPath}
}

// checkText проверяет, что поля отчёта представимы в cp1252.
func checkText(fields map[string]string) error {
	enc := charmap.Windows1252.NewEncoder()
	for name, value := range fields {
		if _, err := enc.String(value); err != nil {
			return fmt.Errorf("%w: %s %q", port.ErrUnsupportedText, name, value)
		}
	}
	return nil
}

// Render рисует отчёт на одной странице A4.
func (r *PDFRenderer) Render(ctx context.Context, report *entity.Report) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	qr, err := EncodeQR(report.VerificationPayload())
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	family := "Arial"
	tr := func(s string) string { return s }
	if r.fontPath != "" {
		for _, style := range []string{"", "B", "I"} {
			pdf.AddUTF8Font(utf8Family, style, r.fontPath)
		}
		family = utf8Family
	} else {
		if err := checkText(map[string]string{
			"patient name":   report.Patient.Name,
			"clinic name":    r.clinic.Name,
			"clinic address": r.clinic.Address,
			"clinic contact": r.clinic.Contact,
		}); err != nil {
			return nil, err
		}
		tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	pdf.SetTitle("Blood Group Report", true)
	pdf.AddPage()

	line := func(style string, size float64, text, align string) {
		pdf.SetFont(family, style, size)
		pdf.CellFormat(0, 10, tr(text), "", 1, align, false, 0, "")
	}

	line("B", 16, r.clinic.Name, "C")
	line("I", 12, "Address: "+r.clinic.Address, "C")
	line("I", 12, "Contact: "+r.clinic.Contact, "C")
	pdf.Ln(10)

	if r.logoPath != "" {
		if _, err := os.Stat(r.logoPath); err == nil {
			pdf.ImageOptions(r.logoPath, 80, 10, 50, 0, false, gofpdf.ImageOptions{ReadDpi: true}, 0, "")
			pdf.Ln(30)
		}
	}

	p := report.Patient
	c := report.Classification
	line("B", 12, "Patient Name: "+p.Name, "L")
	line("B", 12, fmt.Sprintf("Patient Age: %d years", p.Age), "L")
	line("B", 12, "Patient Gender: "+string(p.Gender), "L")
	pdf.Ln(5)

	line("B", 12, "Blood Group Detected: "+string(c.Group), "L")
	line("B", 12, "Detected Components: "+c.Markers.String(), "L")
	switch {
	case c.NoMarkers:
		line("B", 12, noMarkersText, "L")
	case !c.Group.IsKnown():
		line("B", 12, unknownText, "L")
	}
	line("", 12, "Generated: "+report.GeneratedAt.Format(entity.TimestampLayout), "L")
	line("", 10, "Report ID: "+report.ID.String(), "L")
	pdf.Ln(5)

	line("B", 12, "Test Methodology:", "L")
	pdf.SetFont(family, "", 12)
	pdf.MultiCell(0, 10, methodologyText, "", "L", false)
	pdf.Ln(5)
	pdf.MultiCell(0, 10, conclusionText, "", "L", false)
	pdf.Ln(5)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qr))
	pdf.ImageOptions("qr", 140, 180, 50, 50, false, opts, 0, "")
	pdf.Ln(5)

	line("", 12, "Doctor's Signature: ___________________", "L")
	pdf.Ln(10)
	line("I", 10, "For any inquiries, please contact "+r.clinic.Name+" at "+r.clinic.Contact, "C")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

var _ port.ReportRenderer = (*PDFRenderer)(nil)
