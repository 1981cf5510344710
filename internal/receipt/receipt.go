// Package receipt renders a printable PDF acknowledgement of a complaint.
package receipt

import (
	_ "embed"
	"fmt"
	"io"
	"time"

	"github.com/diewo77/go-complaints/i18n"
	"github.com/diewo77/go-complaints/internal/models"
	"github.com/jung-kurt/gofpdf"
)

// DejaVu Sans covers Latin, Greek and Cyrillic, so titles and descriptions
// are rendered as entered instead of being squeezed into cp1252.
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	regularFont []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	boldFont []byte
)

const family = "DejaVu"

// Filename is the suggested download name for c.
func Filename(c *models.Complaint) string {
	return fmt.Sprintf("complaint-%d.pdf", c.ID)
}

// Write renders c as an A4 PDF into w, labelled in lang.
func Write(w io.Writer, c *models.Complaint, lang string, generated time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddUTF8FontFromBytes(family, "", regularFont)
	pdf.AddUTF8FontFromBytes(family, "B", boldFont)
	label := func(code string) string { return i18n.T(lang, code) }

	pdf.SetTitle(fmt.Sprintf("%s #%d", i18n.T(lang, "view_complaint"), c.ID), true)
	pdf.SetCreator(i18n.T(lang, "app_name"), true)
	pdf.AddPage()

	pdf.SetFont(family, "B", 16)
	pdf.CellFormat(0, 10, label("app_name"), "", 1, "L", false, 0, "")
	pdf.SetFont(family, "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("%s #%d", label("view_complaint"), c.ID), "B", 1, "L", false, 0, "")
	pdf.Ln(4)

	row := func(code, value string) {
		pdf.SetFont(family, "B", 10)
		pdf.CellFormat(45, 7, label(code), "", 0, "L", false, 0, "")
		pdf.SetFont(family, "", 10)
		pdf.MultiCell(0, 7, value, "", "L", false)
	}
	row("title", c.Title)
	row("category", c.Category)
	row("status", i18n.T(lang, "status_"+c.Status.String()))
	if c.User != nil {
		row("submitted_by", fmt.Sprintf("%s (%s)", c.User.Name, c.User.StudentID))
	}
	row("created_at", c.CreatedAt.UTC().Format("2006-01-02 15:04 UTC"))
	row("updated_at", c.UpdatedAt.UTC().Format("2006-01-02 15:04 UTC"))

	pdf.Ln(3)
	pdf.SetFont(family, "B", 11)
	pdf.CellFormat(0, 8, label("description"), "", 1, "L", false, 0, "")
	pdf.SetFont(family, "", 10)
	pdf.MultiCell(0, 6, c.Description, "", "L", false)

	if c.AdminRemarks != "" {
		pdf.Ln(3)
		pdf.SetFont(family, "B", 11)
		pdf.CellFormat(0, 8, label("admin_remarks"), "", 1, "L", false, 0, "")
		pdf.SetFont(family, "", 10)
		pdf.MultiCell(0, 6, c.AdminRemarks, "", "L", false)
	}

	pdf.SetY(-20)
	pdf.SetFont(family, "", 8)
	pdf.CellFormat(0, 5, generated.UTC().Format(time.RFC3339), "", 0, "R", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
