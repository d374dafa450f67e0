package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"taskboard/internal/models"
)

// Generator renders task reports (easy to mock in handler tests).
type Generator interface {
	Generate(w io.Writer, report TaskReport) error
}

// ReportGenerator is the gofpdf implementation.
type ReportGenerator struct {
	FontPath string // optional TTF, e.g. "assets/fonts/DejaVuSans.ttf"
	fontName string
}

// TaskReport is one rendered board: header, counts and a task table.
type TaskReport struct {
	Title       string
	Filter      models.TaskStatus
	Ascending   bool
	GeneratedAt time.Time
	Stats       models.TaskStats
	Tasks       []models.Task
}

// NewReportGenerator falls back to core Helvetica when fontPath is empty.
func NewReportGenerator(fontPath string) *ReportGenerator {
	g := &ReportGenerator{FontPath: fontPath, fontName: "Helvetica"}
	if fontPath != "" {
		g.fontName = "DejaVu"
	}
	return g
}

// column widths: title, status, due date; 170mm usable on A4 with 20mm margins
var colWidths = [3]float64{100, 40, 30}

func (g *ReportGenerator) Generate(w io.Writer, report TaskReport) error {
	if report.Title == "" {
		report.Title = "Tasks"
	}
	if report.GeneratedAt.IsZero() {
		report.GeneratedAt = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(report.Title, true)
	pdf.SetAuthor("taskboard", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	tr := g.setupFont(pdf)

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 9)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	// ===== Header
	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, tr(report.Title), "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	order := "earliest first"
	if !report.Ascending {
		order = "latest first"
	}
	filter := report.Filter
	if filter == "" {
		filter = models.StatusAll
	}
	sub := fmt.Sprintf("Generated %s  |  status: %s  |  %s",
		report.GeneratedAt.Format("2006-01-02 15:04"), filter, order)
	pdf.CellFormat(0, 6, tr(sub), "", 1, "L", false, 0, "")
	g.hr(pdf)

	// ===== Stats
	g.sectionTitle(pdf, "Summary")
	g.kvLine(pdf, "Total", fmt.Sprintf("%d", report.Stats.Total))
	g.kvLine(pdf, "Pending", fmt.Sprintf("%d", report.Stats.Pending))
	g.kvLine(pdf, "In Progress", fmt.Sprintf("%d", report.Stats.InProgress))
	g.kvLine(pdf, "Completed", fmt.Sprintf("%d", report.Stats.Completed))
	pdf.Ln(2)
	g.hr(pdf)

	// ===== Tasks
	g.sectionTitle(pdf, "Tasks")
	if len(report.Tasks) == 0 {
		pdf.SetFont(g.fontName, "", 11)
		pdf.CellFormat(0, 7, "No tasks found", "", 1, "L", false, 0, "")
	} else {
		g.tableHeader(pdf)
		pdf.SetFont(g.fontName, "", 10)
		for _, t := range report.Tasks {
			pdf.CellFormat(colWidths[0], 7, tr(truncate(t.Title, 60)), "B", 0, "L", false, 0, "")
			pdf.CellFormat(colWidths[1], 7, string(t.Status), "B", 0, "L", false, 0, "")
			pdf.CellFormat(colWidths[2], 7, t.DueDate.String(), "B", 1, "L", false, 0, "")
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return pdf.Output(w)
}

// ===== helpers =====

// setupFont registers the UTF-8 font if configured and returns the text
// translator to apply to user-provided strings.
func (g *ReportGenerator) setupFont(pdf *gofpdf.Fpdf) func(string) string {
	if g.FontPath != "" {
		pdf.AddUTF8Font(g.fontName, "", g.FontPath)
		pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
		return func(s string) string { return s }
	}
	return pdf.UnicodeTranslatorFromDescriptor("")
}

func (g *ReportGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *ReportGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) tableHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont(g.fontName, "B", 10)
	pdf.SetFillColor(235, 235, 235)
	for i, h := range []string{"Title", "Status", "Due date"} {
		ln := 0
		if i == len(colWidths)-1 {
			ln = 1
		}
		pdf.CellFormat(colWidths[i], 8, h, "1", ln, "L", true, 0, "")
	}
}

func (g *ReportGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
