package export

import (
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"github.com/Djberg2/GrndWrkv0/internal/models"
	"github.com/Djberg2/GrndWrkv0/internal/pricing"
)

const (
	SheetName   = "Leads"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var headers = []string{
	"ID", "Name", "Email", "Phone", "Address", "Service", "Square Footage",
	"Estimate", "Appointment Date", "Appointment Time", "Status", "Assigned To",
	"Notes", "Created At",
}

// WriteLeads writes leads as a single-sheet workbook. estimatorNames maps
// estimator ids to display names; unknown ids are written as-is.
func WriteLeads(w io.Writer, leads []models.Lead, estimatorNames map[string]string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return eris.Wrap(err, "export: create sheet")
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return eris.Wrap(err, "export: drop default sheet")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return eris.Wrap(err, "export: create style")
	}

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	last, _ := excelize.ColumnNumberToName(len(headers))
	if err := f.SetCellStyle(SheetName, "A1", last+"1", headerStyle); err != nil {
		return eris.Wrap(err, "export: style header")
	}

	for i, l := range leads {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{
			l.ID, l.Fullname, l.Email, l.Phone, l.Address,
			pricing.ServiceLabel(pricing.ServiceKey(l.ServiceType)), l.SquareFootage,
			l.Estimate, deref(l.AppointmentDate), deref(l.AppointmentTime), l.Status,
			estimatorName(l.AssignedTo, estimatorNames), l.Notes,
			l.CreatedAt.Format("2006-01-02 15:04"),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return eris.Wrapf(err, "export: write row %d", i+2)
		}
	}
	if err := f.SetColWidth(SheetName, "A", last, 18); err != nil {
		return eris.Wrap(err, "export: set widths")
	}

	if _, err := f.WriteTo(w); err != nil {
		return eris.Wrap(err, "export: write workbook")
	}
	return nil
}

func estimatorName(id *string, names map[string]string) string {
	if id == nil {
		return ""
	}
	if n, ok := names[*id]; ok && strings.TrimSpace(n) != "" {
		return n
	}
	return *id
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
