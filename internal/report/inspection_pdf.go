package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"fleet-manager-backend/internal/model"
)

// GenerateInspectionPDF renders a signed inspection report and writes it under
// dir, returning the file path.
func GenerateInspectionPDF(dir string, insp *model.Inspection) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report dir: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 12)

	pdf.CellFormat(190, 10, "Vehicle Inspection Report", "", 1, "C", false, 0, "")
	pdf.CellFormat(190, 10, fmt.Sprintf("Vehicle ID: %d", insp.VehicleID), "", 1, "L", false, 0, "")
	pdf.CellFormat(190, 10, fmt.Sprintf("User ID: %d", insp.UserID), "", 1, "L", false, 0, "")
	pdf.CellFormat(190, 10, fmt.Sprintf("Type: %s", insp.Type), "", 1, "L", false, 0, "")
	pdf.CellFormat(190, 10, fmt.Sprintf("Date: %s", insp.Date.Format("2006-01-02")), "", 1, "L", false, 0, "")
	pdf.CellFormat(190, 10, fmt.Sprintf("Status: %s", insp.Status), "", 1, "L", false, 0, "")
	pdf.CellFormat(190, 10, fmt.Sprintf("Signed By: %s", insp.SignedBy), "", 1, "L", false, 0, "")

	fileName := fmt.Sprintf("inspection_%d_%s.pdf", insp.VehicleID, insp.Date.Format("2006-01-02"))
	path := filepath.Join(dir, fileName)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write inspection report: %w", err)
	}
	return path, nil
}
