package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"circuit-load/internal/loadcalc/application"
	loadcalc "circuit-load/internal/loadcalc/domain"
)

// StatusLabel is the human-readable classification of a report.
func StatusLabel(status loadcalc.Status) string {
	switch status {
	case loadcalc.StatusOverloaded:
		return "OVERLOADED"
	case loadcalc.StatusNearLimit:
		return "Near Limit"
	default:
		return "Safe Load"
	}
}

// BuildPanelPDF renders a load summary page per circuit.
func BuildPanelPDF(reports []application.CircuitReport, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Electrical Load Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", generatedAt.UTC().Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Circuits: %d", len(reports)))
	pdf.Ln(8)

	for _, item := range reports {
		circuit, report := item.Circuit, item.Report
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 7, fmt.Sprintf("%s (%gV / %gA) - %s", circuit.Name, circuit.Voltage, circuit.BreakerRating, StatusLabel(report.Status)))
		pdf.Ln(7)
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(0, 5, fmt.Sprintf("Current Draw: %.2fA / %gA", report.TotalAmps, report.MaxAmps))
		pdf.Ln(5)
		pdf.Cell(0, 5, fmt.Sprintf("Total Load: %.0fW   Usage: %.1f%%", report.TotalWatts, report.UsagePercent))
		pdf.Ln(5)
		pdf.Cell(0, 5, fmt.Sprintf("Max Capacity: %.0fW   Safe (80%%): %.0fW", report.MaxCapacityWatts, report.SafeCapacityWatts))
		pdf.Ln(5)
		pdf.Cell(0, 5, fmt.Sprintf("Remaining: %.0fW or %.2fA", report.AvailableWatts, report.AvailableAmps))
		pdf.Ln(7)

		if len(report.Devices) > 0 {
			pdf.SetFont("Arial", "B", 10)
			pdf.CellFormat(70, 6, "Device", "1", 0, "C", false, 0, "")
			pdf.CellFormat(35, 6, "Watts", "1", 0, "C", false, 0, "")
			pdf.CellFormat(35, 6, "Amps", "1", 0, "C", false, 0, "")
			pdf.CellFormat(35, 6, "% of Breaker", "1", 0, "C", false, 0, "")
			pdf.Ln(-1)
			pdf.SetFont("Arial", "", 10)
			for _, device := range report.Devices {
				pdf.CellFormat(70, 6, device.Name, "1", 0, "L", false, 0, "")
				pdf.CellFormat(35, 6, fmt.Sprintf("%.0f", device.Watts), "1", 0, "R", false, 0, "")
				pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", device.Amps), "1", 0, "R", false, 0, "")
				pdf.CellFormat(35, 6, fmt.Sprintf("%.1f", device.PercentOfMaxAmps), "1", 0, "R", false, 0, "")
				pdf.Ln(-1)
			}
		}
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildPanelXLSX renders a circuits summary sheet and a devices sheet.
func BuildPanelXLSX(reports []application.CircuitReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	circuitsSheet := "circuits"
	devicesSheet := "devices"
	if err := f.SetSheetName("Sheet1", circuitsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(devicesSheet); err != nil {
		return nil, err
	}

	circuitHeader := []any{"Circuit", "Voltage (V)", "Breaker (A)", "Total (W)", "Total (A)", "Safe Max (A)", "Usage (%)", "Available (A)", "Available (W)", "Status"}
	if err := f.SetSheetRow(circuitsSheet, "A1", &circuitHeader); err != nil {
		return nil, err
	}
	deviceHeader := []any{"Circuit", "Device", "Watts", "Amps", "% of Breaker"}
	if err := f.SetSheetRow(devicesSheet, "A1", &deviceHeader); err != nil {
		return nil, err
	}

	deviceRow := 2
	for i, item := range reports {
		circuit, report := item.Circuit, item.Report
		row := []any{
			circuit.Name,
			circuit.Voltage,
			circuit.BreakerRating,
			report.TotalWatts,
			report.TotalAmps,
			report.SafeMaxAmps,
			report.UsagePercent,
			report.AvailableAmps,
			report.AvailableWatts,
			string(report.Status),
		}
		if err := f.SetSheetRow(circuitsSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
		for _, device := range report.Devices {
			values := []any{circuit.Name, device.Name, device.Watts, device.Amps, device.PercentOfMaxAmps}
			if err := f.SetSheetRow(devicesSheet, fmt.Sprintf("A%d", deviceRow), &values); err != nil {
				return nil, err
			}
			deviceRow++
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
