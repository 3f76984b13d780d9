package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"circuit-load/internal/loadcalc/application"
	loadcalc "circuit-load/internal/loadcalc/domain"
)

func sampleReports() []application.CircuitReport {
	circuit := loadcalc.Circuit{
		ID: "c-1", Name: "Kitchen Circuit", Voltage: 120, BreakerRating: 20,
		Devices: []loadcalc.Device{
			{ID: "d-1", Name: "Microwave", Watts: 1200},
			{ID: "d-2", Name: "Coffee Maker", Watts: 900},
		},
	}
	return []application.CircuitReport{{Circuit: circuit, Report: loadcalc.Evaluate(circuit)}}
}

func TestBuildPanelXLSX(t *testing.T) {
	data, err := BuildPanelXLSX(sampleReports())
	if err != nil {
		t.Fatalf("build xlsx: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()

	name, err := f.GetCellValue("circuits", "A2")
	if err != nil || name != "Kitchen Circuit" {
		t.Fatalf("expected circuit name, got %q (%v)", name, err)
	}
	status, err := f.GetCellValue("circuits", "J2")
	if err != nil || status != "near_limit" {
		t.Fatalf("expected near_limit, got %q (%v)", status, err)
	}
	device, err := f.GetCellValue("devices", "B3")
	if err != nil || device != "Coffee Maker" {
		t.Fatalf("expected second device, got %q (%v)", device, err)
	}
}

func TestBuildPanelPDF(t *testing.T) {
	data, err := BuildPanelPDF(sampleReports(), time.Date(2026, 1, 26, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("build pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected pdf header")
	}
}

func TestStatusLabel(t *testing.T) {
	if StatusLabel(loadcalc.StatusOverloaded) != "OVERLOADED" || StatusLabel(loadcalc.StatusSafe) != "Safe Load" {
		t.Fatalf("unexpected labels")
	}
}
