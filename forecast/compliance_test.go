package forecast_test

import (
	"Pronostico/forecast"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateCompliance(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		projected int
		want      int
	}{
		{"capped at 100", 150, 100, 100},
		{"exact", 100, 100, 100},
		{"partial truncates", 50, 150, 33},
		{"zero projected", 10, 0, 0},
		{"zero both", 0, 0, 0},
		{"nothing completed", 0, 80, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, forecast.CalculateCompliance(tc.completed, tc.projected))
		})
	}
}

func TestComplianceStatus(t *testing.T) {
	thresholds := forecast.Thresholds{Red: 70, Yellow: 90}

	assert.Equal(t, "danger", forecast.ComplianceStatus(0, thresholds))
	assert.Equal(t, "danger", forecast.ComplianceStatus(69, thresholds))
	// Threshold boundaries land in the higher bucket: the checks are strict.
	assert.Equal(t, "warning", forecast.ComplianceStatus(70, thresholds))
	assert.Equal(t, "warning", forecast.ComplianceStatus(89, thresholds))
	assert.Equal(t, "success", forecast.ComplianceStatus(90, thresholds))
	assert.Equal(t, "success", forecast.ComplianceStatus(100, thresholds))
}

func TestBuildReport(t *testing.T) {
	thresholds := forecast.Thresholds{Red: 70, Yellow: 90}

	projected := []forecast.ProjectedTotal{
		{EPSID: 1, EPSName: "Sura", SpecialtyID: 10, SpecialtyName: "Psiquiatría", ProjectedQty: 100},
		{EPSID: 1, EPSName: "Sura", SpecialtyID: 11, SpecialtyName: "Enfermería", ProjectedQty: 40},
		{EPSID: 2, EPSName: "Sanitas", SpecialtyID: 10, SpecialtyName: "Psiquiatría", ProjectedQty: 50},
	}
	completed := []forecast.CompletedTotal{
		{EPSID: 1, SpecialtyID: 10, CompletedQty: 95},
		{EPSID: 2, SpecialtyID: 10, CompletedQty: 80},
	}

	report := forecast.BuildReport(projected, completed, thresholds)
	assert.Len(t, report, 3)

	assert.Equal(t, 95, report[0].CompletedQty)
	assert.Equal(t, 5, report[0].PendingQty)
	assert.Equal(t, 95, report[0].Compliance)
	assert.Equal(t, "success", report[0].Status)

	// No completed match: reported with zero completed, never dropped.
	assert.Equal(t, 0, report[1].CompletedQty)
	assert.Equal(t, 40, report[1].PendingQty)
	assert.Equal(t, "danger", report[1].Status)

	// Over-delivery caps at 100% and clamps pending at zero.
	assert.Equal(t, 80, report[2].CompletedQty)
	assert.Equal(t, 0, report[2].PendingQty)
	assert.Equal(t, 100, report[2].Compliance)
}

func TestBuildReportEmptyInputs(t *testing.T) {
	report := forecast.BuildReport(nil, nil, forecast.Thresholds{Red: 70, Yellow: 90})
	assert.Empty(t, report)
}
