package services

import (
	"Pronostico/forecast"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeBySpecialtyMergesProviders(t *testing.T) {
	rows := []forecast.ReportRow{
		{EPSID: 1, SpecialtyID: 10, SpecialtyName: "Psiquiatría", ProjectedQty: 40, CompletedQty: 30},
		{EPSID: 2, SpecialtyID: 10, SpecialtyName: "Psiquiatría", ProjectedQty: 60, CompletedQty: 50},
		{EPSID: 1, SpecialtyID: 11, SpecialtyName: "Nutrición", ProjectedQty: 20, CompletedQty: 25},
	}

	summaries := summarizeBySpecialty(rows)
	require.Len(t, summaries, 2)

	assert.Equal(t, uint(10), summaries[0].SpecialtyID)
	assert.Equal(t, 100, summaries[0].ProjectedQty)
	assert.Equal(t, 80, summaries[0].CompletedQty)
	assert.Equal(t, 80, summaries[0].Compliance)

	// Over-delivery stays capped at 100.
	assert.Equal(t, uint(11), summaries[1].SpecialtyID)
	assert.Equal(t, 100, summaries[1].Compliance)
}

func TestSummarizeBySpecialtyEmpty(t *testing.T) {
	assert.Empty(t, summarizeBySpecialty(nil))
}
