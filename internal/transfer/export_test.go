package transfer

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealdesk/internal/contract"
)

func f64(v float64) *float64 { return &v }

func exportFixtures() []contract.Contract {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return []contract.Contract{
		{ID: "c1", Title: `Summer "Mega" Push`, CreatorID: "u113", BrandID: "u114",
			ContractType: contract.TypeOneTime, Status: contract.StatusActive,
			Budget: f64(2500), StartDate: &start,
			CreatedAt: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)},
		{ID: "c2", CreatorID: "u200", BrandID: "u300",
			ContractType: contract.TypeOngoing, Status: contract.StatusDraft,
			CreatedAt: time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)},
	}
}

func TestWriteCSVShape(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteCSV(&sb, exportFixtures()))

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	// Header plus one line per contract.
	require.Len(t, lines, 3)

	for _, line := range lines {
		fields := strings.Split(line, `","`)
		assert.Len(t, fields, 10)
		assert.True(t, strings.HasPrefix(line, `"`), "line not quoted: %s", line)
		assert.True(t, strings.HasSuffix(line, `"`), "line not quoted: %s", line)
	}

	assert.Equal(t, `"id","title","creator_id","brand_id","contract_type","status","budget","start_date","end_date","created_at"`, lines[0])
	// Embedded quotes are doubled.
	assert.Contains(t, lines[1], `"Summer ""Mega"" Push"`)
	assert.Contains(t, lines[1], `"2500"`)
	// Missing budget and dates export as empty quoted fields.
	assert.Contains(t, lines[2], `,"",`)
}

func TestWriteCSVEmptyListIsHeaderOnly(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteCSV(&sb, nil))
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	assert.Len(t, lines, 1)
}

func TestWriteJSONRoundTrips(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteJSON(&sb, exportFixtures()))

	var decoded []contract.Contract
	require.NoError(t, json.Unmarshal([]byte(sb.String()), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "c1", decoded[0].ID)
	assert.Equal(t, 2500.0, *decoded[0].Budget)
}
