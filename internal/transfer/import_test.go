package transfer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealdesk/internal/contract"
)

// fakeCreator records payloads and optionally fails specific creator ids.
type fakeCreator struct {
	payloads []map[string]any
	failFor  string
}

func (f *fakeCreator) CreateContract(ctx context.Context, payload map[string]any) (contract.Contract, error) {
	if f.failFor != "" && payload["creator_id"] == f.failFor {
		return contract.Contract{}, errors.New("backend rejected record")
	}
	f.payloads = append(f.payloads, payload)
	return contract.Contract{ID: "new"}, nil
}

const importFile = `[
  {"creator_id": "u113", "brand_id": "u114", "contract_type": "one_time", "title": "A"},
  {"brand_id": "u114", "contract_type": "one_time", "title": "missing creator"},
  {"creator_id": "u300", "brand_id": "u400", "contract_type": "ongoing"}
]`

func TestImportSkipsInvalidRecords(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(importFile))
	require.NoError(t, err)
	require.Len(t, records, 3)

	creator := &fakeCreator{}
	report := Import(context.Background(), creator, records)

	// One record misses creator_id: exactly two creations.
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Created)
	assert.Equal(t, 1, report.Invalid)
	assert.Equal(t, 0, report.Failed)
	assert.Len(t, creator.payloads, 2)
	require.Len(t, report.Problems, 1)
	assert.Contains(t, report.Problems[0], "record 2")
	assert.Contains(t, report.Problems[0], "creator_id")
}

func TestImportCountsBackendFailures(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(importFile))
	require.NoError(t, err)

	creator := &fakeCreator{failFor: "u300"}
	report := Import(context.Background(), creator, records)

	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 1, report.Invalid)
	assert.Equal(t, 1, report.Failed)
	assert.Contains(t, report.Summary(), "3 records: 1 created, 1 invalid, 1 failed")
}

func TestRecordValidate(t *testing.T) {
	tests := []struct {
		name    string
		rec     Record
		wantErr string
	}{
		{"valid", Record{"creator_id": "a", "brand_id": "b", "contract_type": "ongoing"}, ""},
		{"missing brand", Record{"creator_id": "a", "contract_type": "ongoing"}, "brand_id"},
		{"blank creator", Record{"creator_id": "  ", "brand_id": "b", "contract_type": "ongoing"}, "creator_id"},
		{"non-string type", Record{"creator_id": "a", "brand_id": "b", "contract_type": 7.0}, "contract_type"},
		{"unknown type", Record{"creator_id": "a", "brand_id": "b", "contract_type": "barter"}, "barter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rec.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestReadRecordsRejectsMalformedFile(t *testing.T) {
	_, err := ReadRecords(strings.NewReader(`{"not": "an array"}`))
	assert.Error(t, err)
}
