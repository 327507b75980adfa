package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/qrbatch-go/pkg/qrbatch"
)

func sampleReport() *qrbatch.Report {
	return &qrbatch.Report{
		Generated:       1,
		Skipped:         1,
		CompletedSheets: []string{"Items"},
		Outcomes: []qrbatch.Outcome{
			{Sheet: "Items", Position: 0, Line: 2, Status: qrbatch.StatusGenerated, Path: "qr_codes/Items/f0001_A.png"},
			{Sheet: "Items", Position: 1, Line: 3, Status: qrbatch.StatusSkipped, Reason: "missing identifier"},
		},
	}
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(sampleReport(), false)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "\n")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, float64(1), decoded["generated"])
	assert.Equal(t, []interface{}{"Items"}, decoded["completed_sheets"])
	assert.NotContains(t, decoded, "failed_sheet")

	outcomes := decoded["outcomes"].([]interface{})
	require.Len(t, outcomes, 2)
	assert.Equal(t, "skipped", outcomes[1].(map[string]interface{})["status"])
}

func TestToJSON_Pretty(t *testing.T) {
	data, err := ToJSON(sampleReport(), true)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \"generated\": 1"))
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	report := sampleReport()
	report.FailedSheet = "Parts"
	require.NoError(t, WriteReport(report, path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"failed_sheet":"Parts"`)
}
