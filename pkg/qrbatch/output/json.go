// Package output serializes batch results.
package output

import (
	"encoding/json"
	"os"

	"github.com/ukaji3/qrbatch-go/pkg/qrbatch"
)

// ToJSON serializes a run report.
func ToJSON(report *qrbatch.Report, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}

// WriteReport writes the JSON form of report to path.
func WriteReport(report *qrbatch.Report, path string, pretty bool) error {
	data, err := ToJSON(report, pretty)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
