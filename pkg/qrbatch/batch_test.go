package qrbatch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/qrbatch-go/pkg/qrbatch/models"
	"github.com/ukaji3/qrbatch-go/pkg/qrbatch/qrcode"
	"github.com/ukaji3/qrbatch-go/pkg/qrbatch/render"
	"github.com/xuri/excelize/v2"
)

// memSource is an in-memory Source.
type memSource struct {
	sheets []*models.Sheet
	err    map[string]error
}

func (s *memSource) SheetNames() []string {
	names := make([]string, len(s.sheets))
	for i, sh := range s.sheets {
		names[i] = sh.Name
	}
	return names
}

func (s *memSource) ReadSheet(name string, headerRow *int) (*models.Sheet, error) {
	if err := s.err[name]; err != nil {
		return nil, err
	}
	for _, sh := range s.sheets {
		if sh.Name == name {
			return sh, nil
		}
	}
	return nil, errors.New("no such sheet")
}

// recordingEncoder keeps encoded payloads by path and touches the file.
type recordingEncoder struct {
	texts  map[string]string
	failOn string
}

func newRecordingEncoder() *recordingEncoder {
	return &recordingEncoder{texts: make(map[string]string)}
}

func (e *recordingEncoder) WriteFile(text, path string) error {
	if e.failOn != "" && filepath.Base(path) == e.failOn {
		return errors.New("encoder failed")
	}
	e.texts[path] = text
	return os.WriteFile(path, []byte(text), 0o644)
}

func newSheet(name string, columns []string, rows ...[]interface{}) *models.Sheet {
	sheet := &models.Sheet{Name: name, Columns: columns}
	for i, values := range rows {
		row := models.Row{Position: i, Line: i + 2}
		for j, col := range columns {
			var v interface{}
			if j < len(values) {
				v = values[j]
			}
			row.Cells = append(row.Cells, models.Cell{Column: col, Value: v})
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}

func itemsSheet() *models.Sheet {
	return newSheet("Items", []string{"ID", "Name", "Tag"},
		[]interface{}{int64(1), "Widget", "A"},
	)
}

func tagConfig() Config {
	cfg := DefaultConfig()
	cfg.IdentifierColumn = render.ColumnRef{Name: "Tag"}
	return cfg
}

func TestRunSource_AllColumns(t *testing.T) {
	out := t.TempDir()
	enc := newRecordingEncoder()

	report, err := New(tagConfig(), enc, nil).RunSource(&memSource{sheets: []*models.Sheet{itemsSheet()}}, out)
	require.NoError(t, err)

	path := filepath.Join(out, "Items", "f0001_A.png")
	assert.Equal(t, "ID: 1\nName: Widget\nTag: A", enc.texts[path])
	assert.Equal(t, 1, report.Generated)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, []string{"Items"}, report.CompletedSheets)
	assert.True(t, report.OK())
	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, Outcome{Sheet: "Items", Position: 0, Line: 2, Status: StatusGenerated, Path: path}, report.Outcomes[0])
}

func TestRunSource_IncludeFilter(t *testing.T) {
	out := t.TempDir()
	enc := newRecordingEncoder()
	cfg := tagConfig()
	cfg.Filter = render.FilterSpec{Include: []string{"Name"}, Exclude: []string{"Name"}}

	_, err := New(cfg, enc, nil).RunSource(&memSource{sheets: []*models.Sheet{itemsSheet()}}, out)
	require.NoError(t, err)

	// The identifier still comes from the unfiltered row.
	assert.Equal(t, "Name: Widget", enc.texts[filepath.Join(out, "Items", "f0001_A.png")])
}

func TestRunSource_IncludeMatchesNothing(t *testing.T) {
	out := t.TempDir()
	enc := newRecordingEncoder()
	cfg := tagConfig()
	cfg.Filter = render.FilterSpec{Include: []string{"price"}}

	report, err := New(cfg, enc, nil).RunSource(&memSource{sheets: []*models.Sheet{itemsSheet()}}, out)
	require.NoError(t, err)

	text, ok := enc.texts[filepath.Join(out, "Items", "f0001_A.png")]
	assert.True(t, ok)
	assert.Equal(t, "", text)
	assert.Equal(t, 1, report.Generated)
}

func TestRunSource_SkipsMissingIdentifier(t *testing.T) {
	out := t.TempDir()
	enc := newRecordingEncoder()
	src := &memSource{sheets: []*models.Sheet{
		newSheet("Items", []string{"ID", "Name", "Tag"},
			[]interface{}{int64(1), "Widget", "A"},
			[]interface{}{int64(2), "Gadget", nil},
			[]interface{}{nil, "Trailer", "C"},
			[]interface{}{"4.0", "Gizmo", "D"},
		),
		newSheet("Parts", []string{"ID", "Name", "Tag"},
			[]interface{}{int64(9), "Bolt", "B"},
		),
	}}

	report, err := New(tagConfig(), enc, nil).RunSource(src, out)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Generated)
	assert.Equal(t, 2, report.Skipped)
	assert.Equal(t, []string{"Items", "Parts"}, report.CompletedSheets)
	assert.FileExists(t, filepath.Join(out, "Items", "f0001_A.png"))
	assert.FileExists(t, filepath.Join(out, "Items", "f0004_D.png"))
	assert.FileExists(t, filepath.Join(out, "Parts", "f0009_B.png"))
	assert.NoFileExists(t, filepath.Join(out, "Items", "f0002_nan.png"))

	assert.Equal(t, StatusSkipped, report.Outcomes[1].Status)
	assert.Equal(t, render.SkipMissingIdentifier, report.Outcomes[1].Reason)
	assert.Equal(t, StatusSkipped, report.Outcomes[2].Status)
}

func TestRunSource_SheetSelection(t *testing.T) {
	src := &memSource{sheets: []*models.Sheet{
		newSheet("Items", []string{"ID"}, []interface{}{int64(1)}),
		newSheet("Parts", []string{"ID"}, []interface{}{int64(2)}),
		newSheet("Notes", []string{"ID"}, []interface{}{int64(3)}),
	}}

	out := t.TempDir()
	cfg := DefaultConfig()
	cfg.Sheets = []string{"Notes", "Missing", "Items"}

	report, err := New(cfg, newRecordingEncoder(), nil).RunSource(src, out)
	require.NoError(t, err)

	assert.Equal(t, []string{"Items", "Notes"}, report.CompletedSheets)
	assert.NoDirExists(t, filepath.Join(out, "Parts"))
	assert.FileExists(t, filepath.Join(out, "Notes", "f0003_3.png"))
}

func TestRunSource_OnlyMissingSheet(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sheets = []string{"Missing"}

	report, err := New(cfg, newRecordingEncoder(), nil).RunSource(&memSource{sheets: []*models.Sheet{itemsSheet()}}, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Generated)
	assert.Empty(t, report.CompletedSheets)
	assert.True(t, report.OK())
}

func TestRunSource_InvalidIndexAbortsSheet(t *testing.T) {
	src := &memSource{sheets: []*models.Sheet{
		newSheet("Items", []string{"ID", "Name"},
			[]interface{}{int64(1), "Widget"},
			[]interface{}{"abc", "Broken"},
			[]interface{}{int64(3), "Never"},
		),
		newSheet("Parts", []string{"ID", "Name"}, []interface{}{int64(9), "Bolt"}),
	}}

	out := t.TempDir()
	report, err := New(DefaultConfig(), newRecordingEncoder(), nil).RunSource(src, out)
	require.Error(t, err)

	var sheetErr *SheetError
	require.ErrorAs(t, err, &sheetErr)
	assert.Equal(t, "Items", sheetErr.SheetName)

	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 1, rowErr.Position)
	assert.Equal(t, 3, rowErr.Line)
	assert.ErrorIs(t, err, render.ErrInvalidIndex)

	assert.Equal(t, 1, report.Generated)
	assert.Equal(t, "Items", report.FailedSheet)
	assert.Empty(t, report.CompletedSheets)
	assert.False(t, report.OK())
	assert.Equal(t, StatusFailed, report.Outcomes[1].Status)
	assert.NoFileExists(t, filepath.Join(out, "Items", "f0003_3.png"))
	assert.NoDirExists(t, filepath.Join(out, "Parts"))
}

func TestRunSource_EncoderFailure(t *testing.T) {
	enc := newRecordingEncoder()
	enc.failOn = "f0001_A.png"

	_, err := New(tagConfig(), enc, nil).RunSource(&memSource{sheets: []*models.Sheet{itemsSheet()}}, t.TempDir())

	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, "f0001_A.png", filepath.Base(encErr.Path))

	var sheetErr *SheetError
	assert.ErrorAs(t, err, &sheetErr)
}

func TestRunSource_ReadFailure(t *testing.T) {
	readErr := errors.New("corrupt sheet")
	src := &memSource{
		sheets: []*models.Sheet{itemsSheet()},
		err:    map[string]error{"Items": readErr},
	}

	report, err := New(DefaultConfig(), newRecordingEncoder(), nil).RunSource(src, t.TempDir())
	assert.ErrorIs(t, err, readErr)
	assert.Equal(t, "Items", report.FailedSheet)
}

func TestRunSource_UnknownIdentifierColumn(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IdentifierColumn = render.ColumnRef{Name: "Serial"}

	_, err := New(cfg, newRecordingEncoder(), nil).RunSource(&memSource{sheets: []*models.Sheet{itemsSheet()}}, t.TempDir())
	assert.ErrorIs(t, err, render.ErrColumnNotFound)
}

func TestRunSource_EmptySheet(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IdentifierColumn = render.ColumnRef{Name: "Serial"}
	src := &memSource{sheets: []*models.Sheet{{Name: "Empty"}}}

	report, err := New(cfg, newRecordingEncoder(), nil).RunSource(src, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"Empty"}, report.CompletedSheets)
}

func TestRun_InvalidHeaderRow(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	header := -1
	cfg := DefaultConfig()
	cfg.HeaderRow = &header

	_, err := New(cfg, newRecordingEncoder(), nil).Run(filepath.Join(t.TempDir(), "missing.xlsx"), out)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.ErrorIs(t, err, ErrInvalidHeaderRow)
	assert.NoDirExists(t, out)
}

func TestRun_MissingWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.xlsx")

	_, err := New(DefaultConfig(), newRecordingEncoder(), nil).Run(path, t.TempDir())

	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, path, srcErr.Path)
}

func TestParseHeaderRow(t *testing.T) {
	n, err := ParseHeaderRow(" 2 ")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, 2, *n)

	n, err = ParseHeaderRow("")
	require.NoError(t, err)
	assert.Nil(t, n)

	for _, bad := range []string{"abc", "-1", "1.5"} {
		_, err = ParseHeaderRow(bad)
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr, bad)
		assert.Equal(t, "Header.row", cfgErr.Key)
		assert.ErrorIs(t, err, ErrInvalidHeaderRow)
	}
}

func writeItemsWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Items"))
	for cell, v := range map[string]interface{}{
		"A1": "ID", "B1": "Name", "C1": "Tag",
		"A2": 1, "B2": "Widget", "C2": "A",
		"A3": 2, "B3": "Gadget",
	} {
		require.NoError(t, f.SetCellValue("Items", cell, v))
	}

	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestRun_Workbook(t *testing.T) {
	input := writeItemsWorkbook(t)
	out := filepath.Join(t.TempDir(), "qr_codes")
	header := 0
	cfg := tagConfig()
	cfg.HeaderRow = &header

	report, err := New(cfg, qrcode.NewWriter(qrcode.DefaultParams()), nil).Run(input, out)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(out, "Items", "f0001_A.png"))
	assert.Equal(t, 1, report.Generated)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, []string{"Items"}, report.CompletedSheets)
}

func TestRun_FormattedNumbers(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	for cell, v := range map[string]interface{}{
		"A1": "ID", "B1": "Share", "C1": "Tag",
		"A2": 1234, "B2": 0.5, "C2": "A",
	} {
		require.NoError(t, f.SetCellValue("Sheet1", cell, v))
	}
	grouped, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "A2", "A2", grouped))
	percent, err := f.NewStyle(&excelize.Style{NumFmt: 9})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "B2", "B2", percent))

	input := filepath.Join(t.TempDir(), "formats.xlsx")
	require.NoError(t, f.SaveAs(input))

	out := t.TempDir()
	enc := newRecordingEncoder()
	report, err := New(tagConfig(), enc, nil).Run(input, out)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Generated)
	assert.Equal(t, "ID: 1234\nShare: 0.5\nTag: A", enc.texts[filepath.Join(out, "Sheet1", "f1234_A.png")])
}
