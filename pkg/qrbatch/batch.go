package qrbatch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/qrbatch-go/pkg/qrbatch/models"
	"github.com/ukaji3/qrbatch-go/pkg/qrbatch/parser"
	"github.com/ukaji3/qrbatch-go/pkg/qrbatch/render"
)

// Source supplies the sheets of a workbook.
type Source interface {
	// SheetNames returns the sheet names in workbook order.
	SheetNames() []string
	// ReadSheet reads a sheet using the given header row (nil for the
	// first row).
	ReadSheet(name string, headerRow *int) (*models.Sheet, error)
}

// Encoder writes text as a QR code image file.
type Encoder interface {
	WriteFile(text, path string) error
}

// Batch turns the rows of a workbook into QR code images, one folder per
// sheet. Sheets and rows are processed sequentially in workbook order.
type Batch struct {
	cfg Config
	enc Encoder
	obs Observer
}

// New creates a Batch. A nil obs discards progress events.
func New(cfg Config, enc Encoder, obs Observer) *Batch {
	if obs == nil {
		obs = NopObserver{}
	}
	return &Batch{cfg: cfg, enc: enc, obs: obs}
}

// Run opens the workbook at inputPath, processes it into outputDir and
// closes it. See RunSource.
func (b *Batch) Run(inputPath, outputDir string) (*Report, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	wb, err := parser.Open(inputPath)
	if err != nil {
		return nil, &SourceError{Path: inputPath, Err: err}
	}
	defer wb.Close()

	return b.RunSource(wb, outputDir)
}

// RunSource processes every selected sheet of src into outputDir. Rows
// without an identifier are skipped. The first row or sheet failure stops
// the run; the returned Report then describes the work done so far and the
// error is a *SheetError.
func (b *Batch) RunSource(src Source, outputDir string) (*Report, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	report := &Report{CompletedSheets: []string{}}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return report, fmt.Errorf("failed to create output folder: %w", err)
	}

	for _, name := range b.selectSheets(src.SheetNames()) {
		if err := b.processSheet(src, name, outputDir, report); err != nil {
			report.FailedSheet = name
			b.obs.SheetFailed(name, err)
			return report, err
		}
		report.CompletedSheets = append(report.CompletedSheets, name)
	}

	return report, nil
}

// selectSheets keeps the configured sheets present in the workbook, in
// workbook order.
func (b *Batch) selectSheets(available []string) []string {
	if len(b.cfg.Sheets) == 0 {
		return available
	}

	wanted := make(map[string]struct{}, len(b.cfg.Sheets))
	for _, name := range b.cfg.Sheets {
		wanted[name] = struct{}{}
	}

	var selected []string
	for _, name := range available {
		if _, ok := wanted[name]; ok {
			selected = append(selected, name)
		}
	}
	return selected
}

func (b *Batch) processSheet(src Source, name, outputDir string, report *Report) error {
	sheet, err := src.ReadSheet(name, b.cfg.HeaderRow)
	if err != nil {
		return &SheetError{SheetName: name, Err: err}
	}

	b.obs.SheetStarted(name, sheet.Columns)
	selected := render.SelectColumns(sheet.Columns, b.cfg.Filter)
	b.obs.ColumnsSelected(name, selected)

	dir := filepath.Join(outputDir, strings.TrimSpace(name))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &SheetError{SheetName: name, Err: err}
	}

	var generated, skipped int
	if len(sheet.Rows) > 0 {
		resolver, err := render.NewResolver(sheet.Columns, b.cfg.IndexColumn, b.cfg.IdentifierColumn)
		if err != nil {
			return &SheetError{SheetName: name, Err: err}
		}

		for _, row := range sheet.Rows {
			outcome, err := b.processRow(name, dir, row, selected, resolver)
			if err != nil {
				report.record(Outcome{
					Sheet:    name,
					Position: row.Position,
					Line:     row.Line,
					Status:   StatusFailed,
					Error:    err.Error(),
				})
				return &SheetError{
					SheetName: name,
					Err:       &RowError{SheetName: name, Position: row.Position, Line: row.Line, Err: err},
				}
			}

			report.record(outcome)
			if outcome.Status == StatusSkipped {
				skipped++
			} else {
				generated++
			}
		}
	}

	b.obs.SheetFinished(name, generated, skipped)
	return nil
}

func (b *Batch) processRow(sheet, dir string, row models.Row, selected []string, resolver *render.Resolver) (Outcome, error) {
	outcome := Outcome{Sheet: sheet, Position: row.Position, Line: row.Line}

	id, ok, err := resolver.Resolve(row)
	if err != nil {
		return outcome, err
	}
	if !ok {
		b.obs.RowSkipped(sheet, row.Position, row.Line, render.SkipMissingIdentifier)
		outcome.Status = StatusSkipped
		outcome.Reason = render.SkipMissingIdentifier
		return outcome, nil
	}

	text := render.FormatRow(row.Select(selected))
	path := filepath.Join(dir, render.ArtifactName(id))
	if err := b.enc.WriteFile(text, path); err != nil {
		return outcome, &EncodingError{Path: path, Err: err}
	}
	b.obs.ArtifactGenerated(sheet, row.Position, path)

	outcome.Status = StatusGenerated
	outcome.Path = path
	return outcome, nil
}
