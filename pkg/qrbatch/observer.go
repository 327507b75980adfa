package qrbatch

import "go.uber.org/zap"

// Observer receives progress events from a batch run.
type Observer interface {
	// SheetStarted is called after a sheet is read, with its header.
	SheetStarted(sheet string, columns []string)
	// ColumnsSelected is called with the columns kept by the filter.
	ColumnsSelected(sheet string, selected []string)
	// RowSkipped is called for a row without an identifier.
	RowSkipped(sheet string, position, line int, reason string)
	// ArtifactGenerated is called after a QR code file is written.
	ArtifactGenerated(sheet string, position int, path string)
	// SheetFinished is called when every row of a sheet was handled.
	SheetFinished(sheet string, generated, skipped int)
	// SheetFailed is called when a sheet aborts.
	SheetFailed(sheet string, err error)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) SheetStarted(string, []string) {}
func (NopObserver) ColumnsSelected(string, []string) {}
func (NopObserver) RowSkipped(string, int, int, string) {}
func (NopObserver) ArtifactGenerated(string, int, string) {}
func (NopObserver) SheetFinished(string, int, int) {}
func (NopObserver) SheetFailed(string, error) {}

// LogObserver writes events to a zap logger.
type LogObserver struct {
	logger *zap.Logger
}

// NewLogObserver returns an Observer logging to logger.
func NewLogObserver(logger *zap.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) SheetStarted(sheet string, columns []string) {
	o.logger.Info("Columns in sheet", zap.String("sheet", sheet), zap.Strings("columns", columns))
}

func (o *LogObserver) ColumnsSelected(sheet string, selected []string) {
	o.logger.Info("Columns after filtering", zap.String("sheet", sheet), zap.Strings("columns", selected))
}

func (o *LogObserver) RowSkipped(sheet string, position, line int, reason string) {
	o.logger.Warn("Skipped row",
		zap.String("sheet", sheet),
		zap.Int("row", position),
		zap.Int("line", line),
		zap.String("reason", reason),
	)
}

func (o *LogObserver) ArtifactGenerated(sheet string, position int, path string) {
	o.logger.Info("Generated QR code", zap.String("sheet", sheet), zap.Int("row", position), zap.String("path", path))
}

func (o *LogObserver) SheetFinished(sheet string, generated, skipped int) {
	o.logger.Info("Finished sheet", zap.String("sheet", sheet), zap.Int("generated", generated), zap.Int("skipped", skipped))
}

func (o *LogObserver) SheetFailed(sheet string, err error) {
	o.logger.Error("Error processing sheet", zap.String("sheet", sheet), zap.Error(err))
}
