package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/qrbatch-go/pkg/qrbatch"
	"github.com/ukaji3/qrbatch-go/pkg/qrbatch/qrcode"
	"github.com/ukaji3/qrbatch-go/pkg/qrbatch/render"
)

// Section and key names read by Load.
const (
	SectionSheets     = "Sheets"
	SectionColumns    = "Columns"
	SectionHeader     = "Header"
	SectionIdentifier = "Identifier"
	SectionQRCode     = "QRCode"
)

// Settings holds everything a run needs from the configuration file.
type Settings struct {
	Batch qrbatch.Config `json:"batch"`
	QR    qrcode.Params  `json:"qr"`
}

// DefaultSettings returns the settings used when no file is given.
func DefaultSettings() *Settings {
	return &Settings{
		Batch: qrbatch.DefaultConfig(),
		QR:    qrcode.DefaultParams(),
	}
}

// LoadFile opens path and loads settings from it.
func LoadFile(path string) (*Settings, error) {
	p, err := Open(path)
	if err != nil {
		return nil, err
	}
	return Load(p)
}

// Load reads settings from p. Every malformed value is reported as a
// *qrbatch.ConfigError.
func Load(p Provider) (*Settings, error) {
	s := DefaultSettings()
	var err error

	if s.Batch.Sheets, err = p.List(SectionSheets, "process"); err != nil {
		return nil, err
	}
	if s.Batch.Filter.Include, err = p.List(SectionColumns, "include"); err != nil {
		return nil, err
	}
	if s.Batch.Filter.Exclude, err = p.List(SectionColumns, "exclude"); err != nil {
		return nil, err
	}

	row, err := p.Scalar(SectionHeader, "row", "")
	if err != nil {
		return nil, err
	}
	if s.Batch.HeaderRow, err = qrbatch.ParseHeaderRow(row); err != nil {
		return nil, err
	}

	if s.Batch.IndexColumn, err = columnRef(p, "index_column"); err != nil {
		return nil, err
	}
	if s.Batch.IdentifierColumn, err = columnRef(p, "identifier_column"); err != nil {
		return nil, err
	}

	if s.QR, err = qrParams(p); err != nil {
		return nil, err
	}

	if err := s.Batch.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func columnRef(p Provider, key string) (render.ColumnRef, error) {
	raw, err := p.Scalar(SectionIdentifier, key, "0")
	if err != nil {
		return render.ColumnRef{}, err
	}
	if strings.TrimSpace(raw) == "" {
		return render.ColumnRef{}, nil
	}
	ref, err := render.ParseColumnRef(raw)
	if err != nil {
		return render.ColumnRef{}, qrbatch.NewConfigError(SectionIdentifier+"."+key, fmt.Errorf("%w: %v", qrbatch.ErrInvalidValue, err))
	}
	return ref, nil
}

func qrParams(p Provider) (qrcode.Params, error) {
	params := qrcode.DefaultParams()

	level, err := p.Scalar(SectionQRCode, "error_correction", string(params.Level))
	if err != nil {
		return params, err
	}
	if params.Level, err = qrcode.ParseLevel(level); err != nil {
		return params, qrbatch.NewConfigError(SectionQRCode+".error_correction", err)
	}

	if params.ModuleSize, err = intValue(p, "module_size", params.ModuleSize); err != nil {
		return params, err
	}
	if params.Border, err = intValue(p, "border", params.Border); err != nil {
		return params, err
	}

	if err := params.Validate(); err != nil {
		return params, qrbatch.NewConfigError(SectionQRCode, err)
	}
	return params, nil
}

func intValue(p Provider, key string, fallback int) (int, error) {
	raw, err := p.Scalar(SectionQRCode, key, strconv.Itoa(fallback))
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, qrbatch.NewConfigError(SectionQRCode+"."+key, fmt.Errorf("%w: %q is not an integer", qrbatch.ErrInvalidValue, raw))
	}
	return n, nil
}
