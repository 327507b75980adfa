package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/qrbatch-go/pkg/qrbatch/models"
)

var (
	// ErrInvalidIndex indicates an index cell that is present but not an integer.
	ErrInvalidIndex = errors.New("invalid row index")
	// ErrColumnNotFound indicates a named column reference with no matching header.
	ErrColumnNotFound = errors.New("column not found")
	// ErrColumnOutOfRange indicates a positional column reference past the row width.
	ErrColumnOutOfRange = errors.New("column position out of range")
)

// SkipMissingIdentifier is the reason reported for rows without an identifier.
const SkipMissingIdentifier = "missing identifier"

// ColumnRef points at a column either by zero-based position or by name.
type ColumnRef struct {
	Name     string `json:"name,omitempty"`
	Position int    `json:"position"`
}

// ParseColumnRef reads a column reference. Non-negative integers are
// positions, anything else is a header name.
func ParseColumnRef(s string) (ColumnRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ColumnRef{}, errors.New("empty column reference")
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return ColumnRef{}, fmt.Errorf("negative column position %d", n)
		}
		return ColumnRef{Position: n}, nil
	}
	return ColumnRef{Name: s}, nil
}

func (c ColumnRef) String() string {
	if c.Name != "" {
		return strconv.Quote(c.Name)
	}
	return strconv.Itoa(c.Position)
}

// locate returns the column position of c within columns. Names match
// exactly first, then ignoring case and treating line breaks as spaces.
func (c ColumnRef) locate(columns []string) (int, error) {
	if c.Name == "" {
		return c.Position, nil
	}
	for i, col := range columns {
		if col == c.Name {
			return i, nil
		}
	}
	want := normalizeName(c.Name)
	for i, col := range columns {
		if normalizeName(col) == want {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrColumnNotFound, c.Name)
}

// normalizeName lowercases s and collapses line breaks and runs of spaces
// into single spaces.
func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Identity names the artifact generated for a row.
type Identity struct {
	Index      int    `json:"index"`
	Identifier string `json:"identifier"`
}

// ArtifactName returns the PNG file name for id: f<index, 4 digits>_<identifier>.png.
func ArtifactName(id Identity) string {
	return fmt.Sprintf("f%04d_%s.png", id.Index, id.Identifier)
}

// Resolver derives a row's Identity from two columns of the unfiltered row.
type Resolver struct {
	index      int
	identifier int
}

// NewResolver binds the index and identifier references to a sheet header.
func NewResolver(columns []string, index, identifier ColumnRef) (*Resolver, error) {
	i, err := index.locate(columns)
	if err != nil {
		return nil, fmt.Errorf("index column: %w", err)
	}
	j, err := identifier.locate(columns)
	if err != nil {
		return nil, fmt.Errorf("identifier column: %w", err)
	}
	return &Resolver{index: i, identifier: j}, nil
}

// Resolve returns the row's Identity. ok is false when the index or the
// identifier cell is blank or "nan"; the row should then be skipped with
// SkipMissingIdentifier. An index that is present but not an integer is an
// error.
func (r *Resolver) Resolve(row models.Row) (id Identity, ok bool, err error) {
	index, err := r.field(row, r.index)
	if err != nil {
		return Identity{}, false, fmt.Errorf("index column: %w", err)
	}
	if isMissing(index) {
		return Identity{}, false, nil
	}

	head, _, _ := strings.Cut(index, ".")
	n, err := strconv.Atoi(head)
	if err != nil {
		return Identity{}, false, fmt.Errorf("%w %q", ErrInvalidIndex, index)
	}

	identifier, err := r.field(row, r.identifier)
	if err != nil {
		return Identity{}, false, fmt.Errorf("identifier column: %w", err)
	}
	if isMissing(identifier) {
		return Identity{}, false, nil
	}

	return Identity{Index: n, Identifier: identifier}, true, nil
}

func (r *Resolver) field(row models.Row, pos int) (string, error) {
	v, ok := row.Value(pos)
	if !ok {
		return "", fmt.Errorf("%w: %d of %d", ErrColumnOutOfRange, pos, len(row.Cells))
	}
	return SanitizeFilename(models.FormatValue(v)), nil
}

func isMissing(s string) bool {
	return s == "" || strings.EqualFold(s, models.MissingText)
}
