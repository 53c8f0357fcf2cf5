// Package geodata maps state codes to the GeoJSON files served by go-uscounties.
//
// Layout below DataDir:
//
//	us-states.json
//	counties/<CODE>.json
//
// The files are produced elsewhere; this package only reads them.
package geodata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
)

const (
	StatesFile  = "us-states.json"
	CountiesDir = "counties"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidStateCode = errors.New("invalid state code")
)

// stateCodeRE is applied after uppercasing. It keeps separators and dots out
// of the county path.
var stateCodeRE = regexp.MustCompile(`^[A-Z0-9]{1,8}$`)

// Store resolves dataset paths below a data directory
type Store struct {
	DataDir string
}

// NewStore returns a Store reading from dataDir
func NewStore(dataDir string) *Store {
	return &Store{DataDir: dataDir}
}

// NormalizeStateCode uppercases a state code taken from the URL.
// A Caser is stateful, so a fresh one is used per call.
func NormalizeStateCode(code string) string {
	return cases.Upper(language.Und).String(code)
}

// ValidStateCode reports whether an already normalized code may be used in a path
func ValidStateCode(code string) bool {
	return stateCodeRE.MatchString(code)
}

// StatesPath returns the path of the state dataset
func (s *Store) StatesPath() string {
	return filepath.Join(s.DataDir, StatesFile)
}

// CountyPath normalizes code and returns the county dataset path for it
func (s *Store) CountyPath(code string) (string, error) {
	upper := NormalizeStateCode(code)
	if !ValidStateCode(upper) {
		return "", fmt.Errorf("%w: %q", ErrInvalidStateCode, code)
	}
	return filepath.Join(s.DataDir, CountiesDir, upper+".json"), nil
}

// States reads the state dataset. There is no existence check here:
// a missing file surfaces as a plain read error.
func (s *Store) States() (any, error) {
	return ReadJSONFile(s.StatesPath())
}

// Counties reads the county dataset for code.
// Returns an error wrapping ErrNotFound when the code is rejected or the file does not exist.
func (s *Store) Counties(code string) (any, error) {
	path, err := s.CountyPath(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if !fileExists(path) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return ReadJSONFile(path)
}

// fileExists mirrors a plain existence test: any stat failure counts as absent
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadJSONFile opens path and decodes one JSON document from it.
// Numbers are kept as json.Number so re-encoding does not change them.
// A leading byte order mark is honoured and stripped.
func ReadJSONFile(path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	v, err := DecodeJSON(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return v, nil
}

// DecodeJSON decodes exactly one JSON document from r
func DecodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("extra data after JSON document")
		}
		return nil, err
	}
	return v, nil
}
