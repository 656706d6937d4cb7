package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Entry is one institute in the CCT catalog file.
type Entry struct {
	CCT    string `json:"cct"`
	Nombre string `json:"nombre,omitempty"`
}

type catalogFile struct {
	ClavesValidas []Entry `json:"claves_validas"`
}

// Catalog holds the institute codes accepted during registration.
// Codes are matched case-insensitively.
type Catalog struct {
	codes map[string]struct{}

	// allowAll is set when no catalog file is available, so registration
	// is not blocked on a missing deployment asset.
	allowAll bool
}

// Load reads the catalog JSON file. A missing file yields a catalog that
// accepts every code; a malformed file is an error.
func Load(path string, logger *zap.Logger) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("CCT catalog file not found, accepting any institute code",
				zap.String("path", path))
			return &Catalog{allowAll: true}, nil
		}
		return nil, fmt.Errorf("read cct catalog: %w", err)
	}

	var file catalogFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse cct catalog: %w", err)
	}

	codes := make(map[string]struct{}, len(file.ClavesValidas))
	for _, entry := range file.ClavesValidas {
		code := Normalize(entry.CCT)
		if code != "" {
			codes[code] = struct{}{}
		}
	}

	logger.Info("CCT catalog loaded",
		zap.String("path", path),
		zap.Int("codes", len(codes)))

	return &Catalog{codes: codes}, nil
}

// Valid reports whether the code is in the catalog.
func (c *Catalog) Valid(code string) bool {
	if c.allowAll {
		return true
	}
	_, ok := c.codes[Normalize(code)]
	return ok
}

// Len returns the number of codes loaded.
func (c *Catalog) Len() int {
	return len(c.codes)
}

// Normalize uppercases and trims a code the way it is stored.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
