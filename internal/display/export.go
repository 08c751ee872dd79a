package display

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/harrison/exchange/internal/filelock"
	"github.com/harrison/exchange/internal/models"
	"gopkg.in/yaml.v3"
)

// EncodeEntries encodes entries in the format implied by path's extension:
// .json for JSON, .yaml or .yml for YAML.
func EncodeEntries(path string, entries []models.Entry) ([]byte, error) {
	if entries == nil {
		entries = []models.Entry{}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	case ".yaml", ".yml":
		data, err := yaml.Marshal(entries)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (use .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// WriteEntries encodes entries and writes them to path atomically while
// holding path's lock file.
func WriteEntries(path string, entries []models.Entry) error {
	data, err := EncodeEntries(path, entries)
	if err != nil {
		return err
	}
	if err := filelock.LockAndWrite(path, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
