package reportdoc

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// entriesFile is the on-disk shape of an entries manifest.
type entriesFile struct {
	Entries []entryRecord `toml:"entries" yaml:"entries" json:"entries"`
}

type entryRecord struct {
	Header      string `toml:"header" yaml:"header" json:"header"`
	Description string `toml:"description" yaml:"description" json:"description"`
	Image       string `toml:"image" yaml:"image" json:"image"`
}

// LoadEntries reads a report entries manifest, dispatching on the file
// extension: .toml, .yaml/.yml or .json. Each entry must name a header and
// an image; whether the image file exists is checked later during
// generation.
func LoadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file entriesFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &file)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	case ".json":
		err = json.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("unsupported entries format '%s' (want .toml, .yaml or .json)", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse entries file '%s': %w", path, err)
	}

	entries := make([]Entry, 0, len(file.Entries))
	for i, record := range file.Entries {
		if record.Header == "" {
			return nil, NewEntryError(i, fmt.Errorf("missing header"))
		}
		if record.Image == "" {
			return nil, NewEntryError(i, fmt.Errorf("missing image path"))
		}
		entries = append(entries, Entry{
			Header:      record.Header,
			Description: record.Description,
			ImagePath:   record.Image,
		})
	}
	return entries, nil
}
