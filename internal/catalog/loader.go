package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// DefaultSource names the catalog compiled into the binary.
const DefaultSource = "builtin"

// jsonFile is the layout of the legacy JSON catalog.
type jsonFile struct {
	Items []struct {
		Command     string   `json:"command"`
		Description string   `json:"description"`
		Tags        []string `json:"tag"`
		Mask        string   `json:"nix_edit"`
		Args        []string `json:"nix_args"`
	} `json:"item"`
}

// yamlFile is the layout of a YAML catalog.
type yamlFile struct {
	Items []struct {
		Command     string   `yaml:"command"`
		Description string   `yaml:"description"`
		Tags        []string `yaml:"tags"`
		Template    *struct {
			Mask string   `yaml:"mask"`
			Args []string `yaml:"args"`
		} `yaml:"template"`
	} `yaml:"items"`
}

// Default returns the records of the built-in catalog.
func Default() ([]Record, error) {
	return ParseYAML(defaultCatalog, DefaultSource)
}

// LoadFile reads one catalog file. The format is picked by extension.
func LoadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(data, path)
	case ".yaml", ".yml":
		return ParseYAML(data, path)
	default:
		return nil, fmt.Errorf("catalog %s: unsupported extension %q", path, filepath.Ext(path))
	}
}

// LoadAll reads every path in order. A file that fails is logged and skipped;
// an error is returned only when no file could be read.
func LoadAll(logger *zap.Logger, paths ...string) ([]Record, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(paths) == 0 {
		return Default()
	}

	var records []Record
	var errs []error
	for _, path := range paths {
		recs, err := LoadFile(path)
		if err != nil {
			logger.Warn("failed to load catalog", zap.String("path", path), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		logger.Debug("loaded catalog", zap.String("path", path), zap.Int("records", len(recs)))
		records = append(records, recs...)
	}

	if len(errs) == len(paths) {
		return nil, errors.Join(errs...)
	}
	if len(errs) > 0 {
		logger.Warn("some catalogs failed to load",
			zap.Int("loaded", len(paths)-len(errs)),
			zap.Int("failed", len(errs)),
		)
	}
	return records, nil
}

// ParseJSON decodes the legacy JSON layout.
func ParseJSON(data []byte, source string) ([]Record, error) {
	var f jsonFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", source, err)
	}
	out := make([]Record, 0, len(f.Items))
	for i, item := range f.Items {
		if strings.TrimSpace(item.Command) == "" && item.Mask == "" {
			return nil, fmt.Errorf("parse catalog %s: item %d has no command", source, i)
		}
		rec := Record{
			Text:        item.Command,
			Description: item.Description,
			Tags:        cleanTags(item.Tags),
			Source:      source,
		}
		if strings.TrimSpace(rec.Text) == "" {
			rec.Text = item.Mask
		}
		if item.Mask != "" {
			rec.Template = &Template{Mask: item.Mask, Args: item.Args}
		}
		out = append(out, rec)
	}
	return out, nil
}

// ParseYAML decodes the YAML layout.
func ParseYAML(data []byte, source string) ([]Record, error) {
	var f yamlFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", source, err)
	}
	out := make([]Record, 0, len(f.Items))
	for i, item := range f.Items {
		if strings.TrimSpace(item.Command) == "" && item.Template == nil {
			return nil, fmt.Errorf("parse catalog %s: item %d has no command", source, i)
		}
		rec := Record{
			Text:        item.Command,
			Description: item.Description,
			Tags:        cleanTags(item.Tags),
			Source:      source,
		}
		if item.Template != nil && item.Template.Mask != "" {
			rec.Template = &Template{Mask: item.Template.Mask, Args: item.Template.Args}
		}
		out = append(out, rec)
	}
	return out, nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
