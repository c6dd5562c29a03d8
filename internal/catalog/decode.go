package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/flowbricks/internal/ctxlog"
	"github.com/vk/flowbricks/internal/model"
	"gopkg.in/yaml.v3"
)

// indexFile is the on-disk shape of a catalog index. JSON is accepted too
// since it is a subset of YAML.
type indexFile struct {
	Units []model.UnitSummary `yaml:"units"`
}

// DecodeIndex strictly decodes an index document; unknown fields are
// rejected. The result still has to go through NewIndex.
func DecodeIndex(r io.Reader) ([]model.UnitSummary, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f indexFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding catalog index: %w", err)
	}
	return f.Units, nil
}

// FileSource reads units from a single index file.
type FileSource struct {
	Path string
}

// Units implements Source.
func (s FileSource) Units(ctx context.Context) ([]model.UnitSummary, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Reading catalog index file.", "path", s.Path)

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog index: %w", err)
	}
	defer f.Close()

	units, err := DecodeIndex(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	logger.Debug("Catalog index file read.", "path", s.Path, "units", len(units))
	return units, nil
}
