package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/flowbricks/internal/ctxlog"
	"github.com/vk/flowbricks/internal/model"
)

// Manifest is everything declared across a set of manifest files.
type Manifest struct {
	Units []model.UnitSummary
	Hints []model.WireHint
}

// Loader reads unit manifests written in HCL.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found under paths. Directories are walked
// recursively and missing paths are skipped. A unit id declared twice is an
// error.
func (l *Loader) Load(ctx context.Context, paths ...string) (*Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()
	manifest := &Manifest{}
	definedIn := make(map[string]string)

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, ub := range root.Units {
			if prev, dup := definedIn[ub.ID]; dup {
				return nil, fmt.Errorf("unit %q is defined in both %s and %s", ub.ID, prev, file)
			}
			definedIn[ub.ID] = file

			u, err := l.translateUnit(ctx, ub)
			if err != nil {
				return nil, fmt.Errorf("in file %s: %w", file, err)
			}
			manifest.Units = append(manifest.Units, u)
		}
		for _, wb := range root.Wires {
			h, err := model.ParseWireHint(wb.From, wb.To)
			if err != nil {
				return nil, fmt.Errorf("in file %s, wire block: %w", file, err)
			}
			manifest.Hints = append(manifest.Hints, h)
		}
	}

	logger.Debug("HCL loading complete.", "units", len(manifest.Units), "hints", len(manifest.Hints))
	return manifest, nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl files found.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if filepath.Ext(path) == ".hcl" {
				add(path)
			}
			continue
		}
		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(p) == ".hcl" {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return allFiles, nil
}
