// SPDX-License-Identifier: MPL-2.0

// Package generate runs the metadata pipeline for one module: scan the
// resource roots for data format descriptors, merge the core artifact's
// model documents into per-format schema documents, and write the
// aggregate summary with its build attachments.
package generate

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/exp/maps"

	"hopperpack/internal/deps"
	"hopperpack/internal/emit"
	"hopperpack/internal/issue"
	"hopperpack/internal/scan"
	"hopperpack/internal/schema"
	"hopperpack/pkg/container"
	"hopperpack/pkg/hoppermod"
)

// Options configures one pipeline run. All state is local to the
// invocation.
type Options struct {
	// BaseDir is the module base directory; relative roots and output
	// directories resolve against it.
	BaseDir       string
	ResourceRoots []string
	MetaOutDir    string
	SchemaOutDir  string
	Deps          deps.Set
	Module        hoppermod.Manifest
	// Recorder records build attachments for the summary. nil skips
	// recording.
	Recorder emit.Recorder
}

// Result reports what one run discovered and wrote.
type Result struct {
	Count          int
	Names          []string
	SchemasWritten []string
	// SummaryPath is empty when no descriptors were discovered.
	SummaryPath string
	Diagnostics []scan.Diagnostic
}

// Generate runs the pipeline. The first fatal error aborts the run;
// files written before the failure point remain.
func Generate(opts Options) (Result, error) {
	var res Result

	scanRes, err := scan.New(opts.BaseDir, opts.ResourceRoots).Scan()
	if err != nil {
		return res, err
	}
	res.Count = scanRes.Count()
	res.Names = scanRes.Names()
	res.Diagnostics = scanRes.Diagnostics

	if err := generateSchemas(opts, scanRes.Index(), &res); err != nil {
		return res, issue.WrapWithContext(err, "load data format models", deps.CoreArtifact)
	}

	if res.Count == 0 {
		slog.Debug("no data format descriptors found; is this module really a data format?",
			"registry", scan.RegistryPath)
		return res, nil
	}

	metaDir := resolveDir(opts.BaseDir, opts.MetaOutDir)
	summaryPath, err := emit.WriteSummary(metaDir, emit.Summary{
		Names:              res.Names,
		GroupID:            opts.Module.Group,
		ArtifactID:         opts.Module.Artifact,
		Version:            opts.Module.Version,
		ProjectName:        opts.Module.Name,
		ProjectDescription: opts.Module.Description,
	})
	if err != nil {
		return res, err
	}
	res.SummaryPath = summaryPath
	slog.Info("generated data format summary",
		"path", summaryPath, "count", res.Count, "dataFormats", strings.Join(res.Names, " "))

	if opts.Recorder != nil {
		if err := opts.Recorder.AddResourceRoot(metaDir, []string{"**/" + emit.SummaryFileName}); err != nil {
			return res, fmt.Errorf("failed to record resource root %s: %w", metaDir, err)
		}
		if err := opts.Recorder.AttachArtifact("properties", "hopperDataFormat", summaryPath); err != nil {
			return res, fmt.Errorf("failed to record summary artifact %s: %w", summaryPath, err)
		}
	}

	return res, nil
}

// generateSchemas merges and writes schema documents for every
// discovered format with an implementation class and a model resource
// in the core artifact. Without the core artifact among the resolved
// dependencies, schema generation is skipped for the whole run.
func generateSchemas(opts Options, index map[string]string, res *Result) error {
	core, ok := opts.Deps.FindCore()
	if !ok {
		slog.Debug("core artifact not among resolved dependencies, skipping schema generation",
			"group", deps.CoreGroup, "artifact", deps.CoreArtifact)
		return nil
	}
	if len(index) == 0 {
		return nil
	}

	c, err := container.Open(core.File)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()
	slog.Debug("opened core artifact", "path", c.Path(), "coordinates", core.Coordinates())

	schemaDir := resolveDir(opts.BaseDir, opts.SchemaOutDir)

	names := maps.Keys(index)
	slices.Sort(names)

	for _, name := range names {
		resource := schema.ModelResourcePath(name)
		modelText, err := c.ReadText(resource)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				slog.Debug("no model resource for data format", "name", name, "resource", resource)
				continue
			}
			return err
		}

		rows, err := schema.ModelRows(modelText)
		if err != nil {
			return fmt.Errorf("model for %s: %w", name, err)
		}

		df := schema.DataFormat{
			Name:        name,
			Description: opts.Module.Description,
			Label:       schema.Label(rows),
			JavaType:    index[name],
			GroupID:     opts.Module.Group,
			ArtifactID:  opts.Module.Artifact,
			Version:     opts.Module.Version,
		}

		fragment, occurrences := schema.ExtractProperties(modelText)
		if occurrences > 1 {
			slog.Debug("model text contains multiple properties markers, splitting at the first",
				"name", name, "occurrences", occurrences)
		}

		path, err := emit.WriteSchema(schemaDir, df.JavaType, name, df.Document(fragment))
		if err != nil {
			return err
		}
		res.SchemasWritten = append(res.SchemasWritten, path)
		slog.Info("generated data format schema", "name", name, "path", path)
	}

	return nil
}

func resolveDir(baseDir, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(baseDir, dir)
}
