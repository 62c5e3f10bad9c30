// SPDX-License-Identifier: MPL-2.0

// Package emit writes the generator outputs: per-format schema documents
// under package-derived paths, the aggregate summary properties file,
// and the attachment record consumed by the host build.
package emit

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magiconair/properties"

	"hopperpack/pkg/javatype"
)

const (
	summaryRelDir = "META-INF/services/org/hopper"

	// SummaryFileName is the aggregate summary file written under the
	// meta output root.
	SummaryFileName = "dataformat.properties"

	summaryComment = "Generated by hopperpack"
)

// Summary is the aggregate record of every discovered data format in a
// module, regardless of whether schema generation succeeded for it.
type Summary struct {
	// Names in discovery order, duplicates included.
	Names              []string
	GroupID            string
	ArtifactID         string
	Version            string
	ProjectName        string
	ProjectDescription string
}

// SummaryPath returns where the summary file lands under a meta output
// root.
func SummaryPath(metaRoot string) string {
	return filepath.Join(metaRoot, filepath.FromSlash(summaryRelDir), SummaryFileName)
}

// WriteSchema writes one schema document into the package directory
// derived from the implementation type name, under the schema output
// root. Existing files are overwritten. Returns the written path.
func WriteSchema(schemaRoot, javaType, name, doc string) (string, error) {
	dir := filepath.Join(schemaRoot, filepath.FromSlash(javatype.PackagePath(javaType)))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create schema directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, name+".json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("failed to write schema file %s: %w", path, err)
	}
	return path, nil
}

// WriteSummary serializes the summary as a Java properties file under
// the meta output root, creating parents. The output carries no
// timestamp, so rewriting an unchanged summary is byte-identical.
// Returns the written path.
func WriteSummary(metaRoot string, s Summary) (string, error) {
	p := properties.NewProperties()
	p.DisableExpansion = true

	pairs := [...]struct{ key, value string }{
		{"dataFormats", strings.Join(s.Names, " ")},
		{"groupId", s.GroupID},
		{"artifactId", s.ArtifactID},
		{"version", s.Version},
		{"projectName", s.ProjectName},
		{"projectDescription", s.ProjectDescription},
	}
	for _, kv := range pairs {
		if _, _, err := p.Set(kv.key, kv.value); err != nil {
			return "", fmt.Errorf("failed to assemble summary properties: %w", err)
		}
	}
	p.SetComment("dataFormats", summaryComment)

	var buf bytes.Buffer
	if _, err := p.WriteComment(&buf, "# ", properties.UTF8); err != nil {
		return "", fmt.Errorf("failed to serialize summary properties: %w", err)
	}

	path := SummaryPath(metaRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create summary directory %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write summary file %s: %w", path, err)
	}
	return path, nil
}
