// SPDX-License-Identifier: MPL-2.0

package hoppermod

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hopperpack/pkg/cueutil"
)

// DefaultFileName is the manifest file name looked up in a module directory.
const DefaultFileName = "hoppermod.cue"

var (
	//go:embed hoppermod_schema.cue
	manifestSchema string

	// ErrManifestNotFound is returned when hoppermod.cue is not found in a
	// module directory. Callers can check for it with errors.Is.
	ErrManifestNotFound = errors.New("hoppermod.cue not found")
)

// Manifest represents module identity from hoppermod.cue. It is the Go-side
// analogue of the manifest a build reads before producing artifacts: the
// coordinates here name both the module being built and the artifact
// attachments it publishes.
type Manifest struct {
	// Group is the organization identifier (e.g., "org.hopper").
	Group string `json:"group"`
	// Artifact identifies the module within its group.
	Artifact string `json:"artifact"`
	// Version is the module version string.
	Version string `json:"version"`
	// Name is the display name; filled with Artifact when the manifest
	// omits it.
	Name string `json:"name,omitempty"`
	// Description summarizes the module. May be empty.
	Description string `json:"description,omitempty"`
	// FilePath stores where this manifest was loaded from (not in CUE).
	FilePath string `json:"-"`
}

// Coordinates returns the group:artifact:version triple for log output.
func (m *Manifest) Coordinates() string {
	return fmt.Sprintf("%s:%s:%s", m.Group, m.Artifact, m.Version)
}

// Parse reads and parses a module manifest from the given path.
func Parse(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read module manifest at %s: %w", path, err)
	}
	return ParseBytes(data, path)
}

// ParseBytes parses manifest content from bytes. Uses
// cueutil.ParseAndDecodeString for the 3-step CUE parsing flow:
// compile schema → compile user data → validate and decode.
func ParseBytes(data []byte, path string) (*Manifest, error) {
	result, err := cueutil.ParseAndDecodeString[Manifest](
		manifestSchema,
		data,
		"#Module",
		cueutil.WithFilename(path),
	)
	if err != nil {
		return nil, err
	}

	m := result.Value
	m.FilePath = path
	if m.Name == "" {
		m.Name = m.Artifact
	}
	return m, nil
}

// Load parses the manifest from a module directory. Returns
// ErrManifestNotFound if hoppermod.cue doesn't exist there.
func Load(moduleDir string) (*Manifest, error) {
	path := ManifestPath(moduleDir)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w in %s", ErrManifestNotFound, moduleDir)
		}
		return nil, fmt.Errorf("failed to check module manifest at %s: %w", path, err)
	}
	return Parse(path)
}

// ManifestPath returns the path to hoppermod.cue in a module directory.
func ManifestPath(moduleDir string) string {
	return filepath.Join(moduleDir, DefaultFileName)
}

// GenerateCUE renders a manifest as hoppermod.cue content. Optional fields
// are emitted only when set; Name is skipped when it just mirrors Artifact.
func GenerateCUE(m *Manifest) string {
	var sb strings.Builder

	sb.WriteString("// hoppermod.cue - Hopper module manifest\n\n")
	sb.WriteString(fmt.Sprintf("group: %q\n", m.Group))
	sb.WriteString(fmt.Sprintf("artifact: %q\n", m.Artifact))
	sb.WriteString(fmt.Sprintf("version: %q\n", m.Version))
	if m.Name != "" && m.Name != m.Artifact {
		sb.WriteString(fmt.Sprintf("name: %q\n", m.Name))
	}
	if m.Description != "" {
		sb.WriteString(fmt.Sprintf("description: %q\n", m.Description))
	}

	return sb.String()
}
