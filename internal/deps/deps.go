// SPDX-License-Identifier: MPL-2.0

// Package deps reads the dependency lockfile written by the Hopper build
// resolver and locates the core runtime artifact among the resolved
// dependencies.
//
// The lockfile (hopper.deps.toml) lists the module's resolved dependency
// closure split into direct and transitive entries. hopperpack never
// resolves dependencies itself; it only consumes what the resolver wrote.
package deps

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Coordinates of the core runtime artifact that carries the data format
// model resources.
const (
	CoreGroup    = "org.hopper"
	CoreArtifact = "hopper-core"
)

// DefaultLockfileName is the conventional lockfile name in a module
// directory.
const DefaultLockfileName = "hopper.deps.toml"

// Dependency is one resolved artifact from the lockfile.
type Dependency struct {
	Group    string `toml:"group"`
	Artifact string `toml:"artifact"`
	Version  string `toml:"version"`
	// File is the resolver's local path for the artifact: a jar, an
	// archive, or an unpacked classes directory.
	File string `toml:"file"`
}

// Coordinates returns the group:artifact:version form of the dependency.
func (d Dependency) Coordinates() string {
	return fmt.Sprintf("%s:%s:%s", d.Group, d.Artifact, d.Version)
}

// Set is the parsed lockfile: the module's resolved dependency closure.
type Set struct {
	Direct     []Dependency `toml:"direct"`
	Transitive []Dependency `toml:"transitive"`
}

// Find returns the first dependency matching group and artifact. Direct
// dependencies are searched before transitive ones; version is not part
// of the match.
func (s *Set) Find(group, artifact string) (Dependency, bool) {
	for _, d := range s.Direct {
		if d.Group == group && d.Artifact == artifact {
			return d, true
		}
	}
	for _, d := range s.Transitive {
		if d.Group == group && d.Artifact == artifact {
			return d, true
		}
	}
	return Dependency{}, false
}

// FindCore locates the core runtime artifact in the set.
func (s *Set) FindCore() (Dependency, bool) {
	return s.Find(CoreGroup, CoreArtifact)
}

// LoadLockfile reads and parses a dependency lockfile. A missing file
// surfaces as an error satisfying errors.Is(err, fs.ErrNotExist) so
// callers can treat it as "no resolved dependencies" rather than a
// failure.
func LoadLockfile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dependency lockfile %s: %w", path, err)
	}

	var set Set
	if err := toml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse dependency lockfile %s: %w", path, err)
	}

	return &set, nil
}
