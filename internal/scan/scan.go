// SPDX-License-Identifier: MPL-2.0

package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"hopperpack/internal/issue"
	"hopperpack/pkg/platform"

	"github.com/magiconair/properties"
)

// RegistryPath is the slash-separated registry directory looked up under
// each resource root. A module declares one data format per file in it.
const RegistryPath = "META-INF/services/org/hopper/dataformat"

// classProperty is the descriptor key naming the implementing type.
const classProperty = "class"

type (
	// DescriptorEntry is one discovered data format descriptor.
	DescriptorEntry struct {
		// Name is the registry file name, which is the data format name
		// (e.g., "csv").
		Name string
		// JavaType is the descriptor's class property value. Empty when the
		// descriptor has no usable class (see CodeDescriptorMissingClass).
		JavaType string
		// Path is the descriptor file location on disk.
		Path string
	}

	// Result bundles the discovered entries with diagnostics produced during
	// the scan. Entries preserve discovery order: resource roots in
	// configuration order, files in lexical order within each registry.
	Result struct {
		Entries     []DescriptorEntry
		Diagnostics []Diagnostic
	}

	// Scanner discovers descriptors under a module's resource roots.
	Scanner struct {
		baseDir string
		roots   []string
	}
)

// New creates a Scanner. Relative roots are resolved against baseDir.
func New(baseDir string, roots []string) *Scanner {
	return &Scanner{baseDir: baseDir, roots: roots}
}

// Count returns the number of discovered descriptors.
func (r *Result) Count() int {
	return len(r.Entries)
}

// Names returns the data format names in discovery order. Duplicate names
// from different roots appear once per occurrence.
func (r *Result) Names() []string {
	names := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		names = append(names, e.Name)
	}
	return names
}

// Index returns a name-to-type map over the entries that carry a class.
// When the same name was declared in multiple roots, the later declaration
// wins (mirrors the per-occurrence order of Entries).
func (r *Result) Index() map[string]string {
	index := make(map[string]string, len(r.Entries))
	for _, e := range r.Entries {
		if e.JavaType != "" {
			index[e.Name] = e.JavaType
		}
	}
	return index
}

// Scan walks the resource roots and collects descriptor entries. A missing
// registry directory in a root is normal (the module declares no data
// formats there); unreadable directories or descriptor files fail the scan.
func (s *Scanner) Scan() (*Result, error) {
	res := &Result{Diagnostics: make([]Diagnostic, 0)}
	seen := make(map[string]string) // name -> path of first occurrence

	for _, root := range s.roots {
		rootDir := root
		if !filepath.IsAbs(rootDir) {
			rootDir = filepath.Join(s.baseDir, rootDir)
		}
		registryDir := filepath.Join(rootDir, filepath.FromSlash(RegistryPath))

		entries, err := os.ReadDir(registryDir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				slog.Debug("no data format registry in resource root", "root", rootDir)
				continue
			}
			return nil, fmt.Errorf("failed to list registry directory %s: %w", registryDir, err)
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			// Hidden files are editor/VCS droppings, not descriptors
			if strings.HasPrefix(name, ".") {
				continue
			}

			path := filepath.Join(registryDir, name)
			javaType, found, err := readDescriptorClass(path)
			if err != nil {
				return nil, issue.NewErrorContext().
					WithOperation("parse descriptor").
					WithResource(path).
					WithSuggestion("Check the file is plain key=value properties, one per line").
					Wrap(err).
					BuildError()
			}
			if !found {
				res.Diagnostics = append(res.Diagnostics, NewDiagnosticWithPath(
					SeverityWarning,
					CodeDescriptorMissingClass,
					fmt.Sprintf("descriptor %q has no class property; schema generation will skip it", name),
					path,
				))
			}

			if platform.IsWindowsReservedName(name) {
				res.Diagnostics = append(res.Diagnostics, NewDiagnosticWithPath(
					SeverityWarning,
					CodeWindowsReservedName,
					fmt.Sprintf("data format name %q is a reserved file name on Windows; its schema file cannot be written there", name),
					path,
				))
			}

			if firstPath, dup := seen[name]; dup {
				res.Diagnostics = append(res.Diagnostics, NewDiagnosticWithPath(
					SeverityWarning,
					CodeDuplicateDescriptor,
					fmt.Sprintf("data format %q declared in multiple resource roots (first at %s); the later declaration wins", name, firstPath),
					path,
				))
			} else {
				seen[name] = path
			}

			res.Entries = append(res.Entries, DescriptorEntry{
				Name:     name,
				JavaType: javaType,
				Path:     path,
			})
		}
	}

	return res, nil
}

// readDescriptorClass parses a descriptor properties file and extracts the
// class property. found is false when the key is absent or its value blank.
func readDescriptorClass(path string) (javaType string, found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, err
	}

	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadBytes(data)
	if err != nil {
		return "", false, err
	}

	value, ok := p.Get(classProperty)
	value = strings.TrimSpace(value)
	if !ok || value == "" {
		return "", false, nil
	}
	return value, true, nil
}
