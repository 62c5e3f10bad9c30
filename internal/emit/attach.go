// SPDX-License-Identifier: MPL-2.0

package emit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// AttachFileName is the attachment record the host build picks up after
// the generator finishes.
const AttachFileName = "hopper.attach.json"

// Recorder records build integration effects: extra resource roots for
// the module's packaging step and artifacts to publish alongside the
// module. Callers tolerate a nil Recorder; recording is then skipped.
type Recorder interface {
	AddResourceRoot(dir string, includes []string) error
	AttachArtifact(kind, classifier, file string) error
}

// ResourceRoot is one directory the host build adds to the module's
// resources.
type ResourceRoot struct {
	Dir      string   `json:"dir"`
	Includes []string `json:"includes,omitempty"`
}

// ArtifactAttachment is one file the host build publishes with the
// module under a classifier.
type ArtifactAttachment struct {
	Kind       string `json:"kind"`
	Classifier string `json:"classifier"`
	File       string `json:"file"`
}

// FileRecorder accumulates records in memory and writes them as a
// single JSON document on Flush.
type FileRecorder struct {
	path          string
	resourceRoots []ResourceRoot
	artifacts     []ArtifactAttachment
}

// NewFileRecorder returns a recorder that flushes to hopper.attach.json
// under buildDir.
func NewFileRecorder(buildDir string) *FileRecorder {
	return NewFileRecorderAt(filepath.Join(buildDir, AttachFileName))
}

// NewFileRecorderAt returns a recorder that flushes to the given file.
func NewFileRecorderAt(path string) *FileRecorder {
	return &FileRecorder{path: path}
}

// Path returns where the recorder flushes to.
func (r *FileRecorder) Path() string { return r.path }

// AddResourceRoot records dir as an extra resource root.
func (r *FileRecorder) AddResourceRoot(dir string, includes []string) error {
	r.resourceRoots = append(r.resourceRoots, ResourceRoot{Dir: dir, Includes: includes})
	return nil
}

// AttachArtifact records a file to publish under kind and classifier.
func (r *FileRecorder) AttachArtifact(kind, classifier, file string) error {
	r.artifacts = append(r.artifacts, ArtifactAttachment{Kind: kind, Classifier: classifier, File: file})
	return nil
}

// Flush writes the accumulated records; nothing recorded means nothing
// written. The write goes through a temp file and rename so the host
// build never sees a half-written record.
func (r *FileRecorder) Flush() error {
	if len(r.resourceRoots) == 0 && len(r.artifacts) == 0 {
		return nil
	}

	record := struct {
		ResourceRoots []ResourceRoot       `json:"resourceRoots,omitempty"`
		Artifacts     []ArtifactAttachment `json:"artifacts,omitempty"`
	}{r.resourceRoots, r.artifacts}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize attachment record: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("failed to create build directory %s: %w", filepath.Dir(r.path), err)
	}

	tmpPath := r.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write attachment record: %w", err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		_ = os.Remove(tmpPath) // Best-effort cleanup of temp file
		return fmt.Errorf("failed to rename attachment record: %w", err)
	}

	return nil
}
