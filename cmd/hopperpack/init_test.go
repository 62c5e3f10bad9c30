// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"testing"

	"hopperpack/internal/config"
	"hopperpack/internal/scan"
	"hopperpack/pkg/hoppermod"
)

func TestInitScaffolding(t *testing.T) {
	// Not parallel: subtests mutate package-level flag state and baseDir.

	reset := func(t *testing.T, dir string) {
		t.Helper()

		origBase := baseDir
		origForce, origGroup, origArtifact := initForce, initGroup, initArtifact
		origVersion, origDescription := initVersion, initDescription
		origClass, origRoot := initClass, initResourceRoot
		t.Cleanup(func() {
			baseDir = origBase
			initForce, initGroup, initArtifact = origForce, origGroup, origArtifact
			initVersion, initDescription = origVersion, origDescription
			initClass, initResourceRoot = origClass, origRoot
		})

		baseDir = dir
		initForce = false
		initGroup = "org.example"
		initArtifact = ""
		initVersion = "1.0.0-SNAPSHOT"
		initDescription = ""
		initClass = ""
		initResourceRoot = ""
	}

	t.Run("manifest scaffold loads back", func(t *testing.T) {
		dir := t.TempDir()
		reset(t, dir)
		initArtifact = "hopper-dataformat-csv"
		initDescription = "CSV support"

		if err := initManifest(); err != nil {
			t.Fatalf("initManifest() error = %v", err)
		}

		m, err := hoppermod.Load(dir)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got, want := m.Coordinates(), "org.example:hopper-dataformat-csv:1.0.0-SNAPSHOT"; got != want {
			t.Errorf("Coordinates() = %q, want %q", got, want)
		}
		if m.Description != "CSV support" {
			t.Errorf("Description = %q, want %q", m.Description, "CSV support")
		}
	})

	t.Run("existing manifest needs force", func(t *testing.T) {
		dir := t.TempDir()
		reset(t, dir)
		initArtifact = "hopper-dataformat-csv"

		if err := initManifest(); err != nil {
			t.Fatalf("initManifest() error = %v", err)
		}
		if err := initManifest(); err == nil {
			t.Fatal("initManifest() over an existing manifest should fail without --force")
		}

		initForce = true
		if err := initManifest(); err != nil {
			t.Fatalf("initManifest() with force error = %v", err)
		}
	})

	t.Run("descriptor scaffold is discovered by scan", func(t *testing.T) {
		dir := t.TempDir()
		reset(t, dir)
		initClass = "org.example.csv.CsvDataFormat"

		if err := initDescriptor("csv"); err != nil {
			t.Fatalf("initDescriptor() error = %v", err)
		}

		res, err := scan.New(dir, []string{string(config.DefaultResourceRoot)}).Scan()
		if err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		if got := res.Names(); len(got) != 1 || got[0] != "csv" {
			t.Fatalf("Names() = %v, want [csv]", got)
		}
		if got := res.Index()["csv"]; got != "org.example.csv.CsvDataFormat" {
			t.Errorf("Index()[csv] = %q, want %q", got, "org.example.csv.CsvDataFormat")
		}
	})

	t.Run("descriptor requires class", func(t *testing.T) {
		reset(t, t.TempDir())

		if err := initDescriptor("csv"); err == nil {
			t.Fatal("initDescriptor() without --class should fail")
		}
	})

	t.Run("descriptor rejects path separators", func(t *testing.T) {
		reset(t, t.TempDir())
		initClass = "org.example.csv.CsvDataFormat"

		if err := initDescriptor("a/b"); err == nil {
			t.Fatal("initDescriptor() with a path separator in the name should fail")
		}
	})
}
