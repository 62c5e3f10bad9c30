// SPDX-License-Identifier: MPL-2.0

package deps

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const sampleLockfile = `# hopper.deps.toml - written by the hopper build
[[direct]]
group = "org.hopper"
artifact = "hopper-core"
version = "2.3.0"
file = "/repo/org.hopper/hopper-core/2.3.0/hopper-core-2.3.0.jar"

[[direct]]
group = "org.hopper"
artifact = "hopper-support"
version = "2.3.0"
file = "/repo/org.hopper/hopper-support/2.3.0/hopper-support-2.3.0.jar"

[[transitive]]
group = "org.slf4j"
artifact = "slf4j-api"
version = "2.0.9"
file = "/repo/org.slf4j/slf4j-api/2.0.9/slf4j-api-2.0.9.jar"
`

func writeLockfile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultLockfileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write lockfile: %v", err)
	}
	return path
}

func TestLoadLockfile(t *testing.T) {
	t.Parallel()

	set, err := LoadLockfile(writeLockfile(t, sampleLockfile))
	if err != nil {
		t.Fatalf("LoadLockfile() error = %v", err)
	}

	if len(set.Direct) != 2 {
		t.Errorf("len(Direct) = %d, want 2", len(set.Direct))
	}
	if len(set.Transitive) != 1 {
		t.Errorf("len(Transitive) = %d, want 1", len(set.Transitive))
	}

	core := set.Direct[0]
	if core.Coordinates() != "org.hopper:hopper-core:2.3.0" {
		t.Errorf("Coordinates() = %q", core.Coordinates())
	}
	if core.File != "/repo/org.hopper/hopper-core/2.3.0/hopper-core-2.3.0.jar" {
		t.Errorf("File = %q", core.File)
	}
}

func TestLoadLockfile_Missing(t *testing.T) {
	t.Parallel()

	_, err := LoadLockfile(filepath.Join(t.TempDir(), DefaultLockfileName))
	if err == nil {
		t.Fatal("LoadLockfile() on a missing file should fail")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error should satisfy fs.ErrNotExist, got: %v", err)
	}
}

func TestLoadLockfile_Malformed(t *testing.T) {
	t.Parallel()

	_, err := LoadLockfile(writeLockfile(t, "[[direct]\ngroup = broken"))
	if err == nil {
		t.Fatal("LoadLockfile() on malformed TOML should fail")
	}
	if errors.Is(err, fs.ErrNotExist) {
		t.Errorf("parse failure must not look like a missing file: %v", err)
	}
}

func TestSet_Find(t *testing.T) {
	t.Parallel()

	set := &Set{
		Direct: []Dependency{
			{Group: "org.hopper", Artifact: "hopper-core", Version: "2.3.0", File: "/direct/hopper-core.jar"},
		},
		Transitive: []Dependency{
			{Group: "org.hopper", Artifact: "hopper-core", Version: "1.0.0", File: "/transitive/hopper-core.jar"},
			{Group: "org.slf4j", Artifact: "slf4j-api", Version: "2.0.9", File: "/transitive/slf4j-api.jar"},
		},
	}

	t.Run("direct wins over transitive", func(t *testing.T) {
		t.Parallel()
		d, ok := set.Find("org.hopper", "hopper-core")
		if !ok {
			t.Fatal("Find() = not found, want found")
		}
		if d.File != "/direct/hopper-core.jar" {
			t.Errorf("File = %q, want the direct entry", d.File)
		}
	})

	t.Run("transitive fallback", func(t *testing.T) {
		t.Parallel()
		d, ok := set.Find("org.slf4j", "slf4j-api")
		if !ok {
			t.Fatal("Find() = not found, want found")
		}
		if d.Version != "2.0.9" {
			t.Errorf("Version = %q, want 2.0.9", d.Version)
		}
	})

	t.Run("version not part of the match", func(t *testing.T) {
		t.Parallel()
		d, ok := (&Set{Transitive: []Dependency{{Group: "org.hopper", Artifact: "hopper-core", Version: "9.9.9"}}}).FindCore()
		if !ok {
			t.Fatal("FindCore() = not found, want found")
		}
		if d.Version != "9.9.9" {
			t.Errorf("Version = %q, want 9.9.9", d.Version)
		}
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		if _, ok := set.Find("org.example", "nothing"); ok {
			t.Error("Find() = found, want not found")
		}
	})
}
