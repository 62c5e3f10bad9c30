// SPDX-License-Identifier: MPL-2.0

package javatype_test

import (
	"strings"
	"testing"

	"pgregory.net/rapid"

	"hopperpack/pkg/javatype"
)

// identGen produces lowercase package-segment identifiers.
var identGen = rapid.StringMatching(`[a-z][a-z0-9]{0,7}`)

func TestPackagePathProperties(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		segments := rapid.SliceOfN(identGen, 1, 6).Draw(t, "segments")
		simple := rapid.StringMatching(`[A-Z][A-Za-z0-9]{0,11}`).Draw(t, "simple")

		javaType := strings.Join(append(append([]string(nil), segments...), simple), ".")

		gotPath := javatype.PackagePath(javaType)
		wantPath := strings.Join(segments, "/")
		if gotPath != wantPath {
			t.Fatalf("PackagePath(%q) = %q, want %q", javaType, gotPath, wantPath)
		}

		// The derived path never contains the namespace separator, and the
		// simple name never contains a path separator.
		if strings.Contains(gotPath, ".") {
			t.Fatalf("PackagePath(%q) = %q contains a dot", javaType, gotPath)
		}
		if got := javatype.SimpleName(javaType); got != simple {
			t.Fatalf("SimpleName(%q) = %q, want %q", javaType, got, simple)
		}
	})
}
