// SPDX-License-Identifier: MPL-2.0

package javatype_test

import (
	"testing"

	"hopperpack/pkg/javatype"
)

func TestPackagePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		javaType string
		want     string
	}{
		{"three segments", "com.example.format.Csv", "com/example/format"},
		{"two segments", "org.acme.Csv", "org/acme"},
		{"single package", "acme.Csv", "acme"},
		{"no package", "Csv", ""},
		{"empty", "", ""},
		{"trailing separator", "org.acme.", "org/acme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := javatype.PackagePath(tt.javaType); got != tt.want {
				t.Errorf("PackagePath(%q) = %q, want %q", tt.javaType, got, tt.want)
			}
		})
	}
}

func TestSimpleName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		javaType string
		want     string
	}{
		{"three segments", "com.example.format.Csv", "Csv"},
		{"no package", "Csv", "Csv"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := javatype.SimpleName(tt.javaType); got != tt.want {
				t.Errorf("SimpleName(%q) = %q, want %q", tt.javaType, got, tt.want)
			}
		})
	}
}
