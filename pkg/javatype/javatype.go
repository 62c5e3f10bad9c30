// SPDX-License-Identifier: MPL-2.0

// Package javatype provides helpers for working with fully-qualified JVM
// type names, e.g. "org.acme.format.CsvDataFormat". Hopper module metadata
// identifies plugin implementations by these names, and generated files are
// laid out under their package paths.
package javatype

import "strings"

// PackagePath returns the package portion of a fully-qualified type name as
// a slash-separated relative path: "com.example.format.Csv" yields
// "com/example/format". A name without a package separator yields "",
// placing derived files directly under the output root.
func PackagePath(javaType string) string {
	idx := strings.LastIndexByte(javaType, '.')
	if idx < 0 {
		return ""
	}
	return strings.ReplaceAll(javaType[:idx], ".", "/")
}

// SimpleName returns the final segment of a fully-qualified type name:
// "com.example.format.Csv" yields "Csv". A name without a package separator
// is returned unchanged.
func SimpleName(javaType string) string {
	idx := strings.LastIndexByte(javaType, '.')
	if idx < 0 {
		return javaType
	}
	return javaType[idx+1:]
}
