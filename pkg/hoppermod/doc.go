// SPDX-License-Identifier: MPL-2.0

// Package hoppermod parses hoppermod.cue module manifests. A manifest
// declares the Maven-style identity of the module being built: group,
// artifact, version, plus an optional display name and description that
// flow into generated metadata.
//
// Parsing is schema-first: the manifest is validated against the embedded
// #Module CUE definition before it is decoded, so callers always receive
// either a structurally valid Manifest or an error pointing at the offending
// field.
package hoppermod
