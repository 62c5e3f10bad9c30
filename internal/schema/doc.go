// SPDX-License-Identifier: MPL-2.0

// Package schema turns the raw model documents shipped inside the core
// artifact into per-format schema documents.
//
// A model document is JSON with two top-level sections: "model" (flat
// metadata about the format) and "properties" (the format's configurable
// options, already rendered by the upstream model generator). The merge
// is deliberately textual: the model section is parsed only far enough
// to pick out the label, while the properties section is carried over as
// the literal text after the properties marker. Re-rendering the
// properties structurally could alter upstream formatting or reject
// documents the upstream generator accepted, so the text is trusted
// as-is.
package schema
