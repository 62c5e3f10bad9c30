// SPDX-License-Identifier: MPL-2.0

// Package scan discovers data format plugin descriptors in a module's
// resource roots.
//
// A descriptor is a properties file under
// META-INF/services/org/hopper/dataformat/ whose file name is the data
// format name and whose "class" property names the implementing type.
// Scanning walks the configured resource roots in order and the files in
// each registry directory in lexical order; that combined order is the
// discovery order every downstream consumer sees. Hidden files (dot
// prefix) and subdirectories are excluded.
//
// Non-fatal findings (a descriptor without a class property, duplicate
// names across roots) are reported as Diagnostics so the CLI layer decides
// how to render them; unreadable descriptors fail the scan.
package scan
