// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for hopperpack.
//
// This package implements the Cobra command hierarchy for the hopperpack
// CLI, including the root command and subcommands for metadata generation,
// descriptor listing, module scaffolding, and configuration management.
package cmd
