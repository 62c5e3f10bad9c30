// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hopperpack/internal/config"
	"hopperpack/internal/scan"
	"hopperpack/pkg/hoppermod"
	"hopperpack/pkg/platform"

	"github.com/spf13/cobra"
)

var (
	initForce        bool
	initGroup        string
	initArtifact     string
	initVersion      string
	initDescription  string
	initClass        string
	initResourceRoot string

	// initCmd scaffolds a module manifest or a data format descriptor
	initCmd = &cobra.Command{
		Use:   "init [name]",
		Short: "Create a module manifest or declare a new data format",
		Long: `Create a hoppermod.cue manifest in the module directory, or, with a
name argument, declare a new data format by writing its descriptor under
META-INF/services/org/hopper/dataformat/ in the first resource root.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing file")
	initCmd.Flags().StringVar(&initGroup, "group", "org.example", "group coordinate for the manifest")
	initCmd.Flags().StringVar(&initArtifact, "artifact", "", "artifact coordinate for the manifest (default: module directory name)")
	initCmd.Flags().StringVar(&initVersion, "version", "1.0.0-SNAPSHOT", "version coordinate for the manifest")
	initCmd.Flags().StringVar(&initDescription, "description", "", "module description for the manifest")
	initCmd.Flags().StringVar(&initClass, "class", "", "fully-qualified implementation class for the descriptor")
	initCmd.Flags().StringVar(&initResourceRoot, "resource-root", "", "resource root to place the descriptor in (default from config)")
}

func runInit(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return initManifest()
	}
	return initDescriptor(args[0])
}

func initManifest() error {
	path := hoppermod.ManifestPath(baseDir)

	// Check if file exists
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", path)
	}

	artifact := initArtifact
	if artifact == "" {
		abs, err := filepath.Abs(baseDir)
		if err != nil {
			return fmt.Errorf("failed to resolve module directory: %w", err)
		}
		artifact = filepath.Base(abs)
	}

	content := hoppermod.GenerateCUE(&hoppermod.Manifest{
		Group:       initGroup,
		Artifact:    artifact,
		Version:     initVersion,
		Description: initDescription,
	})

	// Validate before writing so a bad flag value cannot produce a
	// manifest that generate refuses later.
	if _, err := hoppermod.ParseBytes([]byte(content), path); err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	absPath, _ := filepath.Abs(path)
	fmt.Printf("%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Next steps:"))
	fmt.Println("  1. Adjust the coordinates in hoppermod.cue")
	fmt.Println("  2. Declare a data format with 'hopperpack init <name> --class <fully.qualified.Class>'")
	fmt.Println("  3. Run 'hopperpack generate' as part of your build")

	return nil
}

func initDescriptor(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid data format name %q", name)
	}
	if initClass == "" {
		return fmt.Errorf("--class is required when declaring a data format")
	}
	if platform.IsWindowsReservedName(name) {
		fmt.Fprintf(os.Stderr, "%s data format name %q is a reserved file name on Windows\n",
			WarningStyle.Render("Warning:"), name)
	}

	root := initResourceRoot
	if root == "" {
		roots := resourceRoots(activeConfig(), nil)
		if len(roots) == 0 {
			root = string(config.DefaultResourceRoot)
		} else {
			root = roots[0]
		}
	}

	registryDir := filepath.Join(resolvePath(root), filepath.FromSlash(scan.RegistryPath))
	path := filepath.Join(registryDir, name)

	// Check if file exists
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", path)
	}

	if err := os.MkdirAll(registryDir, 0o755); err != nil {
		return fmt.Errorf("failed to create registry directory: %w", err)
	}
	if err := os.WriteFile(path, []byte("class="+initClass+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	absPath, _ := filepath.Abs(path)
	fmt.Printf("%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Next steps:"))
	fmt.Println("  1. Implement " + initClass)
	fmt.Println("  2. Run 'hopperpack generate' to produce the module metadata")

	return nil
}
