// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"hopperpack/internal/config"
	"hopperpack/internal/deps"
	"hopperpack/internal/emit"
	"hopperpack/internal/issue"
	"hopperpack/pkg/hoppermod"

	"github.com/spf13/cobra"
)

// configCmd manages the hopperpack configuration file
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage hopperpack configuration",
	Long: `Manage hopperpack configuration.

Configuration is stored in:
  - Linux: ~/.config/hopperpack/config.cue
  - macOS: ~/Library/Application Support/hopperpack/config.cue
  - Windows: %APPDATA%\hopperpack\config.cue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(args[0], args[1])
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := config.Load(config.LoadOptions{ConfigFilePath: cfgFile})
			if err != nil {
				return err
			}

			fmt.Print(config.GenerateCUE(cfg))
			return nil
		},
	})
}

func showConfig() error {
	cfg, cfgPath, err := config.Load(config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		renderIssue(issue.ConfigLoadFailedId)
		return err
	}

	// Style definitions using shared color palette
	headerStyle := TitleStyle
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Println(headerStyle.Render("Current Configuration"))
	fmt.Println()

	if cfgPath != "" {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s:\n", keyStyle.Render("resource_roots"))
	for _, root := range cfg.ResourceRoots {
		fmt.Printf("  - %s\n", valueStyle.Render(string(root)))
	}

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("output"))
	fmt.Printf("  meta_dir: %s\n", valueStyle.Render(string(cfg.Output.MetaDir)))
	fmt.Printf("  schema_dir: %s\n", valueStyle.Render(string(cfg.Output.SchemaDir)))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("paths"))
	fmt.Printf("  lockfile: %s\n", moduleFileValue(cfg.Paths.Lockfile, deps.DefaultLockfileName))
	fmt.Printf("  manifest: %s\n", moduleFileValue(cfg.Paths.Manifest, hoppermod.DefaultFileName))
	fmt.Printf("  attachments: %s\n", moduleFileValue(cfg.Paths.Attachments, emit.AttachFileName))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

// moduleFileValue renders a configured module file path, or the conventional
// name used when the path is unset.
func moduleFileValue(p config.ModuleFilePath, conventional string) string {
	if p == "" {
		return SubtitleStyle.Render("(default: " + conventional + " in the module directory)")
	}
	return SuccessStyle.Render(string(p))
}

func initConfig() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	if err = config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Printf("%s Created default configuration at %s\n",
		SuccessStyle.Render("✓"), filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))

	return nil
}

func setConfigValue(key, value string) error {
	cfg, _, err := config.Load(config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		return err
	}

	switch key {
	case "output.meta_dir":
		cfg.Output.MetaDir = config.OutputDirPath(value)

	case "output.schema_dir":
		cfg.Output.SchemaDir = config.OutputDirPath(value)

	case "paths.lockfile":
		cfg.Paths.Lockfile = config.ModuleFilePath(value)

	case "paths.manifest":
		cfg.Paths.Manifest = config.ModuleFilePath(value)

	case "paths.attachments":
		cfg.Paths.Attachments = config.ModuleFilePath(value)

	case "ui.color_scheme":
		cs := config.ColorScheme(value)
		if valid, errs := cs.IsValid(); !valid {
			return errs[0]
		}
		cfg.UI.ColorScheme = cs

	case "ui.verbose":
		cfg.UI.Verbose = value == "true" || value == "1"

	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: output.meta_dir, output.schema_dir, paths.lockfile, paths.manifest, paths.attachments, ui.color_scheme, ui.verbose", key)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}
