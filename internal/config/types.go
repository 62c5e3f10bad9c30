// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultResourceRoot is the conventional location of build resources.
	DefaultResourceRoot ResourceRootPath = "src/main/resources"
	// DefaultMetaDir is where the dataformat.properties summary is written.
	DefaultMetaDir OutputDirPath = "target/generated/hopper/dataformats"
	// DefaultSchemaDir is where generated schema documents are written.
	DefaultSchemaDir OutputDirPath = "target/classes"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidResourceRootPath is returned when a ResourceRootPath value is whitespace-only.
	ErrInvalidResourceRootPath = errors.New("invalid resource root path")
	// ErrInvalidOutputDirPath is returned when an OutputDirPath value is whitespace-only.
	ErrInvalidOutputDirPath = errors.New("invalid output dir path")
	// ErrInvalidModuleFilePath is returned when a ModuleFilePath value is whitespace-only.
	ErrInvalidModuleFilePath = errors.New("invalid module file path")
	// ErrInvalidOutputConfig is the sentinel error wrapped by InvalidOutputConfigError.
	ErrInvalidOutputConfig = errors.New("invalid output config")
	// ErrInvalidPathsConfig is the sentinel error wrapped by InvalidPathsConfigError.
	ErrInvalidPathsConfig = errors.New("invalid paths config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// ResourceRootPath is a path to a directory scanned for plugin
	// descriptors, resolved against the module directory when relative.
	// A valid path must be non-empty and not whitespace-only.
	ResourceRootPath string

	// InvalidResourceRootPathError is returned when a ResourceRootPath value
	// is empty or whitespace-only. It wraps ErrInvalidResourceRootPath for errors.Is().
	InvalidResourceRootPathError struct {
		Value ResourceRootPath
	}

	// OutputDirPath is a path to a generated-output directory, resolved
	// against the module directory when relative. The zero value ("") is
	// valid and means "use the built-in default location".
	OutputDirPath string

	// InvalidOutputDirPathError is returned when an OutputDirPath value is
	// non-empty but whitespace-only.
	InvalidOutputDirPathError struct {
		Value OutputDirPath
	}

	// ModuleFilePath is a path to one of the module's well-known files
	// (lockfile, manifest, attachments record). The zero value ("") is valid
	// and means "use the conventional name in the module directory".
	ModuleFilePath string

	// InvalidModuleFilePathError is returned when a ModuleFilePath value is
	// non-empty but whitespace-only.
	InvalidModuleFilePathError struct {
		Value ModuleFilePath
	}

	// InvalidOutputConfigError is returned when an OutputConfig has invalid fields.
	// It wraps ErrInvalidOutputConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidOutputConfigError struct {
		FieldErrors []error
	}

	// InvalidPathsConfigError is returned when a PathsConfig has invalid fields.
	// It wraps ErrInvalidPathsConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidPathsConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// ResourceRoots lists the directories scanned for data format descriptors.
		ResourceRoots []ResourceRootPath `json:"resource_roots" mapstructure:"resource_roots"`
		// Output configures where generated metadata is written.
		Output OutputConfig `json:"output" mapstructure:"output"`
		// Paths overrides the module's well-known file locations.
		Paths PathsConfig `json:"paths" mapstructure:"paths"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// OutputConfig configures generated-output locations.
	OutputConfig struct {
		// MetaDir receives the dataformat.properties summary.
		MetaDir OutputDirPath `json:"meta_dir" mapstructure:"meta_dir"`
		// SchemaDir receives per-format schema documents.
		SchemaDir OutputDirPath `json:"schema_dir" mapstructure:"schema_dir"`
	}

	// PathsConfig overrides the module's well-known file locations.
	PathsConfig struct {
		// Lockfile is the dependency lockfile (default: hopper.deps.toml).
		Lockfile ModuleFilePath `json:"lockfile" mapstructure:"lockfile"`
		// Manifest is the module manifest (default: hoppermod.cue).
		Manifest ModuleFilePath `json:"manifest" mapstructure:"manifest"`
		// Attachments is the artifact attachments record (default: hopper.attach.json).
		Attachments ModuleFilePath `json:"attachments" mapstructure:"attachments"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// IsValid returns whether the OutputConfig has valid fields.
// It delegates to MetaDir.IsValid() and SchemaDir.IsValid().
func (c OutputConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.MetaDir.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.SchemaDir.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidOutputConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidOutputConfigError.
func (e *InvalidOutputConfigError) Error() string {
	return fmt.Sprintf("invalid output config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidOutputConfig for errors.Is() compatibility.
func (e *InvalidOutputConfigError) Unwrap() error { return ErrInvalidOutputConfig }

// IsValid returns whether the PathsConfig has valid fields.
// It delegates to each ModuleFilePath's IsValid().
func (c PathsConfig) IsValid() (bool, []error) {
	var errs []error
	for _, p := range []ModuleFilePath{c.Lockfile, c.Manifest, c.Attachments} {
		if valid, fieldErrs := p.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidPathsConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidPathsConfigError.
func (e *InvalidPathsConfigError) Error() string {
	return fmt.Sprintf("invalid paths config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidPathsConfig for errors.Is() compatibility.
func (e *InvalidPathsConfigError) Unwrap() error { return ErrInvalidPathsConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to each ResourceRoots entry's IsValid(), Output.IsValid(),
// Paths.IsValid(), and UI.IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	for _, root := range c.ResourceRoots {
		if valid, fieldErrs := root.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if valid, fieldErrs := c.Output.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Paths.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// String returns the string representation of the ResourceRootPath.
func (p ResourceRootPath) String() string { return string(p) }

// IsValid returns whether the ResourceRootPath is valid.
// A valid path must be non-empty and not whitespace-only.
func (p ResourceRootPath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidResourceRootPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidResourceRootPathError.
func (e *InvalidResourceRootPathError) Error() string {
	return fmt.Sprintf("invalid resource root path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidResourceRootPath for errors.Is() compatibility.
func (e *InvalidResourceRootPathError) Unwrap() error { return ErrInvalidResourceRootPath }

// String returns the string representation of the OutputDirPath.
func (p OutputDirPath) String() string { return string(p) }

// IsValid returns whether the OutputDirPath is valid.
// The zero value ("") is valid (means "use the built-in default").
// Non-zero values must not be whitespace-only.
func (p OutputDirPath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidOutputDirPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidOutputDirPathError.
func (e *InvalidOutputDirPathError) Error() string {
	return fmt.Sprintf("invalid output dir path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidOutputDirPath for errors.Is() compatibility.
func (e *InvalidOutputDirPathError) Unwrap() error { return ErrInvalidOutputDirPath }

// String returns the string representation of the ModuleFilePath.
func (p ModuleFilePath) String() string { return string(p) }

// IsValid returns whether the ModuleFilePath is valid.
// The zero value ("") is valid (means "use the conventional name").
// Non-zero values must not be whitespace-only.
func (p ModuleFilePath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidModuleFilePathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidModuleFilePathError.
func (e *InvalidModuleFilePathError) Error() string {
	return fmt.Sprintf("invalid module file path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidModuleFilePath for errors.Is() compatibility.
func (e *InvalidModuleFilePathError) Unwrap() error { return ErrInvalidModuleFilePath }

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ResourceRoots: []ResourceRootPath{DefaultResourceRoot},
		Output: OutputConfig{
			MetaDir:   DefaultMetaDir,
			SchemaDir: DefaultSchemaDir,
		},
		Paths: PathsConfig{
			Lockfile:    "", // Will use hopper.deps.toml in the module dir if empty
			Manifest:    "", // Will use hoppermod.cue in the module dir if empty
			Attachments: "", // Will use hopper.attach.json in the module dir if empty
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
