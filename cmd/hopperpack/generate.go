// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"hopperpack/internal/config"
	"hopperpack/internal/deps"
	"hopperpack/internal/emit"
	"hopperpack/internal/generate"
	"hopperpack/internal/issue"
	"hopperpack/internal/scan"
	"hopperpack/pkg/container"
	"hopperpack/pkg/hoppermod"

	"github.com/spf13/cobra"
)

var (
	generateResourceRoots []string
	generateMetaDir       string
	generateSchemaDir     string
	generateDepsFile      string
	generateManifestFile  string

	// generateCmd runs the metadata pipeline for one module
	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate data format schema files and the summary properties",
		Long: `Generate build metadata for the data formats a module declares.

Descriptors under META-INF/services/org/hopper/dataformat/ in each
resource root are collected into a dataformat.properties summary, and
the model documents shipped inside the hopper-core artifact are merged
into one schema document per data format.`,
		RunE: runGenerate,
	}
)

func init() {
	generateCmd.Flags().StringArrayVar(&generateResourceRoots, "resource-root", nil, "resource root to scan, repeatable (default from config)")
	generateCmd.Flags().StringVar(&generateMetaDir, "meta-dir", "", "output directory for the dataformat.properties summary")
	generateCmd.Flags().StringVar(&generateSchemaDir, "schema-dir", "", "output directory for generated schema documents")
	generateCmd.Flags().StringVar(&generateDepsFile, "deps", "", "dependency lockfile (default: hopper.deps.toml in the module directory)")
	generateCmd.Flags().StringVar(&generateManifestFile, "manifest", "", "module manifest (default: hoppermod.cue in the module directory)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := activeConfig()

	manifest, err := loadManifest(cfg)
	if err != nil {
		return err
	}

	depSet, err := loadLockfile(cfg)
	if err != nil {
		return err
	}

	recorder := newRecorder(cfg)
	res, err := generate.Generate(generate.Options{
		BaseDir:       baseDir,
		ResourceRoots: resourceRoots(cfg, generateResourceRoots),
		MetaOutDir:    outputDir(generateMetaDir, cfg.Output.MetaDir, config.DefaultMetaDir),
		SchemaOutDir:  outputDir(generateSchemaDir, cfg.Output.SchemaDir, config.DefaultSchemaDir),
		Deps:          depSet,
		Module:        *manifest,
		Recorder:      recorder,
	})
	printDiagnostics(res.Diagnostics)
	if err != nil {
		issueID, styledMsg := classifyGenerateError(err, verbose)
		renderIssue(issueID)
		fmt.Fprint(os.Stderr, styledMsg)
		return &ExitError{Code: 1, Err: err}
	}

	if res.Count == 0 {
		fmt.Println(SubtitleStyle.Render("No data format descriptors found under " + scan.RegistryPath))
		return nil
	}

	if _, ok := depSet.FindCore(); !ok {
		fmt.Fprintf(os.Stderr, "%s %s:%s is not among the resolved dependencies; schema generation was skipped\n",
			WarningStyle.Render("Warning:"), deps.CoreGroup, deps.CoreArtifact)
		if verbose {
			renderIssue(issue.CoreArtifactMissingId)
		}
	}

	fmt.Printf("%s Generated metadata for %d data format(s): %s\n",
		SuccessStyle.Render("✓"), res.Count, strings.Join(res.Names, " "))
	if verbose {
		for _, path := range res.SchemasWritten {
			fmt.Println(VerboseStyle.Render("  schema  " + path))
		}
		fmt.Println(VerboseStyle.Render("  summary " + res.SummaryPath))
	}

	if err := recorder.Flush(); err != nil {
		renderIssue(issue.MetadataWriteFailedId)
		fmt.Fprintf(os.Stderr, "\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
		return &ExitError{Code: 1, Err: err}
	}
	slog.Debug("recorded build attachments", "path", recorder.Path())

	return nil
}

// loadManifest resolves the module manifest from the --manifest flag, the
// configured path, or hoppermod.cue in the module directory.
func loadManifest(cfg *config.Config) (*hoppermod.Manifest, error) {
	path := generateManifestFile
	if path == "" {
		path = string(cfg.Paths.Manifest)
	}

	var (
		m   *hoppermod.Manifest
		err error
	)
	if path != "" {
		m, err = hoppermod.Parse(resolvePath(path))
	} else {
		m, err = hoppermod.Load(baseDir)
	}
	if err == nil {
		return m, nil
	}

	if errors.Is(err, hoppermod.ErrManifestNotFound) || errors.Is(err, fs.ErrNotExist) {
		renderIssue(issue.ManifestNotFoundId)
	} else {
		renderIssue(issue.ManifestParseErrorId)
	}
	fmt.Fprintf(os.Stderr, "\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
	return nil, &ExitError{Code: 1, Err: err}
}

// loadLockfile resolves the dependency lockfile from the --deps flag, the
// configured path, or hopper.deps.toml in the module directory. A missing
// lockfile is not an error: generation proceeds without schema enrichment.
func loadLockfile(cfg *config.Config) (deps.Set, error) {
	path := generateDepsFile
	if path == "" {
		path = string(cfg.Paths.Lockfile)
	}
	if path == "" {
		path = deps.DefaultLockfileName
	}
	path = resolvePath(path)

	set, err := deps.LoadLockfile(path)
	if err == nil {
		return *set, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("no dependency lockfile, schema generation will be skipped", "path", path)
		return deps.Set{}, nil
	}

	renderIssue(issue.LockfileParseErrorId)
	fmt.Fprintf(os.Stderr, "\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
	return deps.Set{}, &ExitError{Code: 1, Err: err}
}

// newRecorder builds the attachment recorder, honoring a configured
// attachments path.
func newRecorder(cfg *config.Config) *emit.FileRecorder {
	if cfg.Paths.Attachments != "" {
		return emit.NewFileRecorderAt(resolvePath(string(cfg.Paths.Attachments)))
	}
	return emit.NewFileRecorder(baseDir)
}

// resourceRoots returns the roots to scan: the --resource-root flags when
// given, the configured roots otherwise.
func resourceRoots(cfg *config.Config, flagRoots []string) []string {
	if len(flagRoots) > 0 {
		return flagRoots
	}
	roots := make([]string, 0, len(cfg.ResourceRoots))
	for _, root := range cfg.ResourceRoots {
		roots = append(roots, string(root))
	}
	return roots
}

// outputDir picks the first non-empty of flag, configured, and default value.
func outputDir(flagValue string, configured, fallback config.OutputDirPath) string {
	if flagValue != "" {
		return flagValue
	}
	if configured != "" {
		return string(configured)
	}
	return string(fallback)
}

// resolvePath resolves a path against the module directory when relative.
func resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// printDiagnostics reports scan diagnostics without failing the run.
func printDiagnostics(diags []scan.Diagnostic) {
	for _, d := range diags {
		prefix := WarningStyle.Render("Warning:")
		if d.Severity == scan.SeverityError {
			prefix = ErrorStyle.Render("Error:")
		}
		fmt.Fprintf(os.Stderr, "%s %s [%s]\n", prefix, d.Message, d.Code)
		if verbose && d.Path != "" {
			fmt.Fprintln(os.Stderr, VerboseStyle.Render("  at "+d.Path))
		}
	}
}

// classifyGenerateError maps pipeline failures to issue catalog IDs and
// returns a styled message for CLI rendering. It preserves actionable error details.
func classifyGenerateError(err error, verboseMode bool) (issueID issue.Id, styledMsg string) {
	issueID = issue.MetadataWriteFailedId

	switch {
	case errors.Is(err, container.ErrUnsupportedArtifact),
		errors.Is(err, zip.ErrFormat),
		errors.Is(err, gzip.ErrHeader),
		errors.Is(err, fs.ErrNotExist):
		issueID = issue.ArtifactOpenFailedId
	case errors.Is(err, os.ErrPermission):
		issueID = issue.MetadataWriteFailedId
	default:
		var ae *issue.ActionableError
		if errors.As(err, &ae) {
			switch ae.Operation {
			case "parse descriptor":
				issueID = issue.DescriptorParseErrorId
			case "load data format models":
				issueID = issue.ArtifactOpenFailedId
			}
		}
	}

	return issueID, fmt.Sprintf("\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verboseMode))
}
