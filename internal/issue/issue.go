// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ManifestNotFoundId Id = iota + 1
	ManifestParseErrorId
	DescriptorParseErrorId
	LockfileParseErrorId
	CoreArtifactMissingId
	ArtifactOpenFailedId
	MetadataWriteFailedId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // links into the hopperpack docs, if any
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# No module manifest found!

We searched for a hoppermod.cue manifest but couldn't find one. The manifest
provides the group, artifact and version stamped into generated metadata.

## Things you can try:
- Create a manifest in your module directory:
~~~
$ hopperpack init
~~~

- Or point at an existing one:
~~~
$ hopperpack generate --manifest path/to/hoppermod.cue
~~~

## Example hoppermod.cue:
~~~cue
group: "org.hopper"
artifact: "hopper-dataformat-csv"
version: "4.2.0"
description: "CSV data format support"
~~~`,
	}

	manifestParseErrorIssue = &Issue{
		id: ManifestParseErrorId,
		mdMsg: `
# Failed to parse module manifest!

Your hoppermod.cue contains syntax errors or invalid fields.

## Common issues:
- Invalid CUE syntax (missing quotes, braces, etc.)
- Missing required fields (group, artifact, version)
- Identifiers starting with a dot or containing spaces

## Things you can try:
- Check the error message above for the specific field
- Validate the file with the cue command-line tool
- Run with verbose mode for more details:
~~~
$ hopperpack --verbose generate
~~~`,
	}

	descriptorParseErrorIssue = &Issue{
		id: DescriptorParseErrorId,
		mdMsg: `
# Failed to read a data format descriptor!

A descriptor under META-INF/services/org/hopper/dataformat/ could not be
read or parsed as a properties file.

## Descriptor format:
~~~properties
# <resource root>/META-INF/services/org/hopper/dataformat/csv
class=org.hopper.dataformat.csv.CsvDataFormat
~~~

## Things you can try:
- Check the file is plain key=value properties, one per line
- Check file permissions in your resource roots
- Remove stray files from the registry directory`,
	}

	lockfileParseErrorIssue = &Issue{
		id: LockfileParseErrorId,
		mdMsg: `
# Failed to parse the dependency lockfile!

hopper.deps.toml exists but could not be decoded.

## Expected shape:
~~~toml
[[direct]]
group = "org.hopper"
artifact = "hopper-core"
version = "4.2.0"
file = "libs/hopper-core-4.2.0.jar"

[[transitive]]
group = "org.example"
artifact = "example-util"
version = "1.0.0"
file = "libs/example-util-1.0.0.jar"
~~~

## Things you can try:
- Check the TOML syntax (quoting, table headers)
- Re-run your dependency resolution to regenerate the lockfile
- Delete the lockfile to generate without schema enrichment`,
	}

	coreArtifactMissingIssue = &Issue{
		id: CoreArtifactMissingId,
		mdMsg: `
# Core artifact not available!

Schema documents could not be generated because the org.hopper:hopper-core
artifact was not found among the module's dependencies. Data format names
are still collected into dataformat.properties; only the per-format schema
files are skipped.

## Things you can try:
- Add hopper-core to the module's dependencies
- Check hopper.deps.toml lists a 'file' path for hopper-core
- Check the artifact file referenced by the lockfile exists on disk`,
	}

	artifactOpenFailedIssue = &Issue{
		id: ArtifactOpenFailedId,
		mdMsg: `
# Failed to open the core artifact!

The hopper-core artifact was located but could not be opened as a resource
container.

## Supported artifact forms:
- **.jar / .zip**: zip-based archives
- **.tar / .tar.gz / .tgz**: tar archives
- **directory**: unpacked build output

## Things you can try:
- Check the file is a complete, uncorrupted archive
- Re-download or rebuild the artifact
- Check the 'file' path in hopper.deps.toml points at the right artifact`,
	}

	metadataWriteFailedIssue = &Issue{
		id: MetadataWriteFailedId,
		mdMsg: `
# Failed to write generated metadata!

A schema document or the dataformat.properties summary could not be written.

## Things you can try:
- Check you have write permission on the output directories
- Check the disk isn't full
- Override the output locations:
~~~
$ hopperpack generate --meta-dir build/meta --schema-dir build/classes
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the hopperpack configuration file.

## Configuration file locations:
- Linux: ~/.config/hopperpack/config.cue
- macOS: ~/Library/Application Support/hopperpack/config.cue
- Windows: %APPDATA%\hopperpack\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ hopperpack config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults:
~~~
$ rm ~/.config/hopperpack/config.cue
~~~

## Example configuration:
~~~cue
resource_roots: ["src/main/resources"]

output: {
  meta_dir: "target/generated/hopper/dataformats"
  schema_dir: "target/classes"
}

ui: {
  color_scheme: "auto"
  verbose: false
}
~~~`,
	}

	issues = map[Id]*Issue{
		manifestNotFoundIssue.Id():     manifestNotFoundIssue,
		manifestParseErrorIssue.Id():   manifestParseErrorIssue,
		descriptorParseErrorIssue.Id(): descriptorParseErrorIssue,
		lockfileParseErrorIssue.Id():   lockfileParseErrorIssue,
		coreArtifactMissingIssue.Id():  coreArtifactMissingIssue,
		artifactOpenFailedIssue.Id():   artifactOpenFailedIssue,
		metadataWriteFailedIssue.Id():  metadataWriteFailedIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
