// SPDX-License-Identifier: MPL-2.0

package generate

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/magiconair/properties"

	"hopperpack/internal/deps"
	"hopperpack/internal/emit"
	"hopperpack/internal/scan"
	"hopperpack/pkg/hoppermod"
)

func testManifest() hoppermod.Manifest {
	return hoppermod.Manifest{
		Group:       "org.hopper",
		Artifact:    "hopper-dataformat-csv",
		Version:     "2.3.0",
		Name:        "Hopper :: Data Format :: CSV",
		Description: "CSV support for Hopper",
	}
}

func writeDescriptor(t *testing.T, base, root, name, class string) {
	t.Helper()

	dir := filepath.Join(base, root, filepath.FromSlash(scan.RegistryPath))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	content := "class=" + class + "\n"
	if class == "" {
		content = "kind=dataformat\n"
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write descriptor %s: %v", name, err)
	}
}

func writeCoreJar(t *testing.T, files map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "hopper-core-2.3.0.jar")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create jar: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create jar entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write jar entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close jar: %v", err)
	}
	return path
}

func modelText(name, javaType, label string) string {
	return `{
 "model": {
    "kind": "model",
    "name": "` + name + `",
    "label": "` + label + `",
    "javaType": "` + javaType + `"
  },
  "properties": {
    "delimiter": { "kind": "attribute", "type": "string", "defaultValue": "," }
  }
}`
}

func coreDeps(jar string) deps.Set {
	return deps.Set{Direct: []deps.Dependency{{
		Group:    deps.CoreGroup,
		Artifact: deps.CoreArtifact,
		Version:  "2.3.0",
		File:     jar,
	}}}
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeDescriptor(t, base, "src/main/resources", "csv", "org.hopper.dataformat.csv.CsvDataFormat")
	writeDescriptor(t, base, "src/main/resources", "json", "org.hopper.dataformat.json.JsonDataFormat")

	jar := writeCoreJar(t, map[string]string{
		"org/hopper/model/dataformat/csv.json":  modelText("csv", "org.hopper.model.dataformat.CsvDataFormat", "dataformat,csv"),
		"org/hopper/model/dataformat/json.json": modelText("json", "org.hopper.model.dataformat.JsonDataFormat", "dataformat,json"),
	})

	recorder := emit.NewFileRecorder(filepath.Join(base, "target"))
	res, err := Generate(Options{
		BaseDir:       base,
		ResourceRoots: []string{"src/main/resources"},
		MetaOutDir:    "target/generated/hopper/dataformats",
		SchemaOutDir:  "target/classes",
		Deps:          coreDeps(jar),
		Module:        testManifest(),
		Recorder:      recorder,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if res.Count != 2 {
		t.Errorf("Count = %d, want 2", res.Count)
	}
	if len(res.Names) != 2 || res.Names[0] != "csv" || res.Names[1] != "json" {
		t.Errorf("Names = %v, want [csv json]", res.Names)
	}
	if len(res.SchemasWritten) != 2 {
		t.Fatalf("SchemasWritten = %v, want two paths", res.SchemasWritten)
	}

	// Schema lands under the package path of the descriptor's class
	wantSchema := filepath.Join(base, "target", "classes", "org", "hopper", "dataformat", "csv", "csv.json")
	if res.SchemasWritten[0] != wantSchema {
		t.Errorf("SchemasWritten[0] = %q, want %q", res.SchemasWritten[0], wantSchema)
	}

	data, err := os.ReadFile(wantSchema)
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	var doc struct {
		DataFormat map[string]string          `json:"dataformat"`
		Properties map[string]json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("schema is not valid JSON: %v\n%s", err, data)
	}
	if doc.DataFormat["name"] != "csv" {
		t.Errorf("dataformat.name = %q", doc.DataFormat["name"])
	}
	if doc.DataFormat["description"] != "CSV support for Hopper" {
		t.Errorf("dataformat.description = %q, want the manifest description", doc.DataFormat["description"])
	}
	if doc.DataFormat["label"] != "dataformat,csv" {
		t.Errorf("dataformat.label = %q, want the model label", doc.DataFormat["label"])
	}
	if doc.DataFormat["javaType"] != "org.hopper.dataformat.csv.CsvDataFormat" {
		t.Errorf("dataformat.javaType = %q, want the descriptor class", doc.DataFormat["javaType"])
	}
	if doc.DataFormat["version"] != "2.3.0" {
		t.Errorf("dataformat.version = %q", doc.DataFormat["version"])
	}
	if _, ok := doc.Properties["delimiter"]; !ok {
		t.Errorf("properties = %v, want the model's delimiter entry", doc.Properties)
	}

	// Aggregate summary
	if res.SummaryPath == "" {
		t.Fatal("SummaryPath is empty")
	}
	p, err := properties.LoadFile(res.SummaryPath, properties.UTF8)
	if err != nil {
		t.Fatalf("parse summary: %v", err)
	}
	if got, _ := p.Get("dataFormats"); got != "csv json" {
		t.Errorf("summary dataFormats = %q, want %q", got, "csv json")
	}
	if got, _ := p.Get("projectName"); got != "Hopper :: Data Format :: CSV" {
		t.Errorf("summary projectName = %q", got)
	}

	// Build attachments
	if err := recorder.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	attach, err := os.ReadFile(recorder.Path())
	if err != nil {
		t.Fatalf("read attachments: %v", err)
	}
	var record struct {
		ResourceRoots []emit.ResourceRoot       `json:"resourceRoots"`
		Artifacts     []emit.ArtifactAttachment `json:"artifacts"`
	}
	if err := json.Unmarshal(attach, &record); err != nil {
		t.Fatalf("parse attachments: %v", err)
	}
	if len(record.ResourceRoots) != 1 || record.ResourceRoots[0].Dir != filepath.Join(base, "target/generated/hopper/dataformats") {
		t.Errorf("resourceRoots = %+v", record.ResourceRoots)
	}
	if len(record.Artifacts) != 1 || record.Artifacts[0].Classifier != "hopperDataFormat" || record.Artifacts[0].File != res.SummaryPath {
		t.Errorf("artifacts = %+v", record.Artifacts)
	}
}

func TestGenerate_RerunIsByteIdentical(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeDescriptor(t, base, "src/main/resources", "csv", "org.hopper.dataformat.csv.CsvDataFormat")
	jar := writeCoreJar(t, map[string]string{
		"org/hopper/model/dataformat/csv.json": modelText("csv", "org.hopper.model.dataformat.CsvDataFormat", "dataformat,csv"),
	})

	opts := Options{
		BaseDir:       base,
		ResourceRoots: []string{"src/main/resources"},
		MetaOutDir:    "target/generated/hopper/dataformats",
		SchemaOutDir:  "target/classes",
		Deps:          coreDeps(jar),
		Module:        testManifest(),
	}

	first, err := Generate(opts)
	if err != nil {
		t.Fatalf("first Generate() error = %v", err)
	}
	summaryBefore, err := os.ReadFile(first.SummaryPath)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	schemaBefore, err := os.ReadFile(first.SchemasWritten[0])
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}

	second, err := Generate(opts)
	if err != nil {
		t.Fatalf("second Generate() error = %v", err)
	}
	summaryAfter, err := os.ReadFile(second.SummaryPath)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	schemaAfter, err := os.ReadFile(second.SchemasWritten[0])
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}

	if !bytes.Equal(summaryBefore, summaryAfter) {
		t.Error("rerun changed the summary bytes")
	}
	if !bytes.Equal(schemaBefore, schemaAfter) {
		t.Error("rerun changed the schema bytes")
	}
}

func TestGenerate_CoreMissing(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeDescriptor(t, base, "src/main/resources", "csv", "org.hopper.dataformat.csv.CsvDataFormat")

	res, err := Generate(Options{
		BaseDir:       base,
		ResourceRoots: []string{"src/main/resources"},
		MetaOutDir:    "target/meta",
		SchemaOutDir:  "target/classes",
		Module:        testManifest(),
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// Discovery and the summary proceed without the core artifact
	if res.Count != 1 {
		t.Errorf("Count = %d, want 1", res.Count)
	}
	if len(res.SchemasWritten) != 0 {
		t.Errorf("SchemasWritten = %v, want none", res.SchemasWritten)
	}
	if res.SummaryPath == "" {
		t.Error("summary should be written even without the core artifact")
	}
}

func TestGenerate_NoDescriptors(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	res, err := Generate(Options{
		BaseDir:       base,
		ResourceRoots: []string{"src/main/resources"},
		MetaOutDir:    "target/meta",
		SchemaOutDir:  "target/classes",
		Module:        testManifest(),
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if res.Count != 0 || res.SummaryPath != "" {
		t.Errorf("Result = %+v, want empty run", res)
	}
	if _, err := os.Stat(emit.SummaryPath(filepath.Join(base, "target/meta"))); !os.IsNotExist(err) {
		t.Errorf("no summary file should exist, stat err = %v", err)
	}
}

func TestGenerate_ModelResourceMissing(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeDescriptor(t, base, "src/main/resources", "csv", "org.hopper.dataformat.csv.CsvDataFormat")
	writeDescriptor(t, base, "src/main/resources", "json", "org.hopper.dataformat.json.JsonDataFormat")

	// Only csv has a model in the core artifact
	jar := writeCoreJar(t, map[string]string{
		"org/hopper/model/dataformat/csv.json": modelText("csv", "org.hopper.model.dataformat.CsvDataFormat", ""),
	})

	res, err := Generate(Options{
		BaseDir:       base,
		ResourceRoots: []string{"src/main/resources"},
		MetaOutDir:    "target/meta",
		SchemaOutDir:  "target/classes",
		Deps:          coreDeps(jar),
		Module:        testManifest(),
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(res.SchemasWritten) != 1 || !strings.HasSuffix(res.SchemasWritten[0], "csv.json") {
		t.Errorf("SchemasWritten = %v, want only csv", res.SchemasWritten)
	}
	if len(res.Names) != 2 {
		t.Errorf("Names = %v, want both formats in the summary", res.Names)
	}
}

func TestGenerate_CorruptCore(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeDescriptor(t, base, "src/main/resources", "csv", "org.hopper.dataformat.csv.CsvDataFormat")

	jar := filepath.Join(t.TempDir(), "hopper-core-2.3.0.jar")
	if err := os.WriteFile(jar, []byte("not a zip archive"), 0o644); err != nil {
		t.Fatalf("write corrupt jar: %v", err)
	}

	_, err := Generate(Options{
		BaseDir:       base,
		ResourceRoots: []string{"src/main/resources"},
		MetaOutDir:    "target/meta",
		SchemaOutDir:  "target/classes",
		Deps:          coreDeps(jar),
		Module:        testManifest(),
	})
	if err == nil {
		t.Fatal("Generate() with a corrupt core artifact should fail")
	}
	if !strings.Contains(err.Error(), "hopper-core") {
		t.Errorf("error should name the core artifact: %v", err)
	}
}

func TestGenerate_ClasslessDescriptor(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeDescriptor(t, base, "src/main/resources", "mystery", "")

	// The corrupt artifact proves the container is never opened when no
	// descriptor carries a class.
	jar := filepath.Join(t.TempDir(), "hopper-core-2.3.0.jar")
	if err := os.WriteFile(jar, []byte("not a zip archive"), 0o644); err != nil {
		t.Fatalf("write corrupt jar: %v", err)
	}

	res, err := Generate(Options{
		BaseDir:       base,
		ResourceRoots: []string{"src/main/resources"},
		MetaOutDir:    "target/meta",
		SchemaOutDir:  "target/classes",
		Deps:          coreDeps(jar),
		Module:        testManifest(),
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if res.Count != 1 || len(res.SchemasWritten) != 0 {
		t.Errorf("Result = %+v, want the format counted but no schema", res)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != scan.CodeDescriptorMissingClass {
		t.Errorf("Diagnostics = %v, want a missing-class warning", res.Diagnostics)
	}
	if res.SummaryPath == "" {
		t.Error("summary should still be written")
	}
}
