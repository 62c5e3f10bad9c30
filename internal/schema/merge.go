// SPDX-License-Identifier: MPL-2.0

package schema

import "strings"

// ModelNamespace is the resource directory inside the core artifact that
// holds the per-format model documents.
const ModelNamespace = "org/hopper/model/dataformat"

// modelSection is the top-level object carrying the format's metadata
// rows in a model document.
const modelSection = "model"

// propertiesMarker splits a model document into metadata and property
// definitions. The two-space indent is part of the marker: the upstream
// model generator emits it exactly once at this indent.
const propertiesMarker = `  "properties": {`

// ModelResourcePath returns the container path of the model document for
// a data format name.
func ModelResourcePath(name string) string {
	return ModelNamespace + "/" + name + ".json"
}

// DataFormat carries the identity stamped into a generated schema
// document. Description, GroupID, ArtifactID and Version come from the
// module manifest; JavaType from the descriptor; Label from the model.
type DataFormat struct {
	Name        string
	Description string
	Label       string
	JavaType    string
	GroupID     string
	ArtifactID  string
	Version     string
}

// ModelRows parses the model section of a model document.
func ModelRows(text string) ([]Row, error) {
	return ParseSectionRows(text, modelSection)
}

// Label returns the value of the first row carrying a label key, or ""
// when no row does.
func Label(rows []Row) string {
	for _, row := range rows {
		if v, ok := row["label"]; ok {
			return v
		}
	}
	return ""
}

// ExtractProperties returns the text following the first occurrence of
// the properties marker, along with how many occurrences the document
// contains. Without a marker the fragment is empty.
func ExtractProperties(text string) (fragment string, occurrences int) {
	occurrences = strings.Count(text, propertiesMarker)
	if occurrences == 0 {
		return "", 0
	}
	idx := strings.Index(text, propertiesMarker)
	return text[idx+len(propertiesMarker):], occurrences
}

// Document assembles the schema document: the dataformat identity block
// followed by the properties fragment. Field values are inserted
// verbatim; the upstream model text is trusted as-is. A non-empty
// fragment carries its own closing braces from the source model, an
// empty one makes the assembler close the document itself.
func (df DataFormat) Document(fragment string) string {
	var b strings.Builder
	b.WriteString("{")
	b.WriteString("\n \"dataformat\": {")
	b.WriteString("\n    \"name\": \"" + df.Name + "\",")
	b.WriteString("\n    \"description\": \"" + df.Description + "\",")
	b.WriteString("\n    \"label\": \"" + df.Label + "\",")
	b.WriteString("\n    \"javaType\": \"" + df.JavaType + "\",")
	b.WriteString("\n    \"groupId\": \"" + df.GroupID + "\",")
	b.WriteString("\n    \"artifactId\": \"" + df.ArtifactID + "\",")
	b.WriteString("\n    \"version\": \"" + df.Version + "\"")
	b.WriteString("\n  },")
	b.WriteString("\n  \"properties\": {")
	if fragment != "" {
		b.WriteString(fragment)
	} else {
		b.WriteString("\n  }\n}")
	}
	return b.String()
}
