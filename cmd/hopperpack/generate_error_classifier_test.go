// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"archive/zip"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"testing"

	"hopperpack/internal/issue"
	"hopperpack/pkg/container"
)

func TestClassifyGenerateError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		verbose     bool
		wantIssueID issue.Id
		wantInStyle []string
	}{
		{
			name:        "unsupported artifact maps to artifact issue",
			err:         fmt.Errorf("open artifact core.rar: %w", container.ErrUnsupportedArtifact),
			wantIssueID: issue.ArtifactOpenFailedId,
			wantInStyle: []string{"Error:", "unsupported artifact type"},
		},
		{
			name:        "corrupt zip maps to artifact issue via sentinel wrapping",
			err:         fmt.Errorf("open artifact core.jar: %w", zip.ErrFormat),
			wantIssueID: issue.ArtifactOpenFailedId,
			wantInStyle: []string{"not a valid zip file"},
		},
		{
			name:        "missing artifact file maps to artifact issue",
			err:         fmt.Errorf("open artifact libs/hopper-core.jar: %w", fs.ErrNotExist),
			wantIssueID: issue.ArtifactOpenFailedId,
			wantInStyle: []string{"file does not exist"},
		},
		{
			name:        "permission denied maps to write issue",
			err:         fmt.Errorf("failed to write schema file target/classes/csv.json: %w", os.ErrPermission),
			wantIssueID: issue.MetadataWriteFailedId,
			wantInStyle: []string{"permission denied"},
		},
		{
			name: "descriptor parse actionable error maps to descriptor issue",
			err: issue.NewErrorContext().
				WithOperation("parse descriptor").
				WithResource("src/main/resources/META-INF/services/org/hopper/dataformat/csv").
				WithSuggestion("Check the file is plain key=value properties, one per line").
				Wrap(fmt.Errorf("invalid escape sequence")).
				BuildError(),
			wantIssueID: issue.DescriptorParseErrorId,
			wantInStyle: []string{"Check the file is plain key=value properties"},
		},
		{
			name: "model load actionable error maps to artifact issue",
			err: issue.WrapWithContext(
				fmt.Errorf("model for csv: document is not a JSON object"),
				"load data format models", "hopper-core"),
			wantIssueID: issue.ArtifactOpenFailedId,
			wantInStyle: []string{"hopper-core", "model for csv"},
		},
		{
			name:        "unknown error falls back to write issue",
			err:         fmt.Errorf("unexpected boom"),
			wantIssueID: issue.MetadataWriteFailedId,
			wantInStyle: []string{"unexpected boom"},
		},
		{
			name: "verbose actionable error includes chain",
			err: issue.NewErrorContext().
				WithOperation("parse descriptor").
				Wrap(fmt.Errorf("invalid escape sequence")).
				BuildError(),
			verbose:     true,
			wantIssueID: issue.DescriptorParseErrorId,
			wantInStyle: []string{"Error chain:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gotIssueID, styled := classifyGenerateError(tt.err, tt.verbose)
			if gotIssueID != tt.wantIssueID {
				t.Fatalf("classifyGenerateError() issue ID = %v, want %v", gotIssueID, tt.wantIssueID)
			}

			for _, token := range tt.wantInStyle {
				if !strings.Contains(strings.ToLower(styled), strings.ToLower(token)) {
					t.Fatalf("styled message %q does not contain token %q", styled, token)
				}
			}
		})
	}
}
