// SPDX-License-Identifier: MPL-2.0

package scan

import (
	"errors"
	"testing"
)

func TestSeverity_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		severity Severity
		want     bool
		wantErr  bool
	}{
		{SeverityWarning, true, false},
		{SeverityError, true, false},
		{"", false, true},
		{"invalid", false, true},
		{"WARNING", false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.severity.IsValid()
			if isValid != tt.want {
				t.Errorf("Severity(%q).IsValid() = %v, want %v", tt.severity, isValid, tt.want)
			}
			if tt.wantErr {
				if len(errs) == 0 {
					t.Fatalf("Severity(%q).IsValid() returned no errors, want error", tt.severity)
				}
				if !errors.Is(errs[0], ErrInvalidSeverity) {
					t.Errorf("error should wrap ErrInvalidSeverity, got: %v", errs[0])
				}
			} else if len(errs) > 0 {
				t.Errorf("Severity(%q).IsValid() returned unexpected errors: %v", tt.severity, errs)
			}
		})
	}
}

func TestDiagnosticCode_IsValid(t *testing.T) {
	t.Parallel()

	validCodes := []DiagnosticCode{
		CodeDescriptorMissingClass, CodeDuplicateDescriptor, CodeWindowsReservedName,
	}

	for _, code := range validCodes {
		t.Run(string(code), func(t *testing.T) {
			t.Parallel()
			isValid, errs := code.IsValid()
			if !isValid {
				t.Errorf("DiagnosticCode(%q).IsValid() = false, want true", code)
			}
			if len(errs) > 0 {
				t.Errorf("DiagnosticCode(%q).IsValid() returned unexpected errors: %v", code, errs)
			}
		})
	}

	invalidCodes := []DiagnosticCode{"", "invalid", "DESCRIPTOR_MISSING_CLASS"}
	for _, code := range invalidCodes {
		t.Run("invalid_"+string(code), func(t *testing.T) {
			t.Parallel()
			isValid, errs := code.IsValid()
			if isValid {
				t.Errorf("DiagnosticCode(%q).IsValid() = true, want false", code)
			}
			if len(errs) == 0 {
				t.Fatalf("DiagnosticCode(%q).IsValid() returned no errors, want error", code)
			}
			if !errors.Is(errs[0], ErrInvalidDiagnosticCode) {
				t.Errorf("error should wrap ErrInvalidDiagnosticCode, got: %v", errs[0])
			}
		})
	}
}

func TestNewDiagnostic(t *testing.T) {
	t.Parallel()

	d := NewDiagnostic(SeverityWarning, CodeDescriptorMissingClass, "test message")

	if d.Severity != SeverityWarning {
		t.Errorf("Severity = %q, want %q", d.Severity, SeverityWarning)
	}
	if d.Code != CodeDescriptorMissingClass {
		t.Errorf("Code = %q, want %q", d.Code, CodeDescriptorMissingClass)
	}
	if d.Message != "test message" {
		t.Errorf("Message = %q, want %q", d.Message, "test message")
	}
	if d.Path != "" {
		t.Errorf("Path = %q, want empty string", d.Path)
	}
	if d.Cause != nil {
		t.Errorf("Cause = %v, want nil", d.Cause)
	}
}

func TestNewDiagnosticWithPath(t *testing.T) {
	t.Parallel()

	d := NewDiagnosticWithPath(SeverityWarning, CodeDuplicateDescriptor, "already declared", "/some/path")

	if d.Severity != SeverityWarning {
		t.Errorf("Severity = %q, want %q", d.Severity, SeverityWarning)
	}
	if d.Code != CodeDuplicateDescriptor {
		t.Errorf("Code = %q, want %q", d.Code, CodeDuplicateDescriptor)
	}
	if d.Message != "already declared" {
		t.Errorf("Message = %q, want %q", d.Message, "already declared")
	}
	if d.Path != "/some/path" {
		t.Errorf("Path = %q, want %q", d.Path, "/some/path")
	}
	if d.Cause != nil {
		t.Errorf("Cause = %v, want nil", d.Cause)
	}
}

func TestNewDiagnosticWithCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("underlying error")
	d := NewDiagnosticWithCause(SeverityError, CodeDescriptorMissingClass, "parse failed", "/descriptor/path", cause)

	if d.Severity != SeverityError {
		t.Errorf("Severity = %q, want %q", d.Severity, SeverityError)
	}
	if d.Code != CodeDescriptorMissingClass {
		t.Errorf("Code = %q, want %q", d.Code, CodeDescriptorMissingClass)
	}
	if d.Message != "parse failed" {
		t.Errorf("Message = %q, want %q", d.Message, "parse failed")
	}
	if d.Path != "/descriptor/path" {
		t.Errorf("Path = %q, want %q", d.Path, "/descriptor/path")
	}
	if !errors.Is(d.Cause, cause) {
		t.Errorf("Cause = %v, want %v", d.Cause, cause)
	}
}

func TestDiagnosticCode_String(t *testing.T) {
	t.Parallel()

	if got := CodeDuplicateDescriptor.String(); got != "duplicate_descriptor" {
		t.Errorf("CodeDuplicateDescriptor.String() = %q, want %q", got, "duplicate_descriptor")
	}
	if got := DiagnosticCode("").String(); got != "" {
		t.Errorf("DiagnosticCode(\"\").String() = %q, want %q", got, "")
	}
}
