package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestToneError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ToneError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryConfig, SeverityFatal, "configuration invalid"),
			expected: "config (fatal): configuration invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("file not found"), CategoryConfig, SeverityFatal, "failed to load config"),
			expected: "config (fatal): failed to load config: file not found",
		},
		{
			name:     "discovery error",
			err:      DiscoveryError(fmt.Errorf("permission denied"), "walking source tree"),
			expected: "discovery (fatal): walking source tree: permission denied",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := test.err.Error()
			if result != test.expected {
				t.Errorf("Error() = %q, want %q", result, test.expected)
			}
		})
	}
}

func TestToneError_WithContext(t *testing.T) {
	err := New(CategoryCompile, SeverityWarning, "render failed").
		WithContext("file", "views/index.tone").
		WithContext("type", "index")

	if err.Context == nil {
		t.Fatal("Context should not be nil")
	}

	if err.Context["file"] != "views/index.tone" {
		t.Errorf("Context[file] = %v, want views/index.tone", err.Context["file"])
	}

	if err.Context["type"] != "index" {
		t.Errorf("Context[type] = %v, want index", err.Context["type"])
	}
}

func TestIsCategory(t *testing.T) {
	configErr := New(CategoryConfig, SeverityFatal, "config error")
	watchErr := WatchError("watch already running")
	standardErr := fmt.Errorf("standard error")

	tests := []struct {
		name     string
		err      error
		category ErrorCategory
		expected bool
	}{
		{"config error matches config category", configErr, CategoryConfig, true},
		{"config error doesn't match watch category", configErr, CategoryWatch, false},
		{"watch error matches watch category", watchErr, CategoryWatch, true},
		{"standard error doesn't match any category", standardErr, CategoryConfig, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsCategory(test.err, test.category); got != test.expected {
				t.Errorf("IsCategory() = %v, want %v", got, test.expected)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	err := WrapError(cause, CategoryFileSystem, "delete failed")

	if !stdErrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}

	var te *ToneError
	if !stdErrors.As(err, &te) {
		t.Fatal("errors.As should extract *ToneError")
	}
	if te.Category != CategoryFileSystem {
		t.Errorf("Category = %v, want %v", te.Category, CategoryFileSystem)
	}
}

func TestGetCategory(t *testing.T) {
	if got := GetCategory(ValidationError("bad path")); got != CategoryValidation {
		t.Errorf("GetCategory() = %v, want %v", got, CategoryValidation)
	}
	if got := GetCategory(fmt.Errorf("plain")); got != CategoryInternal {
		t.Errorf("GetCategory() = %v, want %v", got, CategoryInternal)
	}
}
