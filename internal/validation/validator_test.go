// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package validation

import (
	"context"
	"strings"
	"testing"

	"github.com/tomtom215/aspectpad/internal/config"
	"github.com/tomtom215/aspectpad/internal/storage"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

type processRequest struct {
	ImageURL string `query:"imageUrl" validate:"required,max=64"`
}

type downloadRequest struct {
	Filename string `url:"filename" validate:"required,artifact_name"`
}

func TestValidateStruct_Required(t *testing.T) {
	tests := []struct {
		name    string
		input   processRequest
		wantErr bool
	}{
		{"present", processRequest{ImageURL: "https://example.com/a.png"}, false},
		{"empty", processRequest{ImageURL: ""}, true},
		{"too long", processRequest{ImageURL: "https://example.com/" + strings.Repeat("a", 64)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.input)
			if (verr != nil) != tt.wantErr {
				t.Fatalf("ValidateStruct() = %v, wantErr %v", verr, tt.wantErr)
			}
			if verr != nil && !verr.HasField("imageUrl") {
				t.Errorf("expected failure on imageUrl, got %v", verr.Errors())
			}
		})
	}
}

func TestValidateStruct_Messages(t *testing.T) {
	verr := ValidateStruct(&processRequest{})
	if verr == nil {
		t.Fatal("expected validation error")
	}

	errs := verr.Errors()
	if len(errs) != 1 {
		t.Fatalf("len(Errors()) = %d, want 1", len(errs))
	}
	if errs[0].Field() != "imageUrl" {
		t.Errorf("Field() = %q, want imageUrl", errs[0].Field())
	}
	if errs[0].Tag() != "required" {
		t.Errorf("Tag() = %q, want required", errs[0].Tag())
	}
	if verr.Error() != "imageUrl is required" {
		t.Errorf("Error() = %q, want %q", verr.Error(), "imageUrl is required")
	}

	verr = ValidateStruct(&processRequest{ImageURL: strings.Repeat("x", 65)})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if got := verr.Errors()[0]; got.Param() != "64" || !strings.Contains(got.Error(), "at most 64 characters") {
		t.Errorf("unexpected max error: param=%q msg=%q", got.Param(), got.Error())
	}
}

func TestValidateStruct_ArtifactName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"jpg", "0123456789abcdef0123456789abcdef.jpg", true},
		{"png upper ext", "0123456789abcdef0123456789abcdef.PNG", true},
		{"uppercase hex", "0123456789ABCDEF0123456789abcdef.jpg", false},
		{"short", "abc.jpg", false},
		{"traversal", "../0123456789abcdef0123456789abcdef.jpg", false},
		{"no extension", "0123456789abcdef0123456789abcdef", false},
		{"double extension", "0123456789abcdef0123456789abcdef.tar.gz", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&downloadRequest{Filename: tt.input})
			if (verr == nil) != storage.ValidName(tt.input) {
				t.Errorf("artifact_name and storage.ValidName disagree on %q", tt.input)
			}
			if (verr == nil) != tt.valid {
				t.Errorf("ValidateStruct(%q) valid = %v, want %v (%v)", tt.input, verr == nil, tt.valid, verr)
			}
			if verr != nil && !verr.HasField("filename") {
				t.Errorf("expected failure on filename, got %v", verr.Errors())
			}
		})
	}
}

func TestValidateStruct_ArtifactNameAcceptsStoredNames(t *testing.T) {
	store, err := storage.New(config.StorageConfig{Dir: t.TempDir(), DefaultExtension: ".jpg"})
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}

	for _, ext := range []string{".png", ".webp", "", ".not-an-ext"} {
		name, err := store.Save(context.Background(), []byte("x"), ext)
		if err != nil {
			t.Fatalf("Save(%q) error = %v", ext, err)
		}
		if verr := ValidateStruct(&downloadRequest{Filename: name}); verr != nil {
			t.Errorf("stored name %q rejected: %v", name, verr)
		}
	}
}

func TestRequestValidationError_Empty(t *testing.T) {
	verr := &RequestValidationError{}
	if verr.Error() != "validation failed" {
		t.Errorf("Error() = %q, want validation failed", verr.Error())
	}
	if verr.HasField("imageUrl") {
		t.Error("HasField() on empty error should be false")
	}
}
