package validation

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/kbukum/halokit/errors"
)

func TestValidatorCollectsErrors(t *testing.T) {
	v := New().
		Required("output_dir", "").
		Min("workers", 0, 1).
		OneOf("partition", "round-robin", []string{"static", "dynamic"})

	if !v.HasErrors() {
		t.Fatal("expected errors")
	}
	if got := len(v.Errors()); got != 3 {
		t.Fatalf("expected 3 errors, got %d", got)
	}

	err := v.Validate()
	if err == nil {
		t.Fatal("expected AppError")
	}
	if err.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected validation code, got %v", err.Code)
	}
	for _, field := range []string{"output_dir", "workers", "partition"} {
		if !strings.Contains(err.Message, field) {
			t.Errorf("message missing field %s: %s", field, err.Message)
		}
	}
}

func TestValidatorNoErrors(t *testing.T) {
	v := New().
		Required("output_dir", "analysis").
		Min("workers", 4, 1).
		OneOf("partition", "dynamic", []string{"static", "dynamic"}).
		Range("level", 2, 0, 5).
		Max("retries", 3, 10).
		Custom(true, "unused", "never added")

	if v.HasErrors() {
		t.Fatalf("unexpected errors: %v", v.Errors())
	}
	if err := v.Validate(); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestUUIDChecks(t *testing.T) {
	valid := uuid.NewString()

	tests := []struct {
		name    string
		build   func() *Validator
		wantErr bool
	}{
		{"required valid", func() *Validator { return New().RequiredUUID("run_id", valid) }, false},
		{"required empty", func() *Validator { return New().RequiredUUID("run_id", "") }, true},
		{"required malformed", func() *Validator { return New().RequiredUUID("run_id", "not-a-uuid") }, true},
		{"required nil", func() *Validator { return New().RequiredUUID("run_id", uuid.Nil.String()) }, true},
		{"optional empty", func() *Validator { return New().OptionalUUID("run_id", "") }, false},
		{"optional malformed", func() *Validator { return New().OptionalUUID("run_id", "nope") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.build().HasErrors(); got != tt.wantErr {
				t.Errorf("HasErrors() = %v, want %v", got, tt.wantErr)
			}
		})
	}
}

func TestValidateUUID(t *testing.T) {
	valid := uuid.NewString()
	id, err := ValidateUUID("run_id", valid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.String() != valid {
		t.Errorf("expected %s, got %s", valid, id)
	}

	if _, err := ValidateUUID("run_id", ""); err == nil {
		t.Error("expected error for empty value")
	}
	if _, err := ValidateUUID("run_id", "junk"); err == nil {
		t.Error("expected error for malformed value")
	}
}

type tagged struct {
	OutputDir string `json:"output_dir" validate:"required"`
	Partition string `json:"partition" validate:"omitempty,oneof=static dynamic"`
	Workers   int    `json:"workers" validate:"gte=-1,ne=0"`
}

func TestValidateStructTags(t *testing.T) {
	tests := []struct {
		name    string
		in      tagged
		wantErr bool
		field   string
	}{
		{"valid", tagged{OutputDir: "analysis", Partition: "static", Workers: 4}, false, ""},
		{"valid dynamic maximal", tagged{OutputDir: "analysis", Partition: "dynamic", Workers: -1}, false, ""},
		{"missing output dir", tagged{Partition: "static", Workers: 1}, true, "output_dir"},
		{"bad partition", tagged{OutputDir: "analysis", Partition: "chunked", Workers: 1}, true, "partition"},
		{"zero workers", tagged{OutputDir: "analysis", Workers: 0}, true, "workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q missing field %s", err.Error(), tt.field)
			}
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"OutputDir", "output_dir"},
		{"Workers", "workers"},
		{"PipelineFile", "pipeline_file"},
		{"already_snake", "already_snake"},
	}
	for _, tt := range tests {
		if got := toSnakeCase(tt.in); got != tt.want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
