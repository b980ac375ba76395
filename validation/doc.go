// Package validation provides input validation utilities for halokit
// configuration and run parameters.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Struct tag validation is
// recommended for configuration structs.
//
// # Struct Tag Validation
//
//	type RunConfig struct {
//	    OutputDir string `validate:"required"`
//	    Partition string `validate:"oneof=static dynamic"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("output_dir", cfg.OutputDir)
//	err := v.Validate()
package validation
