// Package validation checks configuration and constructor arguments before
// any work begins.
//
// It supports struct tag validation (using the validator library) for config
// structs and a Checker that collects failures for plain constructor
// arguments. Both report failures as *errors.AppError with code
// INVALID_CONFIG and a "fields" detail.
//
// # Struct Tag Validation
//
//	type Config struct {
//	    WorkerCount int `mapstructure:"worker_count" validate:"gt=0"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	err := validation.New().
//		Positive("worker_count", workers).
//		Positive("morsel_capacity", n).
//		Err()
package validation
