// Package logger provides structured logging for streamfusion using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields. The execution engine
// tags every line of a run with its execution ID.
//
// # Configuration
//
//	logger:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("execution")
//	log.Info("execution completed", logger.Fields(logger.FieldUnits, 16))
package logger
