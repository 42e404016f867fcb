// Package config loads streamfusion configuration with Viper.
//
// Values come from an optional YAML file, an optional .env file loaded with
// godotenv, and the process environment, in increasing precedence. Missing
// files are not errors; malformed ones are.
//
// # Usage
//
//	cfg := execution.DefaultConfig()
//	err := config.Load("execution", &cfg, config.WithFile("fusion.yml"))
//
// Environment variables use the FUSION_ prefix with underscore-separated
// paths, e.g. FUSION_EXECUTION_WORKER_COUNT.
package config
