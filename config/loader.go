package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultEnvPrefix is the prefix of environment variables read by Load.
const DefaultEnvPrefix = "FUSION"

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Resolver finds the config and env files to load.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

var (
	configSearchPaths = []string{"./fusion.yml", "./config/fusion.yml", "./config.yml"}
	envSearchPaths    = []string{"./.env", "../.env"}
)

// ResolveFiles returns explicit paths if provided, otherwise the first
// existing file from the standard locations. Explicit paths that do not
// exist resolve to nothing.
func (r *Resolver) ResolveFiles(opts LoaderConfig) ResolvedFiles {
	return ResolvedFiles{
		ConfigFile: r.resolve(opts.ConfigFile, configSearchPaths),
		EnvFile:    r.resolve(opts.EnvFile, envSearchPaths),
	}
}

func (r *Resolver) resolve(explicit string, search []string) string {
	if explicit != "" {
		if r.FileSystem.Exists(explicit) {
			return explicit
		}
		return ""
	}
	for _, path := range search {
		if r.FileSystem.Exists(path) {
			return path
		}
	}
	return ""
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
	EnvPrefix  string
}

// Option is a functional option for Load.
type Option func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) Option {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithFile sets an explicit YAML config file path.
func WithFile(path string) Option {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) Option {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithEnvPrefix sets the environment variable prefix. The default is FUSION.
func WithEnvPrefix(prefix string) Option {
	return func(lc *LoaderConfig) { lc.EnvPrefix = strings.TrimSuffix(prefix, "_") }
}

// Load reads configuration into out, layering a YAML file, a .env file and
// the process environment, in increasing precedence. When section is not
// empty only that top-level key is decoded. Fields of out that no source
// sets keep their current values, so callers pre-fill defaults.
//
// Environment variables map to keys by stripping the prefix and lowering the
// name: FUSION_EXECUTION_WORKER_COUNT sets execution.worker_count.
func Load(section string, out interface{}, opts ...Option) error {
	lc := LoaderConfig{EnvPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}

	files := (&Resolver{FileSystem: lc.FileSystem}).ResolveFiles(lc)
	v := viper.New()

	if files.ConfigFile != "" {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", files.ConfigFile, err)
		}
	}

	if files.EnvFile != "" {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", files.EnvFile, err)
		}
	}
	bindEnvVars(v, lc.EnvPrefix)

	if section != "" {
		sub, err := subtree(v, section)
		if err != nil {
			return err
		}
		v = sub
	}
	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal config section %q: %w", section, err)
	}
	return nil
}

// subtree returns a viper holding only section. It goes through AllSettings
// so values from the file and the environment under the same section merge
// leaf by leaf.
func subtree(v *viper.Viper, section string) (*viper.Viper, error) {
	sub := viper.New()
	raw, ok := v.AllSettings()[strings.ToLower(section)]
	if !ok {
		return sub, nil
	}
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("config section %q is not a mapping", section)
	}
	if err := sub.MergeConfigMap(m); err != nil {
		return nil, fmt.Errorf("failed to read config section %q: %w", section, err)
	}
	return sub, nil
}

// bindEnvVars sets every prefixed environment variable on v under each of
// the nested key spellings it could stand for.
func bindEnvVars(v *viper.Viper, prefix string) {
	lead := ""
	if prefix != "" {
		lead = strings.ToUpper(prefix) + "_"
	}
	for _, env := range os.Environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(key, lead) || key == lead {
			continue
		}
		for _, variant := range generateEnvKeyVariants(strings.TrimPrefix(key, lead)) {
			v.Set(variant, value)
		}
	}
}

// generateEnvKeyVariants creates the key variants an environment variable
// may bind to.
//
//	EXECUTION_WORKER_COUNT -> [execution_worker_count, execution.worker.count,
//	                           execution.worker_count, execution_worker.count]
func generateEnvKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")

	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
		variants = append(variants, strings.Join(parts[:i], "_")+"."+strings.Join(parts[i:], "_"))
	}
	return removeDuplicates(variants)
}

// removeDuplicates removes duplicate strings from a slice.
func removeDuplicates(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))

	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}

	return result
}
