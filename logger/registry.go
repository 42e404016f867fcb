package logger

import (
	"sync"
)

// registry is the global named-logger registry.
var registry = &loggerRegistry{
	loggers: make(map[string]*Logger),
}

type loggerRegistry struct {
	mu      sync.RWMutex
	global  *Logger
	loggers map[string]*Logger
}

// SetGlobalLogger sets the logger returned by Get for unregistered names.
func SetGlobalLogger(l *Logger) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.global = l
}

// GetGlobalLogger returns the global logger, creating a default one if needed.
func GetGlobalLogger() *Logger {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if registry.global == nil {
		registry.global = NewDefault("streamfusion")
	}
	return registry.global
}

// Register stores a named logger in the registry.
func Register(name string, l *Logger) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.loggers[name] = l
}

// Get retrieves a named logger. If the name is not registered it returns the
// global logger tagged with the requested component name.
func Get(name string) *Logger {
	registry.mu.RLock()
	l, ok := registry.loggers[name]
	registry.mu.RUnlock()
	if ok {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}
