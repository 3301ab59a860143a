package provider

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"whisper-transcribe/internal/app/api"
	"whisper-transcribe/internal/config"
)

// Factory builds an engine from configuration.
type Factory func(cfg *config.Config, logger *zap.Logger) (api.Engine, error)

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// Register makes an engine available by name. It is meant to be called from init().
func Register(name string, factory Factory) {
	if name == "" {
		panic("provider: engine name cannot be empty")
	}
	if factory == nil {
		panic("provider: factory cannot be nil")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("provider: engine '%s' already registered", name))
	}
	factories[name] = factory
}

// New builds the engine registered under name.
func New(name string, cfg *config.Config, logger *zap.Logger) (api.Engine, error) {
	mu.RLock()
	factory, exists := factories[name]
	mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("engine '%s' not registered (available: %v)", name, Names())
	}
	engine, err := factory(cfg, logger.Named(name))
	if err != nil {
		return nil, fmt.Errorf("create engine '%s': %w", name, err)
	}
	return engine, nil
}

// Names lists registered engine names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	delete(factories, name)
}
