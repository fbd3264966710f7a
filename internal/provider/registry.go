package provider

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrProviderExists   = errors.New("provider already registered")
	ErrProviderNotFound = errors.New("provider not found")
)

// Builder constructs a provider sized for the requested gene count.
type Builder func(genes int) (Provider, error)

var providerRegistry = struct {
	mu sync.RWMutex
	m  map[string]Builder
}{
	m: make(map[string]Builder),
}

func Register(name string, builder Builder) error {
	if name == "" {
		return errors.New("provider name is required")
	}
	if builder == nil {
		return errors.New("provider builder is required")
	}

	providerRegistry.mu.Lock()
	defer providerRegistry.mu.Unlock()

	if _, exists := providerRegistry.m[name]; exists {
		return fmt.Errorf("%w: %s", ErrProviderExists, name)
	}
	providerRegistry.m[name] = builder
	return nil
}

func New(name string, genes int) (Provider, error) {
	providerRegistry.mu.RLock()
	builder, ok := providerRegistry.m[name]
	providerRegistry.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, name)
	}
	return builder(genes)
}

// ResolveFactory returns a factory producing independent instances of the
// named provider, one per chromosome.
func ResolveFactory(name string, genes int) (Factory, error) {
	if _, err := New(name, genes); err != nil {
		return nil, err
	}
	return func() (Provider, error) {
		return New(name, genes)
	}, nil
}

func List() []string {
	providerRegistry.mu.RLock()
	defer providerRegistry.mu.RUnlock()

	names := make([]string, 0, len(providerRegistry.m))
	for name := range providerRegistry.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
