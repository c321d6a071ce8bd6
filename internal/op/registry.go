package op

import (
	"fmt"
	"sort"
	"sync"

	"k8s.io/klog/v2"
)

// Factory constructs a new, unconfigured Property.
type Factory func() Property

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register adds a property factory under its type string. Concrete operator
// packages call this from init. Registering a name twice keeps the latest
// factory and logs a warning.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, dup := registry[name]; dup {
		klog.Warningf("operator %q registered twice, keeping the latest factory", name)
	}
	registry[name] = f
	klog.V(2).Infof("registered operator %q", name)
}

// Create resolves a type name to a newly constructed, unconfigured Property.
// This is the entry point the symbolic-graph layer uses to instantiate
// operators by string name during graph deserialization.
func Create(name string) (Property, error) {
	registryMu.RLock()
	f, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, name)
	}
	return f(), nil
}

// Types returns the sorted names of all registered operators.
func Types() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
