package module

import "sync"

// ports registered by name while the host composes modules
var registry = struct {
	sync.RWMutex
	byName map[string]any
}{byName: map[string]any{}}

// Register records the port set of the named module, replacing any earlier one
func Register(name string, ports any) {
	registry.Lock()
	registry.byName[name] = ports
	registry.Unlock()
}

// PortsAs looks up the named module's ports as T
func PortsAs[T any](name string) (T, bool) {
	registry.RLock()
	v, ok := registry.byName[name]
	registry.RUnlock()
	out, ok2 := v.(T)
	return out, ok && ok2
}

// Reset empties the registry
func Reset() {
	registry.Lock()
	registry.byName = map[string]any{}
	registry.Unlock()
}
