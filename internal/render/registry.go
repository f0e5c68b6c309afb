package render

import (
	"sync"

	"go.uber.org/zap"

	"github.com/sells-group/schemaform/internal/schema"
)

// Registry resolves a field's renderer: exact custom-type overrides are
// consulted before the kind defaults. Registration happens at startup; after
// that the registry is read-only and safe for concurrent requests.
type Registry struct {
	mu     sync.RWMutex
	custom map[string]Renderer
	kinds  map[schema.Kind]Renderer
}

// NewRegistry returns a registry populated with the built-in renderers.
func NewRegistry() *Registry {
	r := &Registry{
		custom: make(map[string]Renderer),
		kinds:  make(map[schema.Kind]Renderer),
	}
	r.kinds[schema.KindString] = StringRenderer{}
	r.kinds[schema.KindNumber] = NumberRenderer{}
	r.kinds[schema.KindDecimal] = DecimalRenderer{}
	r.kinds[schema.KindBoolean] = BooleanRenderer{}
	r.kinds[schema.KindDate] = DateRenderer{}
	r.kinds[schema.KindTime] = TimeRenderer{}
	r.kinds[schema.KindChoice] = ChoiceRenderer{}
	r.kinds[schema.KindList] = ListRenderer{}
	r.kinds[schema.KindRecord] = RecordRenderer{}
	return r
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry { return defaultRegistry }

// RegisterCustom registers a renderer for a named custom type, overriding
// any previous registration.
func (r *Registry) RegisterCustom(typeName string, renderer Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.custom[typeName] = renderer
}

// RegisterKind overrides the built-in renderer for a kind.
func (r *Registry) RegisterKind(kind schema.Kind, renderer Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[kind] = renderer
}

// For resolves the renderer for a type descriptor. Unresolvable custom types
// fall back to the string renderer; rendering never fails on lookup.
func (r *Registry) For(t *schema.Type) Renderer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t != nil && t.Custom != "" {
		if rend, ok := r.custom[t.Custom]; ok {
			return rend
		}
	}
	c := schema.Classify(t)
	if c.Kind == schema.KindCustom {
		zap.L().Debug("render: no renderer registered for custom type, using string fallback",
			zap.String("type", t.Custom),
		)
		return r.kinds[schema.KindString]
	}
	if rend, ok := r.kinds[c.Kind]; ok {
		return rend
	}
	return r.kinds[schema.KindString]
}
