package schema

// unset is the internal "no value declared" sentinel. It must never be
// serialized, rendered, or surfaced in a reconciled value tree; the default
// synthesizer normalizes it away at the boundary.
type unset struct{}

// Unset is the sentinel value returned by DeclaredDefault when a field has no
// default of any sort.
var Unset any = unset{}

// IsUnset reports whether v is the unset sentinel.
func IsUnset(v any) bool {
	_, ok := v.(unset)
	return ok
}

// DeclaredDefault returns the field's explicit default, the result of its
// default func (invoked once per call), or Unset.
func (f *Field) DeclaredDefault() any {
	if f.Default != nil {
		return f.Default
	}
	if f.DefaultFunc != nil {
		return f.DefaultFunc()
	}
	return Unset
}
