package schema

import "go.uber.org/zap"

// Classification is the classifier's answer for one type descriptor: the
// effective kind with one level of optionality unwrapped.
type Classification struct {
	Kind     Kind
	Optional bool
}

// Classify resolves a type descriptor to its effective kind. Hidden wins over
// everything else, including optionality. A nil or unresolvable descriptor
// classifies as a string field; this is a documented fallback, not an error.
func Classify(t *Type) Classification {
	if t == nil {
		zap.L().Debug("schema: classifying nil type as string")
		return Classification{Kind: KindString}
	}
	if t.Kind == KindHidden {
		return Classification{Kind: KindHidden, Optional: t.Optional}
	}
	return Classification{Kind: t.Kind, Optional: t.Optional}
}

// ClassifyField classifies a field, folding in the field-level hidden flag.
func ClassifyField(f *Field) Classification {
	c := Classify(f.Type)
	if f.Hidden {
		c.Kind = KindHidden
	}
	return c
}

// IsScalar reports whether the kind renders as a single input element.
func (c Classification) IsScalar() bool {
	switch c.Kind {
	case KindString, KindNumber, KindDecimal, KindBoolean, KindDate, KindTime:
		return true
	}
	return false
}
