package form

import (
	"github.com/sells-group/schemaform/internal/path"
	"github.com/sells-group/schemaform/internal/schema"
)

// WireIndex maps every addressable dot/bracket notation in the current
// value tree to its generated wire name. List entries come from the live
// values, so the index reflects whatever the last reconcile produced.
func (f *Form) WireIndex() map[string]string {
	out := map[string]string{}
	for i := range f.Schema.Fields {
		fld := &f.Schema.Fields[i]
		f.indexField(out, path.Path{path.Name(fld.Name)}, fld.Type, f.values[fld.Name])
	}
	return out
}

func (f *Form) indexField(out map[string]string, p path.Path, t *schema.Type, value any) {
	out[p.Notation()] = p.WireName(f.Name)

	switch schema.Classify(t).Kind {
	case schema.KindList:
		items, _ := value.([]any)
		for i, item := range items {
			f.indexField(out, p.Child(path.NumIdx(i)), t.Elem, item)
		}
	case schema.KindRecord:
		m, _ := value.(map[string]any)
		for i := range t.Fields {
			sub := &t.Fields[i]
			f.indexField(out, p.Child(path.Name(sub.Name)), sub.Type, m[sub.Name])
		}
	}
}
