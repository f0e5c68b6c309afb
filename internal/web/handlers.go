package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/sells-group/schemaform/internal/compare"
	"github.com/sells-group/schemaform/internal/form"
	"github.com/sells-group/schemaform/internal/render"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// lookupForm resolves the {name} route parameter, writing an error fragment
// on miss.
func (s *Server) lookupForm(w http.ResponseWriter, r *http.Request) *form.Form {
	name := chi.URLParam(r, "name")
	f, ok := s.forms[name]
	if !ok {
		writeFragment(w, http.StatusNotFound, render.ErrorFragment("Unknown form: "+name))
		return nil
	}
	return f
}

// lookupPair resolves the {pair} route parameter.
func (s *Server) lookupPair(w http.ResponseWriter, r *http.Request) *compare.Pair {
	name := chi.URLParam(r, "pair")
	p, ok := s.pairs[name]
	if !ok {
		writeFragment(w, http.StatusNotFound, render.ErrorFragment("Unknown comparison: "+name))
		return nil
	}
	return p
}

func (s *Server) handleFormPage(w http.ResponseWriter, r *http.Request) {
	f := s.lookupForm(w, r)
	if f == nil {
		return
	}
	body := h.Form(
		h.ID(f.FormID()),
		h.Method("post"),
		g.Attr("onsubmit", "return false;"),
		f.RenderInputs(),
		h.Div(
			h.Class("flex items-center space-x-2 mt-4"),
			f.RefreshButton(""),
			f.ResetButton(""),
		),
	)
	writeFragment(w, http.StatusOK, page(f.Name, body))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	f := s.lookupForm(w, r)
	if f == nil {
		return
	}
	if err := r.ParseForm(); err != nil {
		writeFragment(w, http.StatusBadRequest, render.ErrorFragment("Malformed form submission."))
		return
	}
	writeFragment(w, http.StatusOK, f.Refresh(r.PostForm))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	f := s.lookupForm(w, r)
	if f == nil {
		return
	}
	writeFragment(w, http.StatusOK, f.Reset())
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	f := s.lookupForm(w, r)
	if f == nil {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, `{"error":"malformed form submission"}`, http.StatusBadRequest)
		return
	}
	typed, errs, err := f.Validate(r.PostForm)
	if err != nil {
		zap.L().Error("web: validate failed", zap.String("form", f.Name), zap.Error(err))
		http.Error(w, `{"error":"validation could not run"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if len(errs) > 0 {
		out := make([]map[string]string, len(errs))
		for i, fe := range errs {
			out[i] = map[string]string{"path": fe.Path, "message": fe.Message}
		}
		json.NewEncoder(w).Encode(map[string]any{"valid": false, "errors": out})
		return
	}
	json.NewEncoder(w).Encode(map[string]any{"valid": true, "value": typed})
}

func (s *Server) handleListAdd(w http.ResponseWriter, r *http.Request) {
	f := s.lookupForm(w, r)
	if f == nil {
		return
	}
	route := chi.URLParam(r, "*")
	card, err := f.AddItem(route)
	if err != nil {
		zap.L().Warn("web: list add failed", zap.String("form", f.Name), zap.String("route", route), zap.Error(err))
		writeFragment(w, http.StatusUnprocessableEntity, render.ErrorFragment("Cannot add item: unknown list field."))
		return
	}
	writeFragment(w, http.StatusOK, card)
}

func (s *Server) handleListDelete(w http.ResponseWriter, r *http.Request) {
	f := s.lookupForm(w, r)
	if f == nil {
		return
	}
	route := chi.URLParam(r, "*")
	frag, err := f.DeleteItem(route, r.URL.Query().Get("idx"))
	if err != nil {
		zap.L().Warn("web: list delete failed", zap.String("form", f.Name), zap.String("route", route), zap.Error(err))
		writeFragment(w, http.StatusUnprocessableEntity, render.ErrorFragment("Cannot delete item: unknown list field."))
		return
	}
	writeFragment(w, http.StatusOK, frag)
}

func (s *Server) handleComparePage(w http.ResponseWriter, r *http.Request) {
	p := s.lookupPair(w, r)
	if p == nil {
		return
	}
	body := h.Form(
		h.ID(p.Name+"-compare-form"),
		h.Method("post"),
		g.Attr("onsubmit", "return false;"),
		p.RenderGrid(),
	)
	writeFragment(w, http.StatusOK, page(p.Name, body))
}

func (s *Server) handleSideRefresh(w http.ResponseWriter, r *http.Request) {
	p := s.lookupPair(w, r)
	if p == nil {
		return
	}
	side, err := compare.ParseSide(chi.URLParam(r, "side"))
	if err != nil {
		writeFragment(w, http.StatusNotFound, render.ErrorFragment("Unknown side."))
		return
	}
	if err := r.ParseForm(); err != nil {
		writeFragment(w, http.StatusBadRequest, render.ErrorFragment("Malformed form submission."))
		return
	}
	writeFragment(w, http.StatusOK, p.RefreshSide(side, r.PostForm))
}

func (s *Server) handleSideReset(w http.ResponseWriter, r *http.Request) {
	p := s.lookupPair(w, r)
	if p == nil {
		return
	}
	side, err := compare.ParseSide(chi.URLParam(r, "side"))
	if err != nil {
		writeFragment(w, http.StatusNotFound, render.ErrorFragment("Unknown side."))
		return
	}
	writeFragment(w, http.StatusOK, p.ResetSide(side))
}

func (s *Server) handleCopy(w http.ResponseWriter, r *http.Request) {
	p := s.lookupPair(w, r)
	if p == nil {
		return
	}
	if err := r.ParseForm(); err != nil {
		writeFragment(w, http.StatusBadRequest, render.ErrorFragment("Malformed form submission."))
		return
	}
	notation := r.PostForm.Get("path")
	target := r.PostForm.Get("target")
	targetSide, err := compare.ParseSide(target)
	if err != nil {
		writeFragment(w, http.StatusBadRequest, render.ErrorFragment("Unknown copy target."))
		return
	}

	frag, err := p.ApplyCopy(targetSide.Other(), notation, r.PostForm)
	if err != nil {
		zap.L().Warn("web: copy failed",
			zap.String("pair", p.Name),
			zap.String("path", notation),
			zap.Error(err),
		)
		writeFragment(w, http.StatusUnprocessableEntity, render.ErrorFragment("Copy failed: "+notation))
		return
	}
	writeFragment(w, http.StatusOK, frag)
}

// writeFragment renders a component as the whole response body.
func writeFragment(w http.ResponseWriter, status int, node g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := node.Render(w); err != nil {
		zap.L().Error("web: render fragment", zap.Error(err))
	}
}

// page wraps a fragment in a minimal HTML document with the form scripts.
func page(title string, body g.Node) g.Node {
	return h.Doctype(
		h.HTML(
			h.Lang("en"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.TitleEl(g.Text(title)),
				h.StyleEl(g.Raw(baseCSS)),
			),
			h.Body(
				h.Class("p-6 max-w-5xl mx-auto"),
				body,
				render.Scripts(),
			),
		),
	)
}

const baseCSS = `
body { font-family: system-ui, sans-serif; margin: 0 auto; max-width: 64rem; padding: 1.5rem; }
input, select, textarea { border: 1px solid #d1d5db; border-radius: 0.25rem; padding: 0.375rem 0.5rem; width: 100%; }
button { cursor: pointer; border: 1px solid #d1d5db; border-radius: 0.25rem; padding: 0.375rem 0.75rem; background: #f9fafb; }
.uk-button-danger { border-color: #fca5a5; color: #b91c1c; }
.uk-button-link { border: none; background: none; }
.sfm-compare { display: grid; grid-template-columns: 1fr 1fr; gap: 1.5rem; align-items: start; }
ul { list-style: none; margin: 0; padding: 0; }
li { border: 1px solid #e5e7eb; border-radius: 0.375rem; padding: 0.75rem; margin-bottom: 0.5rem; }
details > summary { cursor: pointer; }
`
