package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	service "github.com/okian/f1predict/internal/app"
	"github.com/okian/f1predict/internal/domain/record"
	"github.com/okian/f1predict/internal/domain/verdict"
	"github.com/okian/f1predict/internal/inference"
	"github.com/okian/f1predict/pkg/logger"
)

// PageHandler renders the single prediction page.
type PageHandler struct {
	eval   Evaluator
	logger logger.Logger
}

// NewPageHandler creates a new page handler.
func NewPageHandler(eval Evaluator, opts ...Option) *PageHandler {
	h := &PageHandler{eval: eval, logger: logger.Nop()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type fieldView struct {
	Column string
	Label  string
	Value  string
}

type sectionView struct {
	Title  string
	Icon   string
	Fields []fieldView
}

type resultView struct {
	ID   string
	View verdict.View
}

type pageData struct {
	Model   inference.Info
	Left    []sectionView
	Right   []sectionView
	Summary []fieldView
	Result  *resultView
	Error   string
}

// HandleIndex handles GET / with an empty form.
func (h *PageHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.render(r.Context(), w, http.StatusOK, h.page(recordValues(record.Record{})))
}

// HandlePredict handles POST /predict: decode, predict, re-render the page
// with the result. Bad input re-renders the form with the submitted values.
func (h *PageHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
	case http.MethodGet, http.MethodHead:
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.logger.Warn(ctx, "form parse failed", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	rec, err := record.Decode(r.PostForm)
	if err != nil {
		data := h.page(submittedValues(r.PostForm))
		data.Error = formError(err)
		h.render(ctx, w, http.StatusBadRequest, data)
		return
	}

	out, err := h.eval.Evaluate(ctx, rec)
	if err != nil {
		data := h.page(submittedValues(r.PostForm))
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrInvalidInput) {
			status = http.StatusBadRequest
			data.Error = formError(err)
		} else {
			h.logger.Error(ctx, "evaluate failed", logger.Error(err))
			data.Error = "The model could not produce a prediction for this input."
		}
		h.render(ctx, w, status, data)
		return
	}

	data := h.page(recordValues(out.Record))
	data.Result = &resultView{ID: out.ID, View: out.View}
	h.render(ctx, w, http.StatusOK, data)
}

func (h *PageHandler) page(values map[string]string) pageData {
	data := pageData{Model: h.eval.Model()}
	for i, s := range record.Sections() {
		sv := sectionView{Title: s.Title, Icon: s.Icon}
		for _, f := range s.Fields {
			fv := fieldView{Column: f.Column, Label: f.Label, Value: values[f.Column]}
			sv.Fields = append(sv.Fields, fv)
		}
		if i%2 == 0 {
			data.Left = append(data.Left, sv)
		} else {
			data.Right = append(data.Right, sv)
		}
	}
	for _, f := range record.Fields() {
		data.Summary = append(data.Summary, fieldView{Column: f.Column, Label: f.Label, Value: values[f.Column]})
	}
	return data
}

// render buffers the template so a failure can still produce a clean 500.
func (h *PageHandler) render(ctx context.Context, w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.Error(ctx, "page render failed", logger.Error(fmt.Errorf("%w: %w", ErrRender, err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func recordValues(rec record.Record) map[string]string {
	out := make(map[string]string, len(record.Fields()))
	for _, c := range rec.Columns() {
		out[c.Name] = record.FormatValue(c.Value)
	}
	return out
}

// submittedValues echoes raw input so the user can correct it.
func submittedValues(form url.Values) map[string]string {
	out := recordValues(record.Record{})
	for _, name := range record.ColumnNames() {
		if v, ok := form[name]; ok && len(v) > 0 {
			out[name] = v[0]
		}
	}
	return out
}

func formError(err error) string {
	if labels := record.InvalidLabels(err); len(labels) > 0 {
		return "Please enter a number for: " + strings.Join(labels, ", ") + "."
	}
	if errors.Is(err, record.ErrNonFinite) {
		return "Every value must be a finite number; NaN and Inf are not accepted."
	}
	return "The submitted form could not be read."
}
