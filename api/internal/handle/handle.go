package handle

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"business-eval/api/internal/analysis"
	"business-eval/api/internal/evaluate"
)

// Evaluator produces an analysis for one idea. It must always return a result.
type Evaluator interface {
	Evaluate(ctx context.Context, idea analysis.BusinessIdea) (analysis.Result, evaluate.Source)
}

type Handle struct {
	eval        Evaluator
	serviceName string
	log         logrus.FieldLogger
}

func New(eval Evaluator, serviceName string, log logrus.FieldLogger) *Handle {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Handle{
		eval:        eval,
		serviceName: serviceName,
		log:         log,
	}
}

func (h *Handle) Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeDetail(w, http.StatusNotFound, "Not Found")
		return
	}
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Hello from " + h.serviceName + "!"})
}

func (h *Handle) Health(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, map[string]string{"detail": detail})
}

func methodOnly(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method && !(method == http.MethodGet && r.Method == http.MethodHead) {
		w.Header().Set("Allow", method)
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return false
	}
	return true
}
