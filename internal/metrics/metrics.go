// Package metrics counts tracker operations on a private Prometheus registry.
//
// A CLI process is short lived, so nothing is served over HTTP; the registry
// is written to a node_exporter textfile when the user asks for it.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/roach88/researchhub/internal/model"
)

// Result label values.
const (
	ResultOK          = "ok"
	ResultValidation  = "validation"
	ResultReferential = "referential"
	ResultNotFound    = "not_found"
	ResultImport      = "import_format"
	ResultStorage     = "storage"
	ResultError       = "error"
)

// Recorder holds the tracker's collectors. A nil *Recorder records nothing.
type Recorder struct {
	reg      *prometheus.Registry
	ops      *prometheus.CounterVec
	entities *prometheus.GaugeVec
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "researchhub",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Tracker operations by name and outcome.",
		}, []string{"op", "result"}),
		entities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "researchhub",
			Name:      "entities",
			Help:      "Entities in the persisted document after the last save.",
		}, []string{"kind"}),
	}
	r.reg.MustRegister(r.ops, r.entities)
	return r
}

// Registry exposes the underlying registry as a Gatherer.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.reg
}

// ObserveOp counts one call of op, classified by err.
func (r *Recorder) ObserveOp(op string, err error) {
	if r == nil {
		return
	}
	r.ops.WithLabelValues(op, Classify(err)).Inc()
}

// SetEntities records the collection sizes of doc.
func (r *Recorder) SetEntities(doc model.Document) {
	if r == nil {
		return
	}
	r.entities.WithLabelValues(model.KindProject).Set(float64(len(doc.Projects)))
	r.entities.WithLabelValues(model.KindTask).Set(float64(len(doc.Tasks)))
	r.entities.WithLabelValues(model.KindPaper).Set(float64(len(doc.Papers)))
}

// WriteTextfile writes every collected metric to path in the text
// exposition format, atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.reg)
}

// Classify maps an error to a result label.
func Classify(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case model.IsValidation(err):
		return ResultValidation
	case model.IsImportFormat(err):
		return ResultImport
	case model.IsReferential(err):
		return ResultReferential
	case model.IsNotFound(err):
		return ResultNotFound
	case model.IsStorage(err):
		return ResultStorage
	default:
		return ResultError
	}
}
