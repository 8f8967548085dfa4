package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/roach88/researchhub/internal/codec"
	"github.com/roach88/researchhub/internal/ids"
	"github.com/roach88/researchhub/internal/metrics"
	"github.com/roach88/researchhub/internal/model"
	"github.com/roach88/researchhub/internal/store"
)

// DocumentKey is the slot key holding the document.
const DocumentKey = "researchhub_v1"

// Store is the tracker. The zero value is not usable; call New.
type Store struct {
	mu      sync.Mutex
	slot    store.Slot
	ids     ids.Generator
	now     func() time.Time
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now. Entity dates and the document stamp are
// taken from it.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the logger used for operation logs.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// WithMetrics sets the recorder that counts operations.
func WithMetrics(r *metrics.Recorder) Option {
	return func(s *Store) {
		s.metrics = r
	}
}

// New creates a Store persisting to slot with ids from gen.
func New(slot store.Slot, gen ids.Generator, opts ...Option) *Store {
	s := &Store{
		slot:   slot,
		ids:    gen,
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the current date as YYYY-MM-DD.
func (s *Store) Today() string {
	return s.now().Format(model.DateLayout)
}

// Load returns the persisted document, creating and persisting an empty one
// on first use.
func (s *Store) Load(ctx context.Context) (model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	s.observe("load", err)
	return doc, err
}

// Save replaces the persisted document.
func (s *Store) Save(ctx context.Context, doc model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.save(ctx, doc)
	s.observe("save", err)
	return err
}

// ResetAll discards the persisted document and starts an empty one.
// Callers confirm with the user first.
func (s *Store) ResetAll(ctx context.Context) (model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.reset(ctx)
	s.observe("reset", err)
	return doc, err
}

func (s *Store) reset(ctx context.Context) (model.Document, error) {
	if err := s.slot.Delete(ctx, DocumentKey); err != nil {
		return model.Document{}, &model.StorageError{Op: "reset", Err: err}
	}
	return s.load(ctx)
}

// load reads the document. A missing key yields a fresh, persisted
// document; a payload that cannot be decoded is a storage failure.
func (s *Store) load(ctx context.Context) (model.Document, error) {
	raw, ok, err := s.slot.Get(ctx, DocumentKey)
	if err != nil {
		return model.Document{}, &model.StorageError{Op: "load", Err: err}
	}
	if !ok {
		doc := model.NewDocument(s.now())
		if err := s.save(ctx, doc); err != nil {
			return model.Document{}, err
		}
		s.logger.Debug("initialized empty document", "created_at", doc.Meta.CreatedAt)
		return doc, nil
	}

	var doc model.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.Document{}, &model.StorageError{Op: "load", Err: fmt.Errorf("decode document: %w", err)}
	}
	doc.Normalize()
	return doc, nil
}

func (s *Store) save(ctx context.Context, doc model.Document) error {
	doc.Normalize()
	raw, err := codec.MarshalCanonical(doc)
	if err != nil {
		return &model.StorageError{Op: "save", Err: fmt.Errorf("encode document: %w", err)}
	}
	if err := s.slot.Put(ctx, DocumentKey, raw); err != nil {
		return &model.StorageError{Op: "save", Err: err}
	}
	s.metrics.SetEntities(doc)
	return nil
}

// mutate runs fn against the current document and saves the result. When
// fn fails nothing is written.
func (s *Store) mutate(ctx context.Context, fn func(doc *model.Document) error) error {
	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(&doc); err != nil {
		return err
	}
	return s.save(ctx, doc)
}

// observe counts op and logs its outcome.
func (s *Store) observe(op string, err error, attrs ...any) {
	s.metrics.ObserveOp(op, err)
	switch {
	case err == nil:
		s.logger.Debug(op, attrs...)
	case model.IsStorage(err):
		s.logger.Error(op+" failed", append(attrs, "error", err)...)
	default:
		s.logger.Debug(op+" rejected", append(attrs, "error", err)...)
	}
}

// newID returns an id not yet used in doc, asking the generator at most twice.
func (s *Store) newID(doc *model.Document, prefix string) (string, error) {
	for attempt := 0; attempt < 2; attempt++ {
		id := s.ids.New(prefix)
		if !doc.HasID(id) {
			return id, nil
		}
		s.logger.Warn("id collision, regenerating", "id", id)
	}
	return "", fmt.Errorf("id generator returned ids already in use for prefix %q", prefix)
}
