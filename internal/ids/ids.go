// Package ids generates entity identifiers.
//
// Identifiers are "<prefix>_<uuid>" where the UUID is version 7, so ids sort
// by creation time and are unique for the life of the device.
package ids

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Entity prefixes.
const (
	PrefixProject = "prj"
	PrefixTask    = "tsk"
	PrefixPaper   = "pap"
)

// Generator produces a fresh identifier for an entity prefix.
type Generator interface {
	New(prefix string) string
}

// UUIDv7Generator generates time-sortable identifiers.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// New returns "<prefix>_<uuidv7>".
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) New(prefix string) string {
	return prefix + "_" + uuid.Must(uuid.NewV7()).String()
}

// SequenceGenerator returns "<prefix>_<n>" with a counter per prefix.
// Used by tests that need stable identifiers in golden output.
//
// Thread-safety: SequenceGenerator is safe for concurrent use via internal mutex.
type SequenceGenerator struct {
	mu   sync.Mutex
	next map[string]int
}

// NewSequenceGenerator creates a generator whose first id per prefix is 1.
func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{next: make(map[string]int)}
}

// New returns the next id for prefix, e.g. "tsk_0003".
func (g *SequenceGenerator) New(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next[prefix]++
	return fmt.Sprintf("%s_%04d", prefix, g.next[prefix])
}

// FixedGenerator returns predetermined ids in order, ignoring the prefix.
//
// Thread-safety: FixedGenerator is safe for concurrent use via internal mutex.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// New returns the next predetermined id.
//
// Panics if all ids have been consumed. This is intentional: tests must
// supply enough ids for the scenario.
func (g *FixedGenerator) New(string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("FixedGenerator: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
