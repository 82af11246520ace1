// Package id generates sortable identifiers for sweep runs.
//
// IDs are ULIDs behind a type prefix, so run IDs sort by creation time and
// read clearly in logs (run_01J...).
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// RunID identifies one sweep
type RunID string

// RunPrefix marks run IDs
const RunPrefix = "run"

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
	now       func() time.Time
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator with cryptographically secure entropy
func NewGenerator() *Generator {
	return NewGeneratorWithEntropy(rand.Reader)
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source,
// for deterministic tests.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy, now: time.Now}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewRunID generates a new run ID
func NewRunID() RunID {
	return RunID(Default().GenerateWithPrefix(RunPrefix))
}

func (id RunID) String() string { return string(id) }

// ParseRunID validates a run ID and returns its ULID.
func ParseRunID(s string) (ulid.ULID, error) {
	raw, ok := strings.CutPrefix(s, RunPrefix+"_")
	if !ok {
		return ulid.ULID{}, fmt.Errorf("run ID %q lacks %s_ prefix", s, RunPrefix)
	}
	return ulid.Parse(raw)
}

// Timestamp extracts the creation time from a run ID
func Timestamp(s string) (time.Time, error) {
	parsed, err := ParseRunID(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
