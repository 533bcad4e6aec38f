// Package idgen produces prefixed, time-sortable correlation ids.
package idgen

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// GenerationPrefix tags ids created for one AI generation call.
const GenerationPrefix = "gen"

var (
	entropyOnce sync.Once
	entropyMu   sync.Mutex
	entropy     *ulid.MonotonicEntropy
)

func newEntropy() *ulid.MonotonicEntropy {
	entropyOnce.Do(func() {
		source := rand.NewSource(time.Now().UnixNano())
		entropy = ulid.Monotonic(rand.New(source), 0)
	})
	return entropy
}

// New returns "{prefix}_{ulid}" with the ULID lower-cased.
func New(prefix string) string {
	entropyMu.Lock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), newEntropy())
	entropyMu.Unlock()
	return prefix + "_" + strings.ToLower(id.String())
}

// NewGenerationID returns a gen_* id.
func NewGenerationID() string {
	return New(GenerationPrefix)
}

// IsValid reports whether value is a {prefix}_* ULID.
func IsValid(prefix, value string) bool {
	if !strings.HasPrefix(value, prefix+"_") {
		return false
	}
	_, err := Parse(prefix, value)
	return err == nil
}

// Parse strips the prefix and returns the ULID.
func Parse(prefix, value string) (ulid.ULID, error) {
	value = strings.TrimSpace(value)
	trimmed := strings.TrimPrefix(value, prefix+"_")
	trimmed = strings.TrimPrefix(trimmed, strings.ToUpper(prefix)+"_")
	if trimmed == value {
		return ulid.ULID{}, fmt.Errorf("id %q has no %s_ prefix", value, prefix)
	}
	return ulid.Parse(trimmed)
}
