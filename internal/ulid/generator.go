package ulid

import (
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropy     io.Reader
	entropyOnce sync.Once

	mu        sync.Mutex
	generator = DefaultGenerator
)

// DefaultEntropy returns a monotonic reader safe for concurrent use, so
// that ids generated within the same millisecond still sort in creation
// order.
func DefaultEntropy() io.Reader {
	entropyOnce.Do(func() {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		entropy = &ulid.LockedMonotonicReader{
			MonotonicReader: ulid.Monotonic(rng, 0),
		}
	})
	return entropy
}

// ValidID reports whether id is a canonical, upper case ULID. Ids of
// notes and bullets loaded from disk are checked with it.
func ValidID(id string) bool {
	_, err := ulid.ParseStrict(id)
	if err != nil {
		return false
	}
	for _, r := range id {
		if r >= 'a' && r <= 'z' {
			return false
		}
	}
	return true
}

// GenerateID returns a new id for a note or a bullet.
func GenerateID() string {
	mu.Lock()
	gen := generator
	mu.Unlock()
	return gen()
}

func DefaultGenerator() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), DefaultEntropy()).String()
}

// Time returns the creation time encoded in id.
func Time(id string) (time.Time, bool) {
	parsed, err := ulid.ParseStrict(id)
	if err != nil {
		return time.Time{}, false
	}
	return ulid.Time(parsed.Time()), true
}

func ResetGenerator() {
	mu.Lock()
	defer mu.Unlock()
	generator = DefaultGenerator
}

// MockGenerator makes GenerateID return valid ids derived from a counter
// and seed, which keeps tests deterministic.
func MockGenerator(seed uint64) {
	mu.Lock()
	defer mu.Unlock()

	var counter uint64
	generator = func() string {
		counter++
		var id ulid.ULID
		_ = id.SetTime(seed)
		data := []byte(fmt.Sprintf("%010d", counter))
		_ = id.SetEntropy(data)
		return id.String()
	}
}
