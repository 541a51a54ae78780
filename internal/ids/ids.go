package ids

import (
	"io"
	"math/rand"

	"github.com/google/uuid"
)

// Source hands out globally unique opaque identifiers.
type Source interface {
	New() string
}

// SeededSource produces v4 UUIDs from a seeded stream, so two runs with the
// same seed hand out the same identifiers.
type SeededSource struct {
	r io.Reader
}

func NewSeeded(seed int64) *SeededSource {
	return &SeededSource{r: rand.New(rand.NewSource(seed))}
}

func (s *SeededSource) New() string {
	id, err := uuid.NewRandomFromReader(s.r)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
