package checkpoint

import (
	"math/rand"
	"time"
)

// IDGen mints opaque checkpoint ids. An optional Exists hook lets callers
// guarantee collision-free ids against their backing store; without it the
// id space (36^12) makes collisions a non-concern.
type IDGen struct {
	Letters    []rune
	NumChars   int
	MaxRetries int
	Exists     func(id string) bool

	rng *rand.Rand
}

// NewIDGen returns a generator producing 12-character lowercase
// alphanumeric ids.
func NewIDGen(exists func(id string) bool) *IDGen {
	return &IDGen{
		Letters:    []rune("abcdefghijklmnopqrstuvwxyz0123456789"),
		NumChars:   12,
		MaxRetries: 10,
		Exists:     exists,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NextID returns a fresh id, retrying on collision when an Exists hook is
// configured.
func (g *IDGen) NextID() string {
	for i := 0; ; i++ {
		id := g.random()
		if g.Exists == nil || !g.Exists(id) || i >= g.MaxRetries {
			return id
		}
	}
}

func (g *IDGen) random() string {
	out := make([]rune, g.NumChars)
	for i := range out {
		out[i] = g.Letters[g.rng.Intn(len(g.Letters))]
	}
	return string(out)
}
