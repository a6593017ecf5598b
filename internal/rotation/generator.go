package rotation

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// DefaultAttemptFactor bounds the sampling loop at generateSize*factor draws.
const DefaultAttemptFactor = 200

// Generator picks rounds. It holds no session state: every call takes a
// settings snapshot and returns a new one. A Generator is not safe for
// concurrent use because it owns its random source.
type Generator struct {
	logger        *zap.Logger
	rng           *rand.Rand
	attemptFactor int
}

type Option func(*Generator)

func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithRand sets the random source, mainly to make tests reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		if rng != nil {
			g.rng = rng
		}
	}
}

func WithAttemptFactor(factor int) Option {
	return func(g *Generator) {
		if factor > 0 {
			g.attemptFactor = factor
		}
	}
}

func NewGenerator(opts ...Option) *Generator {
	seed := uint64(time.Now().UnixNano())
	g := &Generator{
		logger:        zap.NewNop(),
		rng:           rand.New(rand.NewPCG(seed, seed>>1|1)),
		attemptFactor: DefaultAttemptFactor,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}
