package game

import (
	"math/rand/v2"

	"go.uber.org/zap"
)

// Source produces uniform integers in [0, n).
//
// Precondition: n > 0.
type Source interface {
	IntN(n int) int
}

// Coin sides as produced by Source.IntN(2).
const (
	Tails = 0
	Heads = 1
)

// NewSeededSource returns a deterministic PCG-backed Source.
func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandomSource returns a Source seeded from the runtime's entropy.
func NewRandomSource() Source {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// ScriptedSource replays a fixed sequence of values (each reduced mod n),
// then defers to a fallback. Tests use it to force coin flips.
type ScriptedSource struct {
	values   []int
	pos      int
	fallback Source
}

// NewScriptedSource creates a ScriptedSource. A nil fallback returns 0
// once the script runs out.
func NewScriptedSource(fallback Source, values ...int) *ScriptedSource {
	return &ScriptedSource{values: values, fallback: fallback}
}

func (s *ScriptedSource) IntN(n int) int {
	if s.pos < len(s.values) {
		v := s.values[s.pos]
		s.pos++
		return v % n
	}
	if s.fallback != nil {
		return s.fallback.IntN(n)
	}
	return 0
}

// Remaining returns how many scripted values have not been consumed.
func (s *ScriptedSource) Remaining() int {
	return len(s.values) - s.pos
}

// Coin flips fair coins and logs every flip at debug level.
type Coin struct {
	src    Source
	logger *zap.Logger
}

// NewCoin creates a Coin. A nil logger discards the flip log.
func NewCoin(src Source, logger *zap.Logger) *Coin {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coin{src: src, logger: logger}
}

// Flip returns true on heads.
func (c *Coin) Flip(reason string) bool {
	heads := c.src.IntN(2) == Heads
	c.logger.Debug("coin flip", zap.String("reason", reason), zap.Bool("heads", heads))
	return heads
}

// shuffleCards is an in-place Fisher-Yates shuffle driven by src.
func shuffleCards(src Source, cards []*Instance) {
	for i := len(cards) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
