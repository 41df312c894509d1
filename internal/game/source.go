package game

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
	"sync"
)

// Source draws the secret. Uint64N must return a uniform value in [0, n).
// *math/rand/v2.Rand satisfies it.
type Source interface {
	Uint64N(n uint64) uint64
}

// cryptoSource draws from crypto/rand. big.Int sampling is rejection based,
// so the result carries no modulo bias.
type cryptoSource struct{}

func (cryptoSource) Uint64N(n uint64) uint64 {
	v, err := rand.Int(rand.Reader, new(big.Int).SetUint64(n))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		panic("game: crypto/rand: " + err.Error())
	}
	return v.Uint64()
}

// CryptoSource returns the default, non-reproducible source.
func CryptoSource() Source { return cryptoSource{} }

// seededSource is a PCG generator behind a mutex so one seed can feed many rounds.
type seededSource struct {
	mu sync.Mutex
	r  *mrand.Rand
}

// NewSeededSource returns a reproducible source. It is safe for concurrent use.
func NewSeededSource(seed uint64) Source {
	return &seededSource{r: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seededSource) Uint64N(n uint64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Uint64N(n)
}

// FixedSource always yields the same offset (clamped into [0, n)).
// Useful to pin a secret: secret = min + offset.
type FixedSource uint64

func (f FixedSource) Uint64N(n uint64) uint64 {
	if uint64(f) >= n {
		return n - 1
	}
	return uint64(f)
}
