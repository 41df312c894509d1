// internal/daily/daily.go
//
// Deterministic "number of the day".
// Every player drawing on the same UTC date gets the same secret:
// HMAC-SHA256(salt, YYYY-MM-DD) reduced into the round's range.
// Source plugs this into game.New via game.WithSource.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"strconv"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Offset returns a deterministic value in [0, n) for the date.
// n == 0 yields 0. Every value in the range is equally likely.
func Offset(date time.Time, salt string, n uint64) uint64 {
	if n == 0 {
		return 0
	}
	return pick(newStream(salt, DateKey(date)).next, n)
}

// pick reduces draws from next into [0, n), rejecting the low 2^64 mod n
// values so the remaining ones cover each residue equally often.
func pick(next func() uint64, n uint64) uint64 {
	thresh := -n % n
	for {
		if x := next(); x >= thresh {
			return x % n
		}
	}
}

// stream yields 64-bit words from HMAC-SHA256(salt, key), then from
// HMAC-SHA256(salt, key#1), key#2 and so on.
type stream struct {
	salt, key string
	block     []byte
	counter   int
}

func newStream(salt, key string) *stream {
	return &stream{salt: salt, key: key}
}

func (s *stream) next() uint64 {
	if len(s.block) == 0 {
		msg := s.key
		if s.counter > 0 {
			msg += "#" + strconv.Itoa(s.counter)
		}
		h := hmac.New(sha256.New, []byte(s.salt))
		h.Write([]byte(msg))
		s.block = h.Sum(nil)
		s.counter++
	}
	x := binary.BigEndian.Uint64(s.block[:8])
	s.block = s.block[8:]
	return x
}

// Source implements game.Source with the number of the day.
type Source struct {
	Salt string
	Now  func() time.Time // defaults to time.Now
}

// NewSource returns a daily source keyed by salt.
func NewSource(salt string) *Source {
	return &Source{Salt: salt, Now: time.Now}
}

func (s *Source) Uint64N(n uint64) uint64 {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return Offset(now(), s.Salt, n)
}
