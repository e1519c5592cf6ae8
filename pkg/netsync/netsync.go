// Package netsync encodes an object transform as the plain-text message
// exchanged between a host and its invitees: 12 row-major doubles
// separated by single spaces.
package netsync

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/taigrr/geodx/pkg/math3d"
)

// Fields is the number of values in a message.
const Fields = 12

var (
	ErrTokenCount = errors.New("transform message must have 12 values")
	ErrBadToken   = errors.New("transform message value is not a finite number")
)

// Encode formats m with the shortest representation that parses back to
// the same doubles.
func Encode(m math3d.Affine) string {
	v := m.Values()
	var b strings.Builder
	b.Grow(Fields * 8)
	for i, x := range v {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	}
	return b.String()
}

// Decode parses a message produced by Encode. Runs of whitespace and
// surrounding whitespace are tolerated; anything other than exactly 12
// finite numbers is rejected.
func Decode(msg string) (math3d.Affine, error) {
	var m math3d.Affine

	tokens := strings.Fields(msg)
	if len(tokens) != Fields {
		return m, fmt.Errorf("%w: got %d", ErrTokenCount, len(tokens))
	}

	var v [Fields]float64
	for i, tok := range tokens {
		x, err := strconv.ParseFloat(tok, 64)
		if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
			return m, fmt.Errorf("%w: value %d %q", ErrBadToken, i, tok)
		}
		v[i] = x
	}

	return math3d.AffineFromSlice(v[:])
}

// Receiver holds the most recent valid transform from a stream of
// messages. Malformed messages are counted and dropped.
type Receiver struct {
	current  math3d.Affine
	received int
	rejected int
	lastErr  error
}

// NewReceiver starts from initial.
func NewReceiver(initial math3d.Affine) *Receiver {
	return &Receiver{current: initial}
}

// Apply decodes msg. On success it replaces the current transform and
// returns true; otherwise the current transform is kept.
func (r *Receiver) Apply(msg string) bool {
	m, err := Decode(msg)
	if err != nil {
		r.rejected++
		r.lastErr = err
		return false
	}
	r.current = m
	r.received++
	return true
}

// Transform returns the most recent valid transform.
func (r *Receiver) Transform() math3d.Affine {
	return r.current
}

// Received returns the number of accepted messages.
func (r *Receiver) Received() int {
	return r.received
}

// Rejected returns the number of dropped messages.
func (r *Receiver) Rejected() int {
	return r.rejected
}

// LastError returns the reason the most recent bad message was dropped.
func (r *Receiver) LastError() error {
	return r.lastErr
}
