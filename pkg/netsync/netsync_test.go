package netsync

import (
	"errors"
	"strings"
	"testing"

	"github.com/taigrr/geodx/pkg/math3d"
)

func TestRoundTrip(t *testing.T) {
	transforms := []math3d.Affine{
		math3d.IdentityAffine(),
		math3d.Translate(math3d.V3(1e-300, -2.5, 1e300)),
		math3d.Translate(math3d.V3(3, 4, 5)).Mul(math3d.AxisAngle(math3d.V3(0.1, 0.7, -0.3), 2.2)),
	}

	for i, m := range transforms {
		msg := Encode(m)
		back, err := Decode(msg)
		if err != nil {
			t.Fatalf("case %d: Decode(%q): %v", i, msg, err)
		}
		if back != m {
			t.Errorf("case %d: round trip changed values:\n%v\n%v", i, m, back)
		}
	}
}

func TestEncodeFormat(t *testing.T) {
	got := Encode(math3d.Translate(math3d.V3(1.5, -2, 0.25)))
	want := "1 0 0 1.5 0 1 0 -2 0 0 1 0.25"
	if got != want {
		t.Errorf("Encode = %q, want %q", got, want)
	}
	if strings.Count(got, " ") != Fields-1 {
		t.Errorf("separators = %d", strings.Count(got, " "))
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want error
	}{
		{"empty", "", ErrTokenCount},
		{"too few", "1 0 0 0 0 1 0 0 0 0 1", ErrTokenCount},
		{"too many", "1 0 0 0 0 1 0 0 0 0 1 0 7", ErrTokenCount},
		{"word", "1 0 0 0 0 1 0 x 0 0 1 0", ErrBadToken},
		{"nan", "1 0 0 0 0 1 0 NaN 0 0 1 0", ErrBadToken},
		{"inf", "1 0 0 0 0 1 0 +Inf 0 0 1 0", ErrBadToken},
		{"comma", "1,0 0 0 0 0 1 0 0 0 0 1 0", ErrBadToken},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.msg)
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestDecodeToleratesWhitespace(t *testing.T) {
	m, err := Decode("  1 0 0 4\t0 1 0 5\n0 0 1 6  ")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m.Translation() != math3d.V3(4, 5, 6) {
		t.Errorf("Translation = %v", m.Translation())
	}
}

func TestReceiverKeepsLastValid(t *testing.T) {
	r := NewReceiver(math3d.IdentityAffine())

	good := math3d.RotateY(0.5)
	if !r.Apply(Encode(good)) {
		t.Fatal("valid message rejected")
	}
	if r.Apply("garbage") || r.Apply("1 2 3") {
		t.Fatal("invalid message accepted")
	}

	if r.Transform() != good {
		t.Errorf("Transform = %v, want last valid", r.Transform())
	}
	if r.Received() != 1 || r.Rejected() != 2 {
		t.Errorf("counts = %d/%d", r.Received(), r.Rejected())
	}
	if !errors.Is(r.LastError(), ErrTokenCount) {
		t.Errorf("LastError = %v", r.LastError())
	}
}
