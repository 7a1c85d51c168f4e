package transform

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestValidatorIsSafe(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	unit := mgl32.Vec3{1, 1, 1}

	tests := []struct {
		name  string
		opts  []ValidatorBuilderOption
		loc   mgl32.Vec3
		scale mgl32.Vec3
		want  bool
	}{
		{name: "origin unit scale", loc: mgl32.Vec3{}, scale: unit, want: true},
		{name: "at location limit", loc: mgl32.Vec3{DefaultMaxLocation, -DefaultMaxLocation, 0}, scale: unit, want: true},
		{name: "past location limit", loc: mgl32.Vec3{0, DefaultMaxLocation + 1, 0}, scale: unit, want: false},
		{name: "NaN location", loc: mgl32.Vec3{0, nan, 0}, scale: unit, want: false},
		{name: "Inf location", loc: mgl32.Vec3{-inf, 0, 0}, scale: unit, want: false},
		{name: "NaN scale", loc: mgl32.Vec3{}, scale: mgl32.Vec3{1, 1, nan}, want: false},
		{name: "scale too large", loc: mgl32.Vec3{}, scale: mgl32.Vec3{DefaultMaxScale * 2, 1, 1}, want: false},
		{name: "negative scale mirrors", loc: mgl32.Vec3{}, scale: mgl32.Vec3{-1, 1, 1}, want: true},
		{name: "zero scale", loc: mgl32.Vec3{}, scale: mgl32.Vec3{}, want: true},
		{
			name:  "custom location limit",
			opts:  []ValidatorBuilderOption{WithMaxLocation(10)},
			loc:   mgl32.Vec3{11, 0, 0},
			scale: unit,
			want:  false,
		},
		{
			name:  "non-positive option ignored",
			opts:  []ValidatorBuilderOption{WithMaxLocation(-5), WithMaxScale(0)},
			loc:   mgl32.Vec3{100, 0, 0},
			scale: mgl32.Vec3{500, 1, 1},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator(tt.opts...)
			if got := v.IsSafe(tt.loc, tt.scale); got != tt.want {
				t.Errorf("IsSafe(%v, %v) = %v, want %v", tt.loc, tt.scale, got, tt.want)
			}
		})
	}
}

func TestValidatorSanitize(t *testing.T) {
	nan := float32(math.NaN())

	tests := []struct {
		name      string
		in        Transform
		wantSafe  bool
		wantLoc   mgl32.Vec3
		wantScale mgl32.Vec3
	}{
		{
			name:      "safe transform untouched",
			in:        Transform{Location: mgl32.Vec3{1, 2, 3}, Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}},
			wantSafe:  true,
			wantLoc:   mgl32.Vec3{1, 2, 3},
			wantScale: mgl32.Vec3{1, 1, 1},
		},
		{
			name:      "NaN location reset to origin",
			in:        Transform{Location: mgl32.Vec3{nan, 2, 3}, Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{2, 2, 2}},
			wantSafe:  false,
			wantLoc:   mgl32.Vec3{},
			wantScale: mgl32.Vec3{2, 2, 2},
		},
		{
			name:      "bad scale resets location and scale",
			in:        Transform{Location: mgl32.Vec3{1, 2, 3}, Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, nan, 1}},
			wantSafe:  false,
			wantLoc:   mgl32.Vec3{},
			wantScale: mgl32.Vec3{1, 1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := tt.in
			if got := DefaultValidator().Sanitize(&tr); got != tt.wantSafe {
				t.Errorf("Sanitize() = %v, want %v", got, tt.wantSafe)
			}
			if tr.Location != tt.wantLoc {
				t.Errorf("Location = %v, want %v", tr.Location, tt.wantLoc)
			}
			if tr.Scale != tt.wantScale {
				t.Errorf("Scale = %v, want %v", tr.Scale, tt.wantScale)
			}
		})
	}
}

func TestValidatorSanitizeRotation(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	tests := []struct {
		name string
		rot  mgl32.Quat
	}{
		{name: "NaN w", rot: mgl32.Quat{W: nan, V: mgl32.Vec3{0, 0, 0}}},
		{name: "NaN axis", rot: mgl32.Quat{W: 1, V: mgl32.Vec3{0, nan, 0}}},
		{name: "Inf axis", rot: mgl32.Quat{W: 0, V: mgl32.Vec3{inf, 0, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Transform{Location: mgl32.Vec3{1, 2, 3}, Rotation: tt.rot, Scale: mgl32.Vec3{2, 2, 2}}
			if DefaultValidator().Sanitize(&tr) {
				t.Fatalf("Sanitize() = true, want false")
			}
			if tr.Rotation != mgl32.QuatIdent() {
				t.Errorf("Rotation = %v, want identity", tr.Rotation)
			}
			if tr.Location != (mgl32.Vec3{}) {
				t.Errorf("Location = %v, want origin", tr.Location)
			}
			if tr.Scale != (mgl32.Vec3{2, 2, 2}) {
				t.Errorf("Scale = %v, want [2 2 2]", tr.Scale)
			}
		})
	}
}
