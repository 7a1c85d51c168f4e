package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPackLighting(t *testing.T) {
	sun := NewLight(WithDirection(mgl32.Vec3{0, -2, 0}), WithColor(mgl32.Vec3{1, 0.5, 0}), WithIntensity(2))
	off := NewLight(WithEnabled(false))
	fill := NewLight(WithDirection(mgl32.Vec3{1, 0, 0}))

	tests := []struct {
		name      string
		lights    []Light
		limit     int
		wantCount uint32
	}{
		{name: "no lights", lights: nil, limit: 4, wantCount: 0},
		{name: "disabled skipped", lights: []Light{sun, off, fill}, limit: 4, wantCount: 2},
		{name: "limit respected", lights: []Light{sun, fill, fill, fill, fill}, limit: 2, wantCount: 2},
		{name: "limit clamped to max", lights: []Light{sun, fill, fill, fill, fill, fill}, limit: 100, wantCount: MaxGPULights},
		{name: "negative limit", lights: []Light{sun}, limit: -1, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := PackLighting(mgl32.Vec3{0.1, 0.2, 0.3}, tt.lights, tt.limit)
			if b.Count != tt.wantCount {
				t.Errorf("Count = %d, want %d", b.Count, tt.wantCount)
			}
			if b.Ambient != [4]float32{0.1, 0.2, 0.3, 1} {
				t.Errorf("Ambient = %v", b.Ambient)
			}
		})
	}
}

func TestPackLightingScalesColorAndNormalizes(t *testing.T) {
	sun := NewLight(WithDirection(mgl32.Vec3{0, -2, 0}), WithColor(mgl32.Vec3{1, 0.5, 0}), WithIntensity(2))
	b := PackLighting(mgl32.Vec3{}, []Light{sun}, 1)

	if got := b.Lights[0].Direction; got != [4]float32{0, -1, 0, 0} {
		t.Errorf("Direction = %v, want [0 -1 0 0]", got)
	}
	if got := b.Lights[0].Color; got != [4]float32{2, 1, 0, 1} {
		t.Errorf("Color = %v, want [2 1 0 1]", got)
	}
}

func TestLightingBlockMarshal(t *testing.T) {
	b := PackLighting(mgl32.Vec3{0.25, 0, 0}, []Light{NewLight()}, 1)
	buf := b.Marshal()

	if len(buf) != LightingBlockSize {
		t.Fatalf("len = %d, want %d", len(buf), LightingBlockSize)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])); got != 0.25 {
		t.Errorf("ambient.r = %v, want 0.25", got)
	}
	if got := binary.LittleEndian.Uint32(buf[16:20]); got != 1 {
		t.Errorf("count = %d, want 1", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[36:40])); got != -1 {
		t.Errorf("light[0].direction.y = %v, want -1", got)
	}
}

func TestSetDirectionIgnoresZero(t *testing.T) {
	l := NewLight(WithDirection(mgl32.Vec3{1, 0, 0}))
	l.SetDirection(mgl32.Vec3{})
	if l.Direction() != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("Direction() = %v, want [1 0 0]", l.Direction())
	}
}
