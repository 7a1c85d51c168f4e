package game_object

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestMatrixCacheSlotFor(t *testing.T) {
	tests := []struct {
		name   string
		cache  MatrixCache
		frames []int
		want   []int
	}{
		{name: "static", cache: NewStaticCache(), frames: []int{0, 1, 2, 7}, want: []int{0, 0, 0, 0}},
		{name: "dynamic 3", cache: NewDynamicCache(3), frames: []int{0, 1, 2, 3, 4}, want: []int{0, 1, 2, 0, 1}},
		{name: "dynamic clamps to one slot", cache: NewDynamicCache(0), frames: []int{0, 5}, want: []int{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, f := range tt.frames {
				if got := tt.cache.SlotFor(f); got != tt.want[i] {
					t.Errorf("SlotFor(%d) = %d, want %d", f, got, tt.want[i])
				}
			}
		})
	}
}

func TestMatrixCacheStartsIdentity(t *testing.T) {
	for _, c := range []MatrixCache{NewStaticCache(), NewDynamicCache(2)} {
		for f := 0; f < c.Slots(); f++ {
			if c.Load(f) != mgl32.Ident4() {
				t.Errorf("slot %d not identity", f)
			}
		}
	}
}
