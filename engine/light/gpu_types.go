package light

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxGPULights is the number of directional light slots in the lighting uniform.
const MaxGPULights = 4

// LightingSource is the WGSL definition matching LightingBlock.
const LightingSource = `
struct DirectionalLight {
    direction: vec4<f32>,
    color: vec4<f32>,
};

struct Lighting {
    ambient: vec4<f32>,
    count: u32,
    _pad0: u32,
    _pad1: u32,
    _pad2: u32,
    lights: array<DirectionalLight, 4>,
};
`

// GPUDirectionalLight is the uniform layout of one directional light (32 bytes).
type GPUDirectionalLight struct {
	Direction [4]float32 // xyz: normalized direction, w unused
	Color     [4]float32 // rgb: color * intensity, a unused
}

// LightingBlock is the per-frame lighting state: ambient color plus up to MaxGPULights
// directional lights. Size: 16 + 16 + 32*MaxGPULights bytes.
type LightingBlock struct {
	Ambient [4]float32
	Count   uint32
	_pad    [3]uint32
	Lights  [MaxGPULights]GPUDirectionalLight
}

// LightingBlockSize is the marshaled size of LightingBlock in bytes.
const LightingBlockSize = 32 + 32*MaxGPULights

// PackLighting builds the lighting block from the ambient color and the enabled lights,
// in scene order, keeping at most limit of them. limit is clamped to MaxGPULights.
//
// Parameters:
//   - ambient: the world ambient color
//   - lights: the scene's lights
//   - limit: the active light count cap
//
// Returns:
//   - LightingBlock: the packed block
func PackLighting(ambient mgl32.Vec3, lights []Light, limit int) LightingBlock {
	limit = max(0, min(limit, MaxGPULights))

	var b LightingBlock
	b.Ambient = [4]float32{ambient[0], ambient[1], ambient[2], 1}
	for _, l := range lights {
		if int(b.Count) >= limit {
			break
		}
		if l == nil || !l.Enabled() {
			continue
		}
		d := l.Direction()
		c := l.Color().Mul(l.Intensity())
		b.Lights[b.Count] = GPUDirectionalLight{
			Direction: [4]float32{d[0], d[1], d[2], 0},
			Color:     [4]float32{c[0], c[1], c[2], 1},
		}
		b.Count++
	}
	return b
}

// Marshal serializes the block into a little-endian byte buffer for GPU upload.
//
// Returns:
//   - []byte: LightingBlockSize bytes
func (b *LightingBlock) Marshal() []byte {
	buf := make([]byte, LightingBlockSize)
	putVec4(buf[0:16], b.Ambient)
	binary.LittleEndian.PutUint32(buf[16:20], b.Count)
	for i := range b.Lights {
		off := 32 + i*32
		putVec4(buf[off:off+16], b.Lights[i].Direction)
		putVec4(buf[off+16:off+32], b.Lights[i].Color)
	}
	return buf
}

func putVec4(dst []byte, v [4]float32) {
	for i, f := range v {
		binary.LittleEndian.PutUint32(dst[i*4:i*4+4], math.Float32bits(f))
	}
}
