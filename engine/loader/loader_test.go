package loader

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-scene/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

func ptr[T any](v T) *T { return &v }

// triangleBin holds three positions in the XY plane followed by uint16 indices padded to 4 bytes.
func triangleBin() []byte {
	var buf bytes.Buffer
	for _, f := range []float32{0, 0, 0, 1, 0, 0, 0, 1, 0} {
		binary.Write(&buf, binary.LittleEndian, f)
	}
	for _, i := range []uint16{0, 1, 2, 0} {
		binary.Write(&buf, binary.LittleEndian, i)
	}
	return buf.Bytes()
}

func triangleDoc(uri string, nodes []gltfNode) gltfDocument {
	return gltfDocument{
		Asset:  gltfAsset{Version: "2.0"},
		Nodes:  nodes,
		Meshes: []gltfMesh{{Name: "tri", Primitives: []gltfPrimitive{{Attributes: map[string]int{gltfAttributePosition: 0}, Indices: ptr(1)}}}},
		Accessors: []gltfAccessor{
			{BufferView: ptr(0), ComponentType: gltfComponentTypeFloat, Count: 3, Type: gltfAccessorTypeVec3},
			{BufferView: ptr(1), ComponentType: gltfComponentTypeUnsignedShort, Count: 3, Type: gltfAccessorTypeScalar},
		},
		BufferViews: []gltfBufferView{
			{Buffer: 0, ByteLength: 36},
			{Buffer: 0, ByteOffset: 36, ByteLength: 6},
		},
		Buffers: []gltfBuffer{{URI: uri, ByteLength: 44}},
	}
}

func embedded(doc gltfDocument) []byte {
	data, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	return data
}

func dataURI() string {
	return "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(triangleBin())
}

func glb(doc gltfDocument, bin []byte) []byte {
	jsonData := embedded(doc)
	for len(jsonData)%4 != 0 {
		jsonData = append(jsonData, ' ')
	}

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, gltfGLBHeader{Magic: gltfGLBMagic, Version: gltfGLBVersion, Length: uint32(12 + 8 + len(jsonData) + 8 + len(bin))})
	binary.Write(&buf, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(jsonData)), ChunkType: gltfGLBChunkJSON})
	buf.Write(jsonData)
	binary.Write(&buf, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(bin)), ChunkType: gltfGLBChunkBIN})
	buf.Write(bin)
	return buf.Bytes()
}

func vertex(m model.Model, i int) (pos, normal mgl32.Vec3) {
	data := m.VertexData()[i*model.VertexStride:]
	for c := 0; c < 3; c++ {
		pos[c] = math.Float32frombits(binary.LittleEndian.Uint32(data[c*4:]))
		normal[c] = math.Float32frombits(binary.LittleEndian.Uint32(data[12+c*4:]))
	}
	return pos, normal
}

// approx compares per component with an absolute tolerance, since many expected values are 0.
func approx(a, b mgl32.Vec3) bool {
	for i := range a {
		if mgl32.Abs(a[i]-b[i]) > 1e-5 {
			return false
		}
	}
	return true
}

func TestLoadReader(t *testing.T) {
	tests := []struct {
		name       string
		data       []byte
		isGLB      bool
		opts       []LoaderBuilderOption
		wantMin    mgl32.Vec3
		wantMax    mgl32.Vec3
		wantNormal mgl32.Vec3
	}{
		{
			name:       "embedded gltf without nodes",
			data:       embedded(triangleDoc(dataURI(), nil)),
			wantMin:    mgl32.Vec3{0, 0, 0},
			wantMax:    mgl32.Vec3{1, 1, 0},
			wantNormal: mgl32.Vec3{0, 0, 1},
		},
		{
			name:       "glb binary chunk",
			data:       glb(triangleDoc("", nil), triangleBin()),
			isGLB:      true,
			wantMin:    mgl32.Vec3{0, 0, 0},
			wantMax:    mgl32.Vec3{1, 1, 0},
			wantNormal: mgl32.Vec3{0, 0, 1},
		},
		{
			name:       "node translation under import scale",
			data:       embedded(triangleDoc(dataURI(), []gltfNode{{Mesh: ptr(0), Translation: &[3]float32{10, 0, 0}}})),
			opts:       []LoaderBuilderOption{WithScale(2)},
			wantMin:    mgl32.Vec3{20, 0, 0},
			wantMax:    mgl32.Vec3{22, 2, 0},
			wantNormal: mgl32.Vec3{0, 0, 1},
		},
		{
			name: "child inherits parent rotation",
			data: embedded(triangleDoc(dataURI(), []gltfNode{
				{Children: []int{1}, Rotation: &[4]float32{0, float32(math.Sin(math.Pi / 4)), 0, float32(math.Cos(math.Pi / 4))}},
				{Mesh: ptr(0)},
			})),
			wantMin:    mgl32.Vec3{0, 0, -1},
			wantMax:    mgl32.Vec3{0, 1, 0},
			wantNormal: mgl32.Vec3{1, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLoader(BackendTypeGLTF, tt.opts...)
			m, err := l.LoadReader("tri", bytes.NewReader(tt.data), tt.isGLB)
			if err != nil {
				t.Fatalf("LoadReader() error = %v", err)
			}

			if m.IndexCount() != 3 {
				t.Errorf("IndexCount() = %d, want 3", m.IndexCount())
			}
			if got := len(m.VertexData()); got != 3*model.VertexStride {
				t.Errorf("len(VertexData()) = %d, want %d", got, 3*model.VertexStride)
			}
			b := m.Bounds()
			if !approx(b.Min, tt.wantMin) || !approx(b.Max, tt.wantMax) {
				t.Errorf("Bounds() = %v, want {%v %v}", b, tt.wantMin, tt.wantMax)
			}
			for i := 0; i < 3; i++ {
				if _, n := vertex(m, i); !approx(n, tt.wantNormal) {
					t.Errorf("vertex %d normal = %v, want %v", i, n, tt.wantNormal)
				}
			}
			if m.Compiled() {
				t.Errorf("Compiled() = true without a compiler")
			}
		})
	}
}

func TestLoadReaderErrors(t *testing.T) {
	badVersion := triangleDoc(dataURI(), nil)
	badVersion.Asset.Version = "1.0"

	overrun := triangleDoc(dataURI(), nil)
	overrun.Accessors[0].Count = 10

	badIndex := triangleDoc(dataURI(), nil)
	badIndex.Accessors[1].BufferView = ptr(0)
	badIndex.Accessors[1].ByteOffset = 12
	badIndex.Accessors[1].ComponentType = gltfComponentTypeUnsignedInt

	noTriangles := triangleDoc(dataURI(), nil)
	noTriangles.Meshes[0].Primitives[0].Mode = ptr(1)

	tests := []struct {
		name  string
		data  []byte
		isGLB bool
		want  error
	}{
		{name: "unsupported version", data: embedded(badVersion), want: errInvalidGLTFVersion},
		{name: "accessor past buffer view", data: embedded(overrun), want: errAccessorOutOfRange},
		{name: "index past vertex count", data: embedded(badIndex)},
		{name: "only line primitives", data: embedded(noTriangles), want: errNoTriangles},
		{name: "bad glb magic", data: make([]byte, 20), isGLB: true, want: errInvalidGLBMagic},
		{name: "malformed json", data: []byte("{")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLoader(BackendTypeGLTF)
			_, err := l.LoadReader("bad", bytes.NewReader(tt.data), tt.isGLB)
			if err == nil {
				t.Fatalf("LoadReader() error = nil, want error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("LoadReader() error = %v, want %v", err, tt.want)
			}
			if l.Get("bad") != nil {
				t.Errorf("failed load was cached")
			}
		})
	}
}

func TestLoaderCompilesAndCaches(t *testing.T) {
	calls := 0
	l := NewLoader(BackendTypeGLTF, WithCompiler(func(m model.Model) error {
		calls++
		m.SetCommands("draw-list")
		return nil
	}))

	data := embedded(triangleDoc(dataURI(), nil))
	first, err := l.LoadReader("tri", bytes.NewReader(data), false)
	if err != nil {
		t.Fatalf("LoadReader() error = %v", err)
	}
	second, err := l.LoadReader("tri", bytes.NewReader(nil), false)
	if err != nil {
		t.Fatalf("cached LoadReader() error = %v", err)
	}

	if first != second {
		t.Errorf("second LoadReader() returned a new model")
	}
	if calls != 1 {
		t.Errorf("compiler calls = %d, want 1", calls)
	}
	if !first.Compiled() {
		t.Errorf("Compiled() = false after compiler ran")
	}
	if got := len(l.Models()); got != 1 {
		t.Errorf("len(Models()) = %d, want 1", got)
	}
}

func TestLoaderCompileFailureIsNotCached(t *testing.T) {
	errCompile := errors.New("device lost")
	l := NewLoader(BackendTypeGLTF, WithCompiler(func(model.Model) error { return errCompile }))

	_, err := l.LoadReader("tri", bytes.NewReader(embedded(triangleDoc(dataURI(), nil))), false)
	if !errors.Is(err, errCompile) {
		t.Fatalf("LoadReader() error = %v, want %v", err, errCompile)
	}
	if l.Get("tri") != nil {
		t.Errorf("model cached after compile failure")
	}
}

func TestLoadAsync(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tri.bin"), triangleBin(), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "tri.gltf")
	if err := os.WriteFile(path, embedded(triangleDoc("tri.bin", nil)), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "external buffer file", path: path},
		{name: "unsupported extension", path: filepath.Join(dir, "tri.obj"), wantErr: true},
		{name: "missing file", path: filepath.Join(dir, "missing.glb"), wantErr: true},
	}

	l := NewLoader(BackendTypeGLTF, WithWorkers(2))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			select {
			case res := <-l.LoadAsync(tt.path):
				if (res.Err != nil) != tt.wantErr {
					t.Fatalf("LoadAsync() error = %v, wantErr %v", res.Err, tt.wantErr)
				}
				if !tt.wantErr && res.Model.Name() != "tri" {
					t.Errorf("Name() = %q, want %q", res.Model.Name(), "tri")
				}
			case <-time.After(5 * time.Second):
				t.Fatal("LoadAsync() never delivered a result")
			}
		})
	}

	if l.Get(path) == nil {
		t.Errorf("async load was not cached by path")
	}
}

func TestWithScaleIgnoresInvalid(t *testing.T) {
	for _, s := range []float32{0, -1, float32(math.NaN()), float32(math.Inf(1))} {
		l := NewLoader(BackendTypeGLTF, WithScale(s)).(*loader)
		if l.scale != 1 {
			t.Errorf("WithScale(%v) set scale = %v, want 1", s, l.scale)
		}
	}
}
