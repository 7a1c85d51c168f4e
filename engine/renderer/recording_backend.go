package renderer

import (
	"errors"
	"sync"

	"github.com/Carmen-Shannon/oxy-scene/engine/light"
	"github.com/Carmen-Shannon/oxy-scene/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrNoFrame is returned by RecordingBackend when EndFrame or Present is called outside a frame.
var ErrNoFrame = errors.New("no frame in progress")

// DrawRecord is one Execute call captured by RecordingBackend.
type DrawRecord struct {
	Model  model.Model
	Matrix mgl32.Mat4
}

// RecordingBackend is a headless Backend that records every call instead of drawing.
// It is used for tests and for running the frame loop without a GPU.
type RecordingBackend struct {
	mu *sync.Mutex

	// Calls is the ordered list of Backend method names invoked.
	Calls []string
	// Clears holds the clear color of every frame begun.
	Clears []mgl32.Vec4
	// ViewProjs holds the view-projection of every frame.
	ViewProjs []mgl32.Mat4
	// Lighting holds the lighting block of every frame.
	Lighting []light.LightingBlock
	// Frames holds the draws of every completed frame, in submission order.
	Frames [][]DrawRecord
	// Width and Height are the last size passed to Resize.
	Width, Height int

	// FailBegin, when set, is returned by the next BeginFrame and then cleared.
	FailBegin error

	bound   mgl32.Mat4
	current []DrawRecord
	inFrame bool
}

var _ Backend = &RecordingBackend{}

// NewRecordingBackend creates an empty RecordingBackend.
//
// Returns:
//   - *RecordingBackend: the newly created backend
func NewRecordingBackend() *RecordingBackend {
	return &RecordingBackend{
		mu:    &sync.Mutex{},
		bound: mgl32.Ident4(),
	}
}

func (b *RecordingBackend) BeginFrame(clear mgl32.Vec4) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.Calls = append(b.Calls, "BeginFrame")
	if err := b.FailBegin; err != nil {
		b.FailBegin = nil
		return err
	}
	b.Clears = append(b.Clears, clear)
	b.current = nil
	b.inFrame = true
	return nil
}

func (b *RecordingBackend) SetViewProjection(viewProj mgl32.Mat4) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Calls = append(b.Calls, "SetViewProjection")
	b.ViewProjs = append(b.ViewProjs, viewProj)
}

func (b *RecordingBackend) SetLighting(block light.LightingBlock) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Calls = append(b.Calls, "SetLighting")
	b.Lighting = append(b.Lighting, block)
}

func (b *RecordingBackend) BindMatrix(m mgl32.Mat4) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Calls = append(b.Calls, "BindMatrix")
	b.bound = m
}

func (b *RecordingBackend) Execute(m model.Model) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Calls = append(b.Calls, "Execute")
	if m == nil || !m.Compiled() {
		return
	}
	b.current = append(b.current, DrawRecord{Model: m, Matrix: b.bound})
}

func (b *RecordingBackend) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Calls = append(b.Calls, "EndFrame")
	if !b.inFrame {
		return ErrNoFrame
	}
	b.Frames = append(b.Frames, b.current)
	b.current = nil
	b.inFrame = false
	return nil
}

func (b *RecordingBackend) Present() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Calls = append(b.Calls, "Present")
	return nil
}

func (b *RecordingBackend) Resize(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Calls = append(b.Calls, "Resize")
	b.Width, b.Height = width, height
}

// LastFrame returns the draws of the most recently completed frame.
//
// Returns:
//   - []DrawRecord: the draws, or nil if no frame has completed
func (b *RecordingBackend) LastFrame() []DrawRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.Frames) == 0 {
		return nil
	}
	return b.Frames[len(b.Frames)-1]
}
