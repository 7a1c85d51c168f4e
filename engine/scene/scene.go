package scene

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-scene/engine/camera"
	"github.com/Carmen-Shannon/oxy-scene/engine/game_object"
	"github.com/Carmen-Shannon/oxy-scene/engine/light"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultCapacity is the object arena size used when none is configured.
const DefaultCapacity = 256

var (
	// ErrSceneFull is returned by Add when every arena slot is allocated.
	ErrSceneFull = errors.New("scene is full")

	// ErrIndexOutOfRange is returned when an object or camera index does not exist.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNoCamera is returned by ActiveCamera when the scene has no cameras.
	ErrNoCamera = errors.New("scene has no camera")

	// ErrInFrame is returned by Compact while a frame is being rendered.
	ErrInFrame = errors.New("scene is inside a frame")
)

// World holds scene-wide render parameters.
type World struct {
	// Ambient is the ambient light color.
	Ambient mgl32.Vec3

	// ClearColor is the RGBA color the target surface is cleared to each frame.
	ClearColor mgl32.Vec4
}

// DefaultWorld returns a dim grey ambient with a dark blue clear color.
func DefaultWorld() World {
	return World{
		Ambient:    mgl32.Vec3{0.2, 0.2, 0.2},
		ClearColor: mgl32.Vec4{0.05, 0.05, 0.1, 1},
	}
}

type scene struct {
	mu *sync.RWMutex

	name     string
	capacity int
	objects  []game_object.GameObject
	nextID   uint64

	lights       []light.Light
	cameras      []camera.Camera
	activeCamera int

	world   World
	inFrame bool
}

// Scene owns the objects, lights and cameras rendered by one render loop.
//
// Objects live in a fixed-capacity arena addressed by stable index; insertion order is draw
// order. Remove only flags an object, so indices stay valid while a frame walks the arena.
// Compact reclaims removed slots and may only run between frames.
type Scene interface {
	// Name returns the scene's name.
	//
	// Returns:
	//   - string: the scene name
	Name() string

	// Capacity returns the maximum number of allocated object slots.
	//
	// Returns:
	//   - int: the arena capacity
	Capacity() int

	// Len returns the number of allocated object slots, removed ones included.
	//
	// Returns:
	//   - int: the allocated slot count
	Len() int

	// Add appends an object to the arena and assigns it an ID if it has none.
	//
	// Parameters:
	//   - obj: the object to add
	//
	// Returns:
	//   - int: the object's arena index
	//   - error: ErrSceneFull if no slot is free
	Add(obj game_object.GameObject) (int, error)

	// Remove logically deletes the object at index i. The slot stays allocated until Compact.
	//
	// Parameters:
	//   - i: the arena index
	//
	// Returns:
	//   - error: ErrIndexOutOfRange if i is not allocated
	Remove(i int) error

	// Compact drops removed objects from the arena, preserving the order of the survivors.
	// Indices returned by earlier Add calls are invalidated.
	//
	// Returns:
	//   - int: the number of slots reclaimed
	//   - error: ErrInFrame if called while a frame is in progress
	Compact() (int, error)

	// Object returns the object at index i.
	//
	// Parameters:
	//   - i: the arena index
	//
	// Returns:
	//   - game_object.GameObject: the object
	//   - error: ErrIndexOutOfRange if i is not allocated
	Object(i int) (game_object.GameObject, error)

	// Objects returns the allocated slots in draw order, removed ones included.
	// The slice must not be retained across Compact.
	//
	// Returns:
	//   - []game_object.GameObject: the arena contents
	Objects() []game_object.GameObject

	// AddLight appends a light.
	//
	// Parameters:
	//   - l: the light to add
	AddLight(l light.Light)

	// Lights returns the scene's lights in insertion order.
	//
	// Returns:
	//   - []light.Light: the lights
	Lights() []light.Light

	// AddCamera appends a camera. The first camera added becomes active.
	//
	// Parameters:
	//   - c: the camera to add
	//
	// Returns:
	//   - int: the camera's index
	AddCamera(c camera.Camera) int

	// Cameras returns the scene's cameras in insertion order.
	//
	// Returns:
	//   - []camera.Camera: the cameras
	Cameras() []camera.Camera

	// SetActiveCamera selects the camera used by the renderer.
	//
	// Parameters:
	//   - i: the camera index
	//
	// Returns:
	//   - error: ErrIndexOutOfRange if no camera has that index
	SetActiveCamera(i int) error

	// ActiveCamera returns the selected camera.
	//
	// Returns:
	//   - camera.Camera: the active camera
	//   - error: ErrNoCamera if the scene has none
	ActiveCamera() (camera.Camera, error)

	// ActiveCameraIndex returns the index of the selected camera.
	//
	// Returns:
	//   - int: the active camera index
	ActiveCameraIndex() int

	// World returns the scene-wide render parameters.
	//
	// Returns:
	//   - World: the world parameters
	World() World

	// SetWorld replaces the scene-wide render parameters.
	//
	// Parameters:
	//   - w: the new world parameters
	SetWorld(w World)

	// EnterFrame marks the start of a render frame. Called by the renderer.
	EnterFrame()

	// ExitFrame marks the end of a render frame. Called by the renderer.
	ExitFrame()

	// InFrame reports whether a frame is in progress.
	//
	// Returns:
	//   - bool: true between EnterFrame and ExitFrame
	InFrame() bool
}

var _ Scene = &scene{}

// NewScene creates an empty Scene with the given name.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:       &sync.RWMutex{},
		name:     name,
		capacity: DefaultCapacity,
		nextID:   1,
		world:    DefaultWorld(),
	}
	for _, option := range options {
		option(s)
	}
	s.objects = make([]game_object.GameObject, 0, s.capacity)
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Capacity() int {
	return s.capacity
}

func (s *scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func (s *scene) Add(obj game_object.GameObject) (int, error) {
	if obj == nil {
		panic("scene: Add requires a non-nil GameObject")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.objects) >= s.capacity {
		return -1, fmt.Errorf("add %q: %w", obj.Name(), ErrSceneFull)
	}
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
		s.nextID++
	}
	obj.SetRemoved(false)
	s.objects = append(s.objects, obj)
	return len(s.objects) - 1, nil
}

func (s *scene) Remove(i int) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i < 0 || i >= len(s.objects) {
		return fmt.Errorf("remove object %d: %w", i, ErrIndexOutOfRange)
	}
	s.objects[i].SetRemoved(true)
	return nil
}

func (s *scene) Compact() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFrame {
		return 0, fmt.Errorf("compact: %w", ErrInFrame)
	}

	kept := s.objects[:0]
	for _, obj := range s.objects {
		if !obj.Removed() {
			kept = append(kept, obj)
		}
	}
	reclaimed := len(s.objects) - len(kept)
	clear(s.objects[len(kept):])
	s.objects = kept

	if reclaimed > 0 {
		log.Printf("[Scene] %s: compacted %d removed objects, %d remain", s.name, reclaimed, len(kept))
	}
	return reclaimed, nil
}

func (s *scene) Object(i int) (game_object.GameObject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i < 0 || i >= len(s.objects) {
		return nil, fmt.Errorf("object %d: %w", i, ErrIndexOutOfRange)
	}
	return s.objects[i], nil
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.objects
}

func (s *scene) AddLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lights
}

func (s *scene) AddCamera(c camera.Camera) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cameras = append(s.cameras, c)
	return len(s.cameras) - 1
}

func (s *scene) Cameras() []camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cameras
}

func (s *scene) SetActiveCamera(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.cameras) {
		return fmt.Errorf("set active camera %d: %w", i, ErrIndexOutOfRange)
	}
	s.activeCamera = i
	return nil
}

func (s *scene) ActiveCamera() (camera.Camera, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.cameras) == 0 {
		return nil, ErrNoCamera
	}
	return s.cameras[s.activeCamera], nil
}

func (s *scene) ActiveCameraIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeCamera
}

func (s *scene) World() World {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.world
}

func (s *scene) SetWorld(w World) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.world = w
}

func (s *scene) EnterFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFrame = true
}

func (s *scene) ExitFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFrame = false
}

func (s *scene) InFrame() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFrame
}
