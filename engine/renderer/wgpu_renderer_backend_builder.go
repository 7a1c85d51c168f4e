package renderer

// WGPUBackendOption is a functional option applied to the WebGPU backend during construction
// via NewWGPUBackend.
type WGPUBackendOption func(*wgpuRendererBackendImpl)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - WGPUBackendOption: a function that applies the present mode option to the backend
func WithPresentMode(mode PresentMode) WGPUBackendOption {
	return func(b *wgpuRendererBackendImpl) {
		b.presentMode = toWGPUPresentMode(mode)
	}
}

// WithMSAA sets the multisample anti-aliasing sample count. When not specified, the default
// is MSAA4x. Use MSAAOff to disable MSAA entirely.
//
// Parameters:
//   - count: the MSAASampleCount to use
//
// Returns:
//   - WGPUBackendOption: a function that applies the MSAA option to the backend
func WithMSAA(count MSAASampleCount) WGPUBackendOption {
	return func(b *wgpuRendererBackendImpl) {
		b.sampleCount = max(count, MSAAOff)
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - WGPUBackendOption: a function that applies the force software renderer option to the backend
func WithForceSoftwareRenderer(force bool) WGPUBackendOption {
	return func(b *wgpuRendererBackendImpl) {
		b.forceFallbackAdapter = force
	}
}

// WithMaxDraws sets how many draws per frame the model ring can hold. Draws past the limit
// are skipped for that frame.
//
// Parameters:
//   - n: the per-frame draw capacity, ignored if not positive
//
// Returns:
//   - WGPUBackendOption: a function that applies the max draws option to the backend
func WithMaxDraws(n int) WGPUBackendOption {
	return func(b *wgpuRendererBackendImpl) {
		if n > 0 {
			b.maxDraws = n
		}
	}
}
