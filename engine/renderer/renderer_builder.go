package renderer

import "github.com/cogentcore/webgpu/wgpu"

type RendererBuilderOption func(*rendererImpl)

// WithProps sets the static prop set drawn every frame. Props cannot be
// added after creation; their uniforms upload once at startup.
//
// Parameters:
//   - props: the props to draw
//
// Returns:
//   - RendererBuilderOption: a function that sets the props
func WithProps(props ...Prop) RendererBuilderOption {
	return func(r *rendererImpl) {
		r.props = append(r.props, props...)
	}
}

// WithClearColor sets the background clear color.
//
// Parameters:
//   - red, green, blue, alpha: color components in [0, 1]
//
// Returns:
//   - RendererBuilderOption: a function that sets the clear color
func WithClearColor(red, green, blue, alpha float64) RendererBuilderOption {
	return func(r *rendererImpl) {
		r.clearColor = wgpu.Color{R: red, G: green, B: blue, A: alpha}
	}
}
