package window

type WindowBuilderOption func(*engineWindow)

// WithTitle sets the window title.
//
// Parameters:
//   - title: the title bar text
//
// Returns:
//   - WindowBuilderOption: a function that sets the title
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the requested window size in pixels. The actual framebuffer
// size may differ on high-DPI displays.
//
// Parameters:
//   - width: requested width in pixels
//   - height: requested height in pixels
//
// Returns:
//   - WindowBuilderOption: a function that sets the size
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 {
			w.width = width
		}
		if height > 0 {
			w.height = height
		}
	}
}

// WithCapturedCursor hides the cursor and locks it to the window from
// creation, for mouse-look demos.
//
// Returns:
//   - WindowBuilderOption: a function that enables cursor capture
func WithCapturedCursor() WindowBuilderOption {
	return func(w *engineWindow) {
		w.captureCursor = true
	}
}
