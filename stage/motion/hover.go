package motion

// DefaultSmoothing is the per-tick easing factor used by the skill cubes.
const DefaultSmoothing = 0.1

// Hover tracks pointer-over state and a scale factor that eases toward the hovered or
// resting target on every Step. The scale never leaves [min(rest,hover), max(rest,hover)].
type Hover struct {
	rest, hover float64
	k           float64

	hovered bool
	scale   float64
}

// NewHover returns a resting hover state. smoothing outside (0,1] falls back to
// DefaultSmoothing.
func NewHover(rest, hover, smoothing float64) *Hover {
	if !(smoothing > 0 && smoothing <= 1) {
		smoothing = DefaultSmoothing
	}
	return &Hover{rest: rest, hover: hover, k: smoothing, scale: rest}
}

// Set records whether the pointer is over the entity.
func (h *Hover) Set(hovered bool) {
	if h == nil {
		return
	}
	h.hovered = hovered
}

func (h *Hover) Hovered() bool { return h != nil && h.hovered }

// Target returns the scale the state is easing toward.
func (h *Hover) Target() float64 {
	if h.hovered {
		return h.hover
	}
	return h.rest
}

// Step advances the smoothing by one tick and returns the new scale.
func (h *Hover) Step() float64 {
	if h == nil {
		return 1
	}
	h.scale += (h.Target() - h.scale) * h.k
	lo, hi := h.rest, h.hover
	if lo > hi {
		lo, hi = hi, lo
	}
	if h.scale < lo {
		h.scale = lo
	}
	if h.scale > hi {
		h.scale = hi
	}
	return h.scale
}

// Scale returns the current scale without advancing.
func (h *Hover) Scale() float64 {
	if h == nil {
		return 1
	}
	return h.scale
}
