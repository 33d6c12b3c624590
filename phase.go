package ggframe

// Phase identifies one stage of the host's rendering lifecycle.
//
// Hosts forward their lifecycle notifications to [Driver.Notify] as Phase
// values. The zero value is PhaseOther, so an unmapped host state is
// ignored rather than misinterpreted.
type Phase int

const (
	// PhaseOther covers host lifecycle states the driver does not act on
	// (e.g. "after rendering" notifications). Notify ignores them.
	PhaseOther Phase = iota

	// PhaseSetup is delivered once when the host's rendering context is
	// ready. The device and queue become available at this point.
	PhaseSetup

	// PhaseBeforeRender is delivered once per tick, immediately before the
	// host composites its next frame. Never overlaps itself.
	PhaseBeforeRender

	// PhaseTeardown is delivered when the host releases its rendering
	// context. All GPU resources must be dropped.
	PhaseTeardown
)

// String returns a human-readable phase name for logging.
func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseBeforeRender:
		return "before-render"
	case PhaseTeardown:
		return "teardown"
	default:
		return "other"
	}
}
