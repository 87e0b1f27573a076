package congestion

import "time"

const (
	DefaultLookaheadTime        = 2 * time.Minute
	DefaultIncreaseScanSegments = 12
)

// HandlerOptions tunes the size of the rewritten windows.
type HandlerOptions struct {
	// LookaheadTime turns the observed speed into the distance budget of a window.
	LookaheadTime time.Duration
	// IncreaseScanSegments is the maximum number of segments scanned by an increase.
	IncreaseScanSegments int
}

func DefaultHandlerOptions() HandlerOptions {
	return HandlerOptions{
		LookaheadTime:        DefaultLookaheadTime,
		IncreaseScanSegments: DefaultIncreaseScanSegments,
	}
}

func (o HandlerOptions) withDefaults() HandlerOptions {
	if o.LookaheadTime <= 0 {
		o.LookaheadTime = DefaultLookaheadTime
	}
	if o.IncreaseScanSegments <= 0 {
		o.IncreaseScanSegments = DefaultIncreaseScanSegments
	}
	return o
}
