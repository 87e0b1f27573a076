// Package slowtraffic finds the stretches of a route ahead of the driver whose congestion
// falls in one of the requested bands.
package slowtraffic

import (
	"context"
	"time"

	"github.com/lintang-b-s/navtraffic/pkg/congestion"
	"github.com/lintang-b-s/navtraffic/pkg/datastructure"
)

const (
	DefaultLegsLimit     = 2
	DefaultSegmentsLimit = 20
)

// GeometryRange is an inclusive range of leg geometry indices.
type GeometryRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// SlowTrafficSegment is a maximal run of consecutive leg segments in the same congestion band.
type SlowTrafficSegment struct {
	LegIndex      int           `json:"leg_index"`
	GeometryRange GeometryRange `json:"geometry_range"`
	// DistanceToSegmentMeters is measured from the driver position, across legs.
	DistanceToSegmentMeters float64                    `json:"distance_to_segment_meters"`
	CongestionRange         congestion.CongestionRange `json:"congestion_range"`
	DistanceMeters          float64                    `json:"distance_meters"`
	Duration                time.Duration              `json:"duration"`
	FreeFlowDuration        time.Duration              `json:"free_flow_duration"`
}

type SlowTrafficSegmentTraits struct {
	CongestionRange  congestion.CongestionRange `json:"congestion_range"`
	DistanceMeters   float64                    `json:"distance_meters"`
	Duration         time.Duration              `json:"duration"`
	FreeFlowDuration time.Duration              `json:"free_flow_duration"`
}

// SlowTrafficSegmentSummary joins adjacent slow segments of one leg.
type SlowTrafficSegmentSummary struct {
	LegIndex                int                        `json:"leg_index"`
	GeometryRange           GeometryRange              `json:"geometry_range"`
	DistanceToSegmentMeters float64                    `json:"distance_to_segment_meters"`
	Traits                  []SlowTrafficSegmentTraits `json:"traits"`
}

type findOptions struct {
	legsLimit     int
	segmentsLimit int
}

type Option func(*findOptions)

// WithLegsLimit bounds the number of legs scanned, the current leg included.
func WithLegsLimit(limit int) Option {
	return func(o *findOptions) {
		o.legsLimit = limit
	}
}

// WithSegmentsLimit bounds the number of returned segments.
func WithSegmentsLimit(limit int) Option {
	return func(o *findOptions) {
		o.segmentsLimit = limit
	}
}

type Finder struct {
	defaults findOptions
}

// NewFinder returns a Finder. opts become the defaults of every search.
func NewFinder(opts ...Option) *Finder {
	defaults := findOptions{
		legsLimit:     DefaultLegsLimit,
		segmentsLimit: DefaultSegmentsLimit,
	}
	for _, opt := range opts {
		opt(&defaults)
	}
	return &Finder{defaults: defaults}
}

// FindSlowTrafficSegments walks the route from the current position and returns the runs of
// segments whose congestion falls in one of targetRanges, in route order.
func (f *Finder) FindSlowTrafficSegments(ctx context.Context, progress datastructure.RouteProgress,
	targetRanges []congestion.CongestionRange, opts ...Option) ([]SlowTrafficSegment, error) {
	o := f.defaults
	for _, opt := range opts {
		opt(&o)
	}

	segments := make([]SlowTrafficSegment, 0)
	if len(targetRanges) == 0 || o.legsLimit <= 0 || o.segmentsLimit <= 0 {
		return segments, nil
	}

	legs := progress.Route.Legs
	startLeg := progress.CurrentLegProgress.LegIndex
	startIndex := progress.CurrentLegProgress.GeometryIndex
	distanceAhead := 0.0

	for legIndex := startLeg; legIndex < len(legs) && legIndex < startLeg+o.legsLimit; legIndex++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		annotation := legs[legIndex].Annotation
		from := 0
		if legIndex == startLeg {
			from = startIndex
		}
		if annotation == nil {
			if legIndex != startLeg {
				distanceAhead += legs[legIndex].Distance
			}
			continue
		}

		var current *SlowTrafficSegment
		var currentFreeFlow, currentDuration float64
		flush := func() bool {
			if current == nil {
				return false
			}
			current.Duration = seconds(currentDuration)
			current.FreeFlowDuration = seconds(currentFreeFlow)
			segments = append(segments, *current)
			current = nil
			return len(segments) >= o.segmentsLimit
		}

		values := annotation.CongestionNumeric
		for i := from; i < len(values); i++ {
			distance := at(annotation.Distance, i)
			r, ok := rangeOf(targetRanges, values[i])
			if current != nil && (!ok || r != current.CongestionRange) {
				if flush() {
					return segments, nil
				}
			}
			if ok {
				if current == nil {
					current = &SlowTrafficSegment{
						LegIndex:                legIndex,
						GeometryRange:           GeometryRange{From: i, To: i},
						DistanceToSegmentMeters: distanceAhead,
						CongestionRange:         r,
					}
					currentFreeFlow, currentDuration = 0, 0
				}
				duration := at(annotation.Duration, i)
				current.GeometryRange.To = i
				current.DistanceMeters += distance
				currentDuration += duration
				currentFreeFlow += freeFlowSeconds(distance, at(annotation.FreeflowSpeed, i), duration)
			}
			distanceAhead += distance
		}
		if flush() {
			return segments, nil
		}
	}
	return segments, nil
}

// FindAndSummarizeSlowTrafficSegments is FindSlowTrafficSegments with adjacent segments of a leg
// merged into one summary.
func (f *Finder) FindAndSummarizeSlowTrafficSegments(ctx context.Context, progress datastructure.RouteProgress,
	targetRanges []congestion.CongestionRange, opts ...Option) ([]SlowTrafficSegmentSummary, error) {
	segments, err := f.FindSlowTrafficSegments(ctx, progress, targetRanges, opts...)
	if err != nil {
		return nil, err
	}
	return Summarize(segments), nil
}

// Summarize merges the segments that follow each other on the same leg.
func Summarize(segments []SlowTrafficSegment) []SlowTrafficSegmentSummary {
	summaries := make([]SlowTrafficSegmentSummary, 0)
	for _, segment := range segments {
		n := len(summaries)
		if n > 0 && summaries[n-1].LegIndex == segment.LegIndex && summaries[n-1].GeometryRange.To+1 == segment.GeometryRange.From {
			summaries[n-1].GeometryRange.To = segment.GeometryRange.To
			summaries[n-1].Traits = addTraits(summaries[n-1].Traits, segment)
			continue
		}
		summaries = append(summaries, SlowTrafficSegmentSummary{
			LegIndex:                segment.LegIndex,
			GeometryRange:           segment.GeometryRange,
			DistanceToSegmentMeters: segment.DistanceToSegmentMeters,
			Traits:                  addTraits(nil, segment),
		})
	}
	return summaries
}

func addTraits(traits []SlowTrafficSegmentTraits, segment SlowTrafficSegment) []SlowTrafficSegmentTraits {
	for i := range traits {
		if traits[i].CongestionRange == segment.CongestionRange {
			traits[i].DistanceMeters += segment.DistanceMeters
			traits[i].Duration += segment.Duration
			traits[i].FreeFlowDuration += segment.FreeFlowDuration
			return traits
		}
	}
	return append(traits, SlowTrafficSegmentTraits{
		CongestionRange:  segment.CongestionRange,
		DistanceMeters:   segment.DistanceMeters,
		Duration:         segment.Duration,
		FreeFlowDuration: segment.FreeFlowDuration,
	})
}

func rangeOf(ranges []congestion.CongestionRange, value int) (congestion.CongestionRange, bool) {
	for _, r := range ranges {
		if r.Contains(value) {
			return r, true
		}
	}
	return congestion.CongestionRange{}, false
}

func at[T int | float64](values []T, i int) T {
	if i < len(values) {
		return values[i]
	}
	return 0
}

// freeFlowSeconds is the time to drive distance at freeFlowKmh, duration when the free flow
// speed is unknown.
func freeFlowSeconds(distance float64, freeFlowKmh int, duration float64) float64 {
	if freeFlowKmh <= 0 {
		return duration
	}
	return distance / (float64(freeFlowKmh) / 3.6)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
