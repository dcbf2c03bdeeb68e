// Package summary computes heart-rate and split statistics from an
// ordered trackpoint sample sequence.
package summary

import (
	"errors"
	"math"

	"fitpost/internal/tcx"
)

// Heart-rate bucket boundaries, checked in this order. Every sample falls
// into exactly one bucket.
const (
	bucketLowMax = 115
	bucketMidMax = 150

	BucketLow  = "<115"
	BucketMid  = "-150"
	BucketHigh = ">150"
)

// splitDistanceMeters is the split boundary: a sample whose cumulative
// distance is a positive exact multiple of this closes a kilometer.
const splitDistanceMeters = 1000

// ErrEmptyInput is returned when there are zero samples: average and max
// are undefined. Callers that reach this via an empty lap treat it as a
// degenerate valid case and substitute a zero-valued summary.
var ErrEmptyInput = errors.New("no samples to summarize")

// Bucket is one heart-rate range with its sample count.
type Bucket struct {
	Label string
	Count int
}

// HeartRate aggregates the heart-rate statistics of a sample sequence.
// Buckets are ordered by first occurrence across the sequence, not by a
// canonical numeric order.
type HeartRate struct {
	Average int
	Max     int
	Buckets []Bucket
}

// Splits is the elapsed sample count per completed kilometer. With samples
// assumed evenly spaced in time, each entry stands in for the split time.
type Splits []int

// ZeroHeartRate is the summary used when no detail is available: zero
// average and max, no buckets.
func ZeroHeartRate() HeartRate {
	return HeartRate{Buckets: []Bucket{}}
}

// Summarize computes the heart-rate summary and the per-kilometer splits
// of a sample sequence. It is a pure function of its input and fails with
// ErrEmptyInput on a zero-length sequence.
//
// The average is floor(sum/count): integer truncation after float
// division, matching the upstream-visible rounding.
//
// A split closes whenever a sample's cumulative distance lands on a
// positive exact multiple of 1000 m; the elapsed count for the first
// crossing is measured from the start of the sequence. Documents whose
// distance readings never hit an exact multiple yield an empty split
// list, an accepted limitation of the format.
func Summarize(samples []tcx.Sample) (HeartRate, Splits, error) {
	if len(samples) == 0 {
		return HeartRate{}, nil, ErrEmptyInput
	}

	var sum, max int
	buckets := make([]Bucket, 0, 3)
	index := make(map[string]int, 3)

	splits := Splits{}
	lastCrossing := 0

	for i, s := range samples {
		sum += s.HeartRate
		if s.HeartRate > max {
			max = s.HeartRate
		}

		label := bucketFor(s.HeartRate)
		if at, ok := index[label]; ok {
			buckets[at].Count++
		} else {
			index[label] = len(buckets)
			buckets = append(buckets, Bucket{Label: label, Count: 1})
		}

		if s.DistanceMeters > 0 && math.Mod(s.DistanceMeters, splitDistanceMeters) == 0 {
			splits = append(splits, i+1-lastCrossing)
			lastCrossing = i + 1
		}
	}

	hr := HeartRate{
		Average: int(float64(sum) / float64(len(samples))),
		Max:     max,
		Buckets: buckets,
	}
	return hr, splits, nil
}

func bucketFor(heartRate int) string {
	switch {
	case heartRate < bucketLowMax:
		return BucketLow
	case heartRate < bucketMidMax:
		return BucketMid
	default:
		return BucketHigh
	}
}
