// Package report assembles the final activity report from the fetched
// activity and its raw TCX log.
package report

import (
	"errors"

	"fitpost/internal/fitbit"
	"fitpost/internal/logging"
	"fitpost/internal/summary"
	"fitpost/internal/tcx"
)

// Report is the final artifact of a run: the selected activity plus its
// derived heart-rate and split statistics. Consumed read-only downstream.
type Report struct {
	StartTime string
	Distance  *float64
	Duration  int // milliseconds
	Calories  int
	HeartRate summary.HeartRate
	Splits    summary.Splits
}

// Build parses the raw activity log and summarizes it. An absent lap or an
// empty sample sequence yields a report with a zero-valued summary; a
// malformed document is fatal.
func Build(activity fitbit.Activity, doc []byte) (*Report, error) {
	r := &Report{
		StartTime: activity.StartTime,
		Distance:  activity.Distance,
		Duration:  activity.Duration,
		Calories:  activity.Calories,
		HeartRate: summary.ZeroHeartRate(),
		Splits:    summary.Splits{},
	}

	detail, err := tcx.Parse(doc)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		logging.Logger.Warn().
			Int64("log_id", activity.LogID).
			Msg("activity log has no detail, using zero summary")
		return r, nil
	}

	hr, splits, err := summary.Summarize(detail.Samples)
	if err != nil {
		if errors.Is(err, summary.ErrEmptyInput) {
			logging.Logger.Warn().
				Int64("log_id", activity.LogID).
				Msg("activity log has no samples, using zero summary")
			return r, nil
		}
		return nil, err
	}

	r.HeartRate = hr
	r.Splits = splits
	return r, nil
}
