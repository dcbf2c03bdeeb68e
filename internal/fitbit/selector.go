package fitbit

import "errors"

// ErrNoActivity is returned when no listed activity matches the wanted
// category. It ends the run as a no-op, not a failure.
var ErrNoActivity = errors.New("no matching activity")

// SelectLatest picks the most recent activity of the given category from a
// list already sorted descending by start time (the API returns it that
// way with sort=desc; no re-sorting here). The match is exact and
// case-sensitive.
func SelectLatest(activities []Activity, category string) (Activity, error) {
	for _, a := range activities {
		if a.ActivityName == category {
			return a, nil
		}
	}
	return Activity{}, ErrNoActivity
}
