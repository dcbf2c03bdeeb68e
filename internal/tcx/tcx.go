// Package tcx decodes TCX activity logs (the lap/track/trackpoint
// hierarchy) into an ordered sample sequence.
package tcx

import (
	"encoding/xml"
	"errors"
	"fmt"
)

// ErrMalformed wraps every parse failure: the document is structurally
// broken or a trackpoint is missing a required value. Retrying is
// pointless, the document will not become parseable.
var ErrMalformed = errors.New("malformed activity log")

// Sample is one recorded trackpoint: heart rate plus cumulative distance.
// Index is the ordinal position in the track; samples carry no timestamp,
// so document order is the only chronological signal.
type Sample struct {
	Index          int
	HeartRate      int
	DistanceMeters float64
}

// Detail holds the per-trackpoint samples of an activity log.
type Detail struct {
	Samples []Sample
}

type heartRateBpm struct {
	Value *int `xml:"Value"`
}

type trackpoint struct {
	HeartRateBpm   *heartRateBpm `xml:"HeartRateBpm"`
	DistanceMeters *float64      `xml:"DistanceMeters"`
}

type track struct {
	Trackpoints []trackpoint `xml:"Trackpoint"`
}

type lap struct {
	Track track `xml:"Track"`
}

type activity struct {
	ID  string `xml:"Id"`
	Lap *lap   `xml:"Lap"`
}

type activities struct {
	Activity []activity `xml:"Activity"`
}

type trainingCenterDatabase struct {
	Activities activities `xml:"Activities"`
}

// Parse decodes a TCX document into its sample sequence, in document
// order. A nil Detail with a nil error means the lap element is absent:
// the tracker recorded no per-point detail, which is distinct from an
// empty lap and is not an error.
func Parse(doc []byte) (*Detail, error) {
	var database trainingCenterDatabase
	if err := xml.Unmarshal(doc, &database); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	acts := database.Activities.Activity
	if len(acts) == 0 {
		return nil, fmt.Errorf("%w: no activity element", ErrMalformed)
	}

	l := acts[0].Lap
	if l == nil {
		return nil, nil
	}

	samples := make([]Sample, 0, len(l.Track.Trackpoints))
	for i, tp := range l.Track.Trackpoints {
		if tp.HeartRateBpm == nil || tp.HeartRateBpm.Value == nil {
			return nil, fmt.Errorf("%w: trackpoint %d has no heart rate", ErrMalformed, i)
		}
		if tp.DistanceMeters == nil {
			return nil, fmt.Errorf("%w: trackpoint %d has no distance", ErrMalformed, i)
		}
		samples = append(samples, Sample{
			Index:          i,
			HeartRate:      *tp.HeartRateBpm.Value,
			DistanceMeters: *tp.DistanceMeters,
		})
	}

	return &Detail{Samples: samples}, nil
}
