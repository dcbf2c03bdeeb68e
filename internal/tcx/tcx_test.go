package tcx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `<?xml version="1.0" encoding="UTF-8"?>
<TrainingCenterDatabase>
  <Activities>
    <Activity Sport="Running">
      <Id>2023-05-14T21:00:00+09:00</Id>
      <Lap StartTime="2023-05-14T21:00:00+09:00">
        <Track>
          <Trackpoint>
            <HeartRateBpm><Value>98</Value></HeartRateBpm>
            <DistanceMeters>500</DistanceMeters>
          </Trackpoint>
          <Trackpoint>
            <HeartRateBpm><Value>132</Value></HeartRateBpm>
            <DistanceMeters>1000</DistanceMeters>
          </Trackpoint>
          <Trackpoint>
            <HeartRateBpm><Value>155</Value></HeartRateBpm>
            <DistanceMeters>1480.5</DistanceMeters>
          </Trackpoint>
        </Track>
      </Lap>
    </Activity>
  </Activities>
</TrainingCenterDatabase>`

const absentLapDoc = `<?xml version="1.0" encoding="UTF-8"?>
<TrainingCenterDatabase>
  <Activities>
    <Activity Sport="Running">
      <Id>2023-05-14T21:00:00+09:00</Id>
    </Activity>
  </Activities>
</TrainingCenterDatabase>`

const emptyLapDoc = `<?xml version="1.0" encoding="UTF-8"?>
<TrainingCenterDatabase>
  <Activities>
    <Activity Sport="Running">
      <Id>2023-05-14T21:00:00+09:00</Id>
      <Lap StartTime="2023-05-14T21:00:00+09:00">
        <Track></Track>
      </Lap>
    </Activity>
  </Activities>
</TrainingCenterDatabase>`

const missingHeartRateDoc = `<?xml version="1.0" encoding="UTF-8"?>
<TrainingCenterDatabase>
  <Activities>
    <Activity Sport="Running">
      <Id>x</Id>
      <Lap>
        <Track>
          <Trackpoint>
            <DistanceMeters>500</DistanceMeters>
          </Trackpoint>
        </Track>
      </Lap>
    </Activity>
  </Activities>
</TrainingCenterDatabase>`

const missingDistanceDoc = `<?xml version="1.0" encoding="UTF-8"?>
<TrainingCenterDatabase>
  <Activities>
    <Activity Sport="Running">
      <Id>x</Id>
      <Lap>
        <Track>
          <Trackpoint>
            <HeartRateBpm><Value>120</Value></HeartRateBpm>
          </Trackpoint>
        </Track>
      </Lap>
    </Activity>
  </Activities>
</TrainingCenterDatabase>`

func TestParseValidDocument(t *testing.T) {
	t.Parallel()

	detail, err := Parse([]byte(validDoc))
	require.NoError(t, err)
	require.NotNil(t, detail)

	require.Len(t, detail.Samples, 3)
	assert.Equal(t, Sample{Index: 0, HeartRate: 98, DistanceMeters: 500}, detail.Samples[0])
	assert.Equal(t, Sample{Index: 1, HeartRate: 132, DistanceMeters: 1000}, detail.Samples[1])
	assert.Equal(t, Sample{Index: 2, HeartRate: 155, DistanceMeters: 1480.5}, detail.Samples[2])
}

func TestParseAbsentLap(t *testing.T) {
	t.Parallel()

	// A tracker that recorded no detail omits the lap entirely. That is
	// a valid outcome, not an error.
	detail, err := Parse([]byte(absentLapDoc))
	require.NoError(t, err)
	assert.Nil(t, detail)
}

func TestParseEmptyLap(t *testing.T) {
	t.Parallel()

	detail, err := Parse([]byte(emptyLapDoc))
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Empty(t, detail.Samples)
}

func TestParseMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"truncated document", `<TrainingCenterDatabase><Activities>`},
		{"no activity element", `<TrainingCenterDatabase><Activities></Activities></TrainingCenterDatabase>`},
		{"trackpoint without heart rate", missingHeartRateDoc},
		{"trackpoint without distance", missingDistanceDoc},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.doc))
			require.ErrorIs(t, err, ErrMalformed)
		})
	}
}
