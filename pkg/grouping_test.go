package summarystats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonum.org/v1/gonum/floats"
)

func TestGroupHitsReanchoredWindow(t *testing.T) {
	times := []float64{10, 10.5, 15, 100}
	charges := []float64{1, 0.5, 2, 1}

	groupTimes, groupCharges, err := GroupHits(times, charges, 2.0)
	require.NoError(t, err)

	assert.Equal(t, []float64{10, 15, 100}, groupTimes)
	assert.Equal(t, []float64{1.5, 2, 1}, groupCharges)
}

func TestGroupHitsDoesNotChain(t *testing.T) {
	// Consecutive gaps of 0.8 each fit the 1 ns window, but the third
	// pulse is beyond the first group's anchor. The re-anchored rule
	// splits where the chained rule merges everything.
	times := []float64{0, 0.8, 1.6, 2.4}
	charges := []float64{1, 1, 1, 1}

	anchoredTimes, anchoredCharges, err := GroupHits(times, charges, 1.0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1.6}, anchoredTimes)
	assert.Equal(t, []float64{2, 2}, anchoredCharges)

	chainedTimes, chainedCharges, err := GroupHitsChained(times, charges, 1.0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, chainedTimes)
	assert.Equal(t, []float64{4}, chainedCharges)
}

func TestGroupHitsChargeConservation(t *testing.T) {
	times := []float64{4, 1, 9, 2, 2.5, 30, 8}
	charges := []float64{0.4, 1.2, 0.1, 2.2, 0.6, 1.5, 0.8}

	for _, window := range []float64{0.1, 1, 5, 100} {
		groupTimes, groupCharges, err := GroupHits(times, charges, window)
		require.NoError(t, err)
		assert.InDelta(t, floats.Sum(charges), floats.Sum(groupCharges), 1e-12,
			"window %f", window)
		for _, repTime := range groupTimes {
			assert.Contains(t, times, repTime, "window %f", window)
		}
	}
}

func TestGroupHitsSortsInput(t *testing.T) {
	times := []float64{15, 10, 10.5}
	charges := []float64{2, 1, 0.5}

	groupTimes, groupCharges, err := GroupHits(times, charges, 2.0)
	require.NoError(t, err)

	assert.Equal(t, []float64{10, 15}, groupTimes)
	assert.Equal(t, []float64{1.5, 2}, groupCharges)
}

func TestGroupHitsZeroWindowDisablesGrouping(t *testing.T) {
	times := []float64{15, 10, 10.5}
	charges := []float64{2, 1, 0.5}

	for _, window := range []float64{0, -1} {
		groupTimes, groupCharges, err := GroupHits(times, charges, window)
		require.NoError(t, err)
		// Unchanged, original order preserved
		assert.Equal(t, times, groupTimes)
		assert.Equal(t, charges, groupCharges)
	}
}

func TestGroupHitsEmpty(t *testing.T) {
	groupTimes, groupCharges, err := GroupHits(nil, nil, 2.0)
	require.NoError(t, err)
	assert.Empty(t, groupTimes)
	assert.Empty(t, groupCharges)
}

func TestGroupHitsLengthMismatch(t *testing.T) {
	_, _, err := GroupHits([]float64{1}, []float64{1, 2}, 2.0)
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)

	_, _, err = GroupHitsChained([]float64{1}, []float64{1, 2}, 2.0)
	require.ErrorAs(t, err, &invalid)
}

func TestGroupHitsChainedConservation(t *testing.T) {
	times := []float64{4, 1, 9, 2, 2.5, 30, 8}
	charges := []float64{0.4, 1.2, 0.1, 2.2, 0.6, 1.5, 0.8}

	groupTimes, groupCharges, err := GroupHitsChained(times, charges, 1.5)
	require.NoError(t, err)
	assert.InDelta(t, floats.Sum(charges), floats.Sum(groupCharges), 1e-12)
	for _, repTime := range groupTimes {
		assert.Contains(t, times, repTime)
	}
}

func TestProcessSensorDataUnitCharges(t *testing.T) {
	stats, err := ProcessSensorData([]float64{10, 20, 30}, nil, 0)
	require.NoError(t, err)

	assert.Equal(t, 3.0, stats[StatTotalCharge])
	assert.Equal(t, 10.0, stats[StatFirstPulseTime])
	assert.Equal(t, 30.0, stats[StatLastPulseTime])
	assert.InDelta(t, 20.0, stats[StatChargeWeightedMeanTime], 1e-12)
}

func TestProcessSensorDataWithGrouping(t *testing.T) {
	times := []float64{10, 10.5, 15, 100}
	charges := []float64{1, 0.5, 2, 1}

	stats, err := ProcessSensorData(times, charges, 2.0)
	require.NoError(t, err)

	groupTimes, groupCharges, err := GroupHits(times, charges, 2.0)
	require.NoError(t, err)
	expected, err := ComputeSummaryStats(groupTimes, groupCharges)
	require.NoError(t, err)

	assert.Equal(t, expected, stats)
	assert.Equal(t, 4.5, stats[StatTotalCharge])
}

func TestProcessSensorDataEmpty(t *testing.T) {
	stats, err := ProcessSensorData(nil, nil, 2.0)
	require.NoError(t, err)
	assert.Equal(t, SummaryVector{}, stats)
}
