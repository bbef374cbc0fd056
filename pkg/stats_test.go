package summarystats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSummaryStatsExample(t *testing.T) {
	times := []float64{10, 15, 25, 100}
	charges := []float64{1, 2, 1.5, 0.5}

	stats, err := ComputeSummaryStats(times, charges)
	require.NoError(t, err)

	assert.Equal(t, 5.0, stats[StatTotalCharge])
	// All four pulses fall within 100 ns of the first
	assert.Equal(t, 5.0, stats[StatCharge100ns])
	assert.Equal(t, 5.0, stats[StatCharge500ns])
	assert.Equal(t, 10.0, stats[StatFirstPulseTime])
	assert.Equal(t, 100.0, stats[StatLastPulseTime])
	// Cumulative charge [1, 3, 4.5, 5]: first above 1.0 and above 2.5
	// is the pulse at 15 in both cases
	assert.Equal(t, 15.0, stats[StatCharge20PercentTime])
	assert.Equal(t, 15.0, stats[StatCharge50PercentTime])
	// (10*1 + 15*2 + 25*1.5 + 100*0.5) / 5 = 127.5 / 5
	assert.InDelta(t, 25.5, stats[StatChargeWeightedMeanTime], 1e-12)

	variance := (1*240.25 + 2*110.25 + 1.5*0.25 + 0.5*5550.25) / 5.0
	assert.InDelta(t, math.Sqrt(variance), stats[StatChargeWeightedStdTime], 1e-12)
}

func TestComputeSummaryStatsEmpty(t *testing.T) {
	stats, err := ComputeSummaryStats([]float64{}, []float64{})
	require.NoError(t, err)
	assert.Equal(t, SummaryVector{}, stats)
}

func TestComputeSummaryStatsLengthMismatch(t *testing.T) {
	_, err := ComputeSummaryStats([]float64{1, 2}, []float64{1})
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 2, invalid.LenTimes)
	assert.Equal(t, 1, invalid.LenCharges)
}

func TestComputeSummaryStatsSortInvariance(t *testing.T) {
	times := []float64{10, 15, 25, 100}
	charges := []float64{1, 2, 1.5, 0.5}
	shuffledTimes := []float64{100, 15, 10, 25}
	shuffledCharges := []float64{0.5, 2, 1, 1.5}

	sorted, err := ComputeSummaryStats(times, charges)
	require.NoError(t, err)
	shuffled, err := ComputeSummaryStats(shuffledTimes, shuffledCharges)
	require.NoError(t, err)

	assert.Equal(t, sorted, shuffled)
}

func TestComputeSummaryStatsInputNotMutated(t *testing.T) {
	times := []float64{30, 10, 20}
	charges := []float64{1, 2, 3}

	_, err := ComputeSummaryStats(times, charges)
	require.NoError(t, err)

	assert.Equal(t, []float64{30, 10, 20}, times)
	assert.Equal(t, []float64{1, 2, 3}, charges)
}

func TestComputeSummaryStatsZeroTotalCharge(t *testing.T) {
	times := []float64{5, 10, 20}
	charges := []float64{0, 0, 0}

	stats, err := ComputeSummaryStats(times, charges)
	require.NoError(t, err)

	assert.Equal(t, 0.0, stats[StatTotalCharge])
	// Weighted mean and std are forced to zero, not NaN
	assert.Equal(t, 0.0, stats[StatChargeWeightedMeanTime])
	assert.Equal(t, 0.0, stats[StatChargeWeightedStdTime])
	assert.Equal(t, 5.0, stats[StatFirstPulseTime])
	assert.Equal(t, 20.0, stats[StatLastPulseTime])
	// Percentile lookups clamp to the last pulse
	assert.Equal(t, 20.0, stats[StatCharge20PercentTime])
	assert.Equal(t, 20.0, stats[StatCharge50PercentTime])
}

func TestComputeSummaryStatsWindowBoundaryInclusive(t *testing.T) {
	times := []float64{0, 100, 100.5, 500, 500.5}
	charges := []float64{1, 1, 1, 1, 1}

	stats, err := ComputeSummaryStats(times, charges)
	require.NoError(t, err)

	// Pulses exactly at first + 100 and first + 500 are included
	assert.Equal(t, 2.0, stats[StatCharge100ns])
	assert.Equal(t, 4.0, stats[StatCharge500ns])
}

func TestComputeSummaryStatsSinglePulse(t *testing.T) {
	stats, err := ComputeSummaryStats([]float64{42}, []float64{2.5})
	require.NoError(t, err)

	assert.Equal(t, 2.5, stats[StatTotalCharge])
	assert.Equal(t, 42.0, stats[StatFirstPulseTime])
	assert.Equal(t, 42.0, stats[StatLastPulseTime])
	assert.Equal(t, 42.0, stats[StatCharge20PercentTime])
	assert.Equal(t, 42.0, stats[StatCharge50PercentTime])
	assert.Equal(t, 42.0, stats[StatChargeWeightedMeanTime])
	assert.Equal(t, 0.0, stats[StatChargeWeightedStdTime])
}

func TestComputeSummaryStatsMilestoneOrdering(t *testing.T) {
	times := []float64{3, 7, 11, 50, 220, 800, 801}
	charges := []float64{0.2, 1.1, 0.4, 2.5, 0.9, 1.8, 0.1}

	stats, err := ComputeSummaryStats(times, charges)
	require.NoError(t, err)

	assert.LessOrEqual(t, stats[StatCharge100ns], stats[StatCharge500ns])
	assert.LessOrEqual(t, stats[StatCharge500ns], stats[StatTotalCharge])
	assert.LessOrEqual(t, stats[StatFirstPulseTime], stats[StatCharge20PercentTime])
	assert.LessOrEqual(t, stats[StatCharge20PercentTime], stats[StatCharge50PercentTime])
	assert.LessOrEqual(t, stats[StatCharge50PercentTime], stats[StatLastPulseTime])
}

func TestComputeSummaryStatsBatch(t *testing.T) {
	timesList := [][]float64{
		{10, 15, 25, 100},
		{},
		{1, 2},
	}
	chargesList := [][]float64{
		{1, 2, 1.5, 0.5},
		{},
		{3, 4},
	}

	results, err := ComputeSummaryStatsBatch(timesList, chargesList)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i := range timesList {
		row, err := ComputeSummaryStats(timesList[i], chargesList[i])
		require.NoError(t, err)
		assert.Equal(t, row, results[i], "row %d", i)
	}
	assert.Equal(t, SummaryVector{}, results[1])
}

func TestComputeSummaryStatsBatchLengthMismatch(t *testing.T) {
	_, err := ComputeSummaryStatsBatch([][]float64{{1}}, [][]float64{})
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
}
