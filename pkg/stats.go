package summarystats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Slot indices of a SummaryVector.
const (
	StatTotalCharge = iota
	StatCharge100ns
	StatCharge500ns
	StatFirstPulseTime
	StatLastPulseTime
	StatCharge20PercentTime
	StatCharge50PercentTime
	StatChargeWeightedMeanTime
	StatChargeWeightedStdTime
	NumStats
)

// SummaryVector holds the 9 summary statistics of one sensor's pulse
// series, in slot order. The all-zero vector is the canonical value for
// an empty series.
type SummaryVector [NumStats]float64

// ComputeSummaryStats computes the 9 timing/charge summary statistics
// for a single sensor's pulse series. Times are in ns, charges in
// arbitrary units. The input does not need to be sorted; when it is not,
// both arrays are stable-sorted by time with charges co-moving.
//
// Returns an InvalidInputError when the two arrays differ in length.
// Any well-formed numeric input (zero charges, duplicate times, negative
// charges) produces a defined result without error.
func ComputeSummaryStats(times []float64, charges []float64) (SummaryVector, error) {
	var stats SummaryVector

	if len(times) != len(charges) {
		return stats, &InvalidInputError{
			What:       "times and charges",
			LenTimes:   len(times),
			LenCharges: len(charges),
		}
	}
	if len(times) == 0 {
		return stats, nil
	}

	timesSorted, chargesSorted := sortedByTime(times, charges)

	totalCharge := floats.Sum(chargesSorted)
	firstPulseTime := timesSorted[0]
	lastPulseTime := timesSorted[len(timesSorted)-1]

	// Pulses exactly at the cutoff are included in the window.
	idx100ns := searchRight(timesSorted, firstPulseTime+100.0)
	idx500ns := searchRight(timesSorted, firstPulseTime+500.0)
	charge100ns := floats.Sum(chargesSorted[:idx100ns])
	charge500ns := floats.Sum(chargesSorted[:idx500ns])

	cumulativeCharge := make([]float64, len(chargesSorted))
	floats.CumSum(cumulativeCharge, chargesSorted)

	idx20 := searchRight(cumulativeCharge, 0.2*totalCharge)
	idx50 := searchRight(cumulativeCharge, 0.5*totalCharge)

	// Clamp: floating equality at the end can push the index past the
	// last pulse.
	nTimes := len(timesSorted)
	charge20PercentTime := timesSorted[min(idx20, nTimes-1)]
	charge50PercentTime := timesSorted[min(idx50, nTimes-1)]

	var weightedMeanTime, weightedStdTime float64
	if totalCharge > 0 {
		weightedMeanTime = floats.Dot(timesSorted, chargesSorted) / totalCharge
		var weightedVariance float64
		for i, t := range timesSorted {
			diff := t - weightedMeanTime
			weightedVariance += chargesSorted[i] * diff * diff
		}
		weightedVariance /= totalCharge
		weightedStdTime = math.Sqrt(weightedVariance)
	}

	stats[StatTotalCharge] = totalCharge
	stats[StatCharge100ns] = charge100ns
	stats[StatCharge500ns] = charge500ns
	stats[StatFirstPulseTime] = firstPulseTime
	stats[StatLastPulseTime] = lastPulseTime
	stats[StatCharge20PercentTime] = charge20PercentTime
	stats[StatCharge50PercentTime] = charge50PercentTime
	stats[StatChargeWeightedMeanTime] = weightedMeanTime
	stats[StatChargeWeightedStdTime] = weightedStdTime
	return stats, nil
}

// ComputeSummaryStatsBatch computes summary statistics for many sensors
// at once. Row i of the result equals ComputeSummaryStats(timesList[i],
// chargesList[i]), including all-zero rows for empty series.
func ComputeSummaryStatsBatch(timesList [][]float64, chargesList [][]float64) ([]SummaryVector, error) {
	if len(timesList) != len(chargesList) {
		return nil, &InvalidInputError{
			What:       "times list and charges list",
			LenTimes:   len(timesList),
			LenCharges: len(chargesList),
		}
	}

	results := make([]SummaryVector, len(timesList))
	for i := range timesList {
		stats, err := ComputeSummaryStats(timesList[i], chargesList[i])
		if err != nil {
			return nil, err
		}
		results[i] = stats
	}
	return results, nil
}

// sortedByTime returns the series in ascending time order with charges
// co-moving. Already-sorted input is returned as-is without copying.
// The sort is stable, so pulses with equal times keep their input order.
func sortedByTime(times []float64, charges []float64) ([]float64, []float64) {
	if sort.Float64sAreSorted(times) {
		return times, charges
	}

	indices := make([]int, len(times))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return times[indices[i]] < times[indices[j]]
	})

	timesSorted := make([]float64, len(times))
	chargesSorted := make([]float64, len(charges))
	for i, idx := range indices {
		timesSorted[i] = times[idx]
		chargesSorted[i] = charges[idx]
	}
	return timesSorted, chargesSorted
}

// searchRight returns the number of leading elements of the sorted slice
// that are <= value (binary search, equal values on the left side).
func searchRight(sorted []float64, value float64) int {
	return sort.Search(len(sorted), func(i int) bool { return sorted[i] > value })
}
