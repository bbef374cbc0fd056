package summarystats

// GroupHits compresses near-coincident pulses into super-hits. Pulses are
// sorted by time and scanned left to right: a group starts at the earliest
// ungrouped pulse and takes every later pulse within windowNs of that
// anchor. The window is re-anchored at each group's earliest member, never
// propagated from pulse to pulse. Each group is reported with the anchor
// time and the summed charge of its members, so total charge is conserved.
//
// A windowNs <= 0 disables grouping and returns the series unchanged.
// See GroupHitsChained for the transitively-chained merge rule.
func GroupHits(times []float64, charges []float64, windowNs float64) ([]float64, []float64, error) {
	timesSorted, chargesSorted, done, err := groupInput(times, charges, windowNs)
	if done || err != nil {
		return timesSorted, chargesSorted, err
	}

	groupTimes := make([]float64, 0, len(timesSorted))
	groupCharges := make([]float64, 0, len(timesSorted))

	for i := 0; i < len(timesSorted); {
		anchor := timesSorted[i]
		charge := chargesSorted[i]
		j := i + 1
		for j < len(timesSorted) && timesSorted[j] <= anchor+windowNs {
			charge += chargesSorted[j]
			j++
		}
		groupTimes = append(groupTimes, anchor)
		groupCharges = append(groupCharges, charge)
		i = j
	}
	return groupTimes, groupCharges, nil
}

// GroupHitsChained merges pulses transitively: a group keeps growing while
// the gap between consecutive pulses stays within windowNs, so a run of
// small gaps can span far more than one window. It gives different
// groups than GroupHits whenever gaps chain below the threshold.
// Offered as a separate operation; GroupHits is the rule callers should
// normally use.
func GroupHitsChained(times []float64, charges []float64, windowNs float64) ([]float64, []float64, error) {
	timesSorted, chargesSorted, done, err := groupInput(times, charges, windowNs)
	if done || err != nil {
		return timesSorted, chargesSorted, err
	}

	groupTimes := make([]float64, 0, len(timesSorted))
	groupCharges := make([]float64, 0, len(timesSorted))

	groupTimes = append(groupTimes, timesSorted[0])
	groupCharges = append(groupCharges, chargesSorted[0])
	for i := 1; i < len(timesSorted); i++ {
		if timesSorted[i]-timesSorted[i-1] > windowNs {
			groupTimes = append(groupTimes, timesSorted[i])
			groupCharges = append(groupCharges, 0)
		}
		groupCharges[len(groupCharges)-1] += chargesSorted[i]
	}
	return groupTimes, groupCharges, nil
}

// groupInput validates and normalizes a series before grouping. When done
// is true the returned slices are already the final result: empty input
// yields empty groups, and windowNs <= 0 means "no grouping", so the
// series comes back copied unchanged in its original order.
func groupInput(times []float64, charges []float64, windowNs float64) (t, q []float64, done bool, err error) {
	if len(times) != len(charges) {
		return nil, nil, false, &InvalidInputError{
			What:       "times and charges",
			LenTimes:   len(times),
			LenCharges: len(charges),
		}
	}
	if len(times) == 0 {
		return []float64{}, []float64{}, true, nil
	}
	if windowNs <= 0 {
		t = make([]float64, len(times))
		q = make([]float64, len(charges))
		copy(t, times)
		copy(q, charges)
		return t, q, true, nil
	}
	t, q = sortedByTime(times, charges)
	return t, q, false, nil
}

// ProcessSensorData computes summary statistics for one sensor's series
// with optional super-hit grouping. A nil charges slice assigns unit
// charge to every pulse. Grouping runs only for windowNs > 0, using the
// re-anchored rule.
func ProcessSensorData(times []float64, charges []float64, windowNs float64) (SummaryVector, error) {
	if charges == nil {
		charges = unitCharges(len(times))
	}

	if windowNs > 0 {
		groupedTimes, groupedCharges, err := GroupHits(times, charges, windowNs)
		if err != nil {
			return SummaryVector{}, err
		}
		return ComputeSummaryStats(groupedTimes, groupedCharges)
	}
	return ComputeSummaryStats(times, charges)
}

func unitCharges(n int) []float64 {
	charges := make([]float64, n)
	for i := range charges {
		charges[i] = 1.0
	}
	return charges
}
