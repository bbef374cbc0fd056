package summarystats

import (
	"sort"

	"golang.org/x/exp/maps"
)

// SensorKey identifies one optical module within an event.
type SensorKey struct {
	StringID int32
	SensorID int32
}

// Less orders keys by string id first, then sensor id.
func (k SensorKey) Less(other SensorKey) bool {
	if k.StringID != other.StringID {
		return k.StringID < other.StringID
	}
	return k.SensorID < other.SensorID
}

// PhotonData holds one event's photon hits as flat parallel arrays, the
// canonical form the aggregator works on. Charge may be nil, meaning unit
// charge per hit.
type PhotonData struct {
	PosX     []float64
	PosY     []float64
	PosZ     []float64
	StringID []int32
	SensorID []int32
	Time     []float64
	Charge   []float64
}

// NumHits returns the number of photon hits in the event.
func (p *PhotonData) NumHits() int {
	return len(p.Time)
}

// validate checks that all parallel arrays have the same length.
func (p *PhotonData) validate() error {
	n := len(p.Time)
	fields := []struct {
		name string
		len  int
	}{
		{"sensor_pos_x", len(p.PosX)},
		{"sensor_pos_y", len(p.PosY)},
		{"sensor_pos_z", len(p.PosZ)},
		{"string_id", len(p.StringID)},
		{"sensor_id", len(p.SensorID)},
	}
	for _, f := range fields {
		if f.len != n {
			return &InvalidInputError{What: f.name + " and t", LenTimes: f.len, LenCharges: n}
		}
	}
	if p.Charge != nil && len(p.Charge) != n {
		return &InvalidInputError{What: "charge and t", LenTimes: len(p.Charge), LenCharges: n}
	}
	return nil
}

// sensorSeries collects one sensor's hits in their original input order,
// plus the position carried by the first hit encountered for the sensor.
type sensorSeries struct {
	position [3]float64
	times    []float64
	charges  []float64
}

// ProcessEvent partitions an event's photon hits per sensor and computes
// summary statistics for each sensor that has hits. A windowNs > 0 groups
// each sensor's hits into super-hits first (re-anchored rule).
//
// The returned rows are aligned: positions[k] and stats[k] describe the
// same sensor. Rows are ordered ascending by (string id, sensor id), so
// the output is deterministic regardless of the hit order in the input.
// A sensor's position is the one carried by its first hit in input order.
// An event with zero hits yields zero-row results.
func ProcessEvent(photons PhotonData, windowNs float64) ([][3]float64, []SummaryVector, error) {
	_, positions, stats, err := eventRows(photons, windowNs)
	return positions, stats, err
}

// eventRows does the per-sensor partition and reduction, keeping the
// sorted sensor keys aligned with the output rows.
func eventRows(photons PhotonData, windowNs float64) ([]SensorKey, [][3]float64, []SummaryVector, error) {
	if err := photons.validate(); err != nil {
		return nil, nil, nil, err
	}

	keysOut := make([]SensorKey, 0)
	positions := make([][3]float64, 0)
	stats := make([]SummaryVector, 0)
	if photons.NumHits() == 0 {
		return keysOut, positions, stats, nil
	}

	sensors := make(map[SensorKey]*sensorSeries)
	for i := range photons.Time {
		key := SensorKey{StringID: photons.StringID[i], SensorID: photons.SensorID[i]}
		series, ok := sensors[key]
		if !ok {
			series = &sensorSeries{
				position: [3]float64{photons.PosX[i], photons.PosY[i], photons.PosZ[i]},
			}
			sensors[key] = series
		}
		series.times = append(series.times, photons.Time[i])
		if photons.Charge != nil {
			series.charges = append(series.charges, photons.Charge[i])
		}
	}

	keys := maps.Keys(sensors)
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	for _, key := range keys {
		series := sensors[key]
		sensorStats, err := ProcessSensorData(series.times, series.charges, windowNs)
		if err != nil {
			return nil, nil, nil, err
		}
		keysOut = append(keysOut, key)
		positions = append(positions, series.position)
		stats = append(stats, sensorStats)
	}
	return keysOut, positions, stats, nil
}
