package summarystats

// EventSummary is the reduced form of one event: row-aligned sensor
// keys, positions and summary vectors, ordered ascending by key.
type EventSummary struct {
	RunNumber int32
	EventID   int64
	Keys      []SensorKey
	Positions [][3]float64
	Stats     []SummaryVector
	Error     bool
}

// NumSensors returns the number of sensors with hits in the event.
func (e *EventSummary) NumSensors() int {
	return len(e.Keys)
}

// SummarizeEvent reduces a normalized photon record to its per-sensor
// summary rows. Same semantics as ProcessEvent, with the sensor keys
// kept alongside the aligned positions and statistics.
func SummarizeEvent(record PhotonRecord, windowNs float64) (EventSummary, error) {
	keys, positions, stats, err := eventRows(record.Photons, windowNs)
	if err != nil {
		return EventSummary{}, err
	}
	return EventSummary{
		EventID:   record.EventID,
		Keys:      keys,
		Positions: positions,
		Stats:     stats,
	}, nil
}
