package summarystats

import (
	"encoding/json"
	"fmt"
)

// PhotonRecord is one event record after normalization: the flat photon
// arrays plus the event identity carried by the record, if any.
// HasEventID distinguishes an explicit event_id, zero included, from an
// absent one.
type PhotonRecord struct {
	EventID    int64
	HasEventID bool
	Photons    PhotonData
}

// photonRecordJSON covers both accepted record shapes: either the photon
// arrays nested under a "photons" field, or the same arrays at the top
// level of the record.
type photonRecordJSON struct {
	EventID *int64           `json:"event_id"`
	Photons *photonArraysJSON `json:"photons"`
	photonArraysJSON
}

type photonArraysJSON struct {
	PosX     []float64 `json:"sensor_pos_x"`
	PosY     []float64 `json:"sensor_pos_y"`
	PosZ     []float64 `json:"sensor_pos_z"`
	StringID []int32   `json:"string_id"`
	SensorID []int32   `json:"sensor_id"`
	Time     []float64 `json:"t"`
	Charge   []float64 `json:"charge"`
}

// ParsePhotonRecord normalizes a JSON event record into a PhotonRecord.
// Records may nest the photon arrays under "photons" or expose them
// directly; the nested shape wins when both are present. Records missing
// any of the required arrays (sensor_pos_x/y/z, string_id, sensor_id, t)
// fail with an UnsupportedFormatError naming the missing fields. The
// charge array is optional and stays nil when absent, meaning unit
// charge per hit.
func ParsePhotonRecord(data []byte) (PhotonRecord, error) {
	record, missing, err := parsePhotonRecord(data)
	if err != nil {
		return record, err
	}
	if len(missing) > 0 {
		return record, &UnsupportedFormatError{Missing: missing}
	}
	return record, nil
}

// parsePhotonRecord decodes a record and reports which required arrays
// are absent instead of failing on them, so callers holding detector
// geometry can still complete position-less records.
func parsePhotonRecord(data []byte) (PhotonRecord, []string, error) {
	var record PhotonRecord

	var parsed photonRecordJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		return record, nil, &UnsupportedFormatError{Reason: fmt.Sprintf("not a valid event record: %v", err)}
	}

	arrays := parsed.photonArraysJSON
	if parsed.Photons != nil {
		arrays = *parsed.Photons
	}

	if parsed.EventID != nil {
		record.EventID = *parsed.EventID
		record.HasEventID = true
	}
	record.Photons = PhotonData{
		PosX:     arrays.PosX,
		PosY:     arrays.PosY,
		PosZ:     arrays.PosZ,
		StringID: arrays.StringID,
		SensorID: arrays.SensorID,
		Time:     arrays.Time,
		Charge:   arrays.Charge,
	}
	return record, missingFields(arrays), nil
}

func missingFields(arrays photonArraysJSON) []string {
	var missing []string
	if arrays.PosX == nil {
		missing = append(missing, "sensor_pos_x")
	}
	if arrays.PosY == nil {
		missing = append(missing, "sensor_pos_y")
	}
	if arrays.PosZ == nil {
		missing = append(missing, "sensor_pos_z")
	}
	if arrays.StringID == nil {
		missing = append(missing, "string_id")
	}
	if arrays.SensorID == nil {
		missing = append(missing, "sensor_id")
	}
	if arrays.Time == nil {
		missing = append(missing, "t")
	}
	return missing
}
