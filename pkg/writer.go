package summarystats

import (
	"errors"
	"fmt"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

// Writer appends reduced events to an HDF5 file. Layout:
//
//	/Run/events     event number, sensor count, first output row
//	/Run/runInfo    run number
//	/Summary/sensors    (event number, string id, sensor id) per row
//	/Summary/positions  float64 rows of x, y, z
//	/Summary/stats      float64 rows of the 9 summary statistics
//
// The sensors, positions and stats datasets are row-aligned; an event's
// rows start at its first_row entry in the event table.
type Writer struct {
	File         *hdf5.File
	Filename     string
	RunGroup     *hdf5.Group
	SummaryGroup *hdf5.Group
	EventTable   *hdf5.Dataset
	RunInfoTable *hdf5.Dataset
	SensorTable  *hdf5.Dataset
	Positions    *hdf5.Dataset
	Stats        *hdf5.Dataset
	EvtCounter   int
	RowCounter   int
	wroteRunInfo bool
}

func NewWriter(filename string) (*Writer, error) {
	writer := &Writer{}
	file, err := openFile(filename)
	if err != nil {
		return nil, err
	}
	writer.File = file
	writer.Filename = filename
	writer.RunGroup = createGroup(writer.File, "Run")
	writer.SummaryGroup = createGroup(writer.File, "Summary")
	writer.EventTable = createTable(writer.RunGroup, "events", EventDataHDF5{})
	writer.RunInfoTable = createTable(writer.RunGroup, "runInfo", RunInfoHDF5{})
	writer.SensorTable = createTable(writer.SummaryGroup, "sensors", SensorKeyHDF5{})
	writer.Positions = createDoubleArray(writer.SummaryGroup, "positions", 3)
	writer.Stats = createDoubleArray(writer.SummaryGroup, "stats", NumStats)
	return writer, nil
}

// WriteEvent appends one reduced event. Rows keep the deterministic
// per-event key order produced by the aggregator, whatever order events
// arrive in.
func (w *Writer) WriteEvent(event *EventSummary) {
	if !w.wroteRunInfo {
		writeEntryToTable(w.RunInfoTable, RunInfoHDF5{run_number: event.RunNumber}, 0)
		w.wroteRunInfo = true
	}

	nSensors := event.NumSensors()
	writeEntryToTable(w.EventTable, EventDataHDF5{
		evt_number: int32(event.EventID),
		n_sensors:  int32(nSensors),
		first_row:  int32(w.RowCounter),
	}, w.EvtCounter)
	w.EvtCounter++

	if nSensors == 0 {
		return
	}

	// The array MUST be allocated at creation, if not, HDF5 will panic
	// doing appends will not work
	sensorRows := make([]SensorKeyHDF5, nSensors)
	positionRows := make([]float64, nSensors*3)
	statRows := make([]float64, nSensors*NumStats)
	for i, key := range event.Keys {
		sensorRows[i] = SensorKeyHDF5{
			evt_number: int32(event.EventID),
			string_id:  key.StringID,
			sensor_id:  key.SensorID,
		}
		copy(positionRows[i*3:], event.Positions[i][:])
		copy(statRows[i*NumStats:], event.Stats[i][:])
	}

	writeArrayToTable(w.SensorTable, &sensorRows, w.RowCounter)
	writeDoubleRows(w.Positions, &positionRows, w.RowCounter, nSensors, 3)
	writeDoubleRows(w.Stats, &statRows, w.RowCounter, nSensors, NumStats)
	w.RowCounter += nSensors
}

func (w *Writer) Close() error {
	logger.Info(fmt.Sprintf("Closing file %s", w.Filename), "writer")
	var errs []error

	if err := w.EventTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing event table: %w", err))
	}
	if err := w.RunInfoTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing run info table: %w", err))
	}
	if err := w.SensorTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing sensor table: %w", err))
	}
	if err := w.Positions.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing positions: %w", err))
	}
	if err := w.Stats.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing stats: %w", err))
	}
	if err := w.RunGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing run group: %w", err))
	}
	if err := w.SummaryGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing summary group: %w", err))
	}
	if err := w.File.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing file: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
