package summarystats

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
)

// GeometryMap holds the detector geometry for one run: the position of
// every optical module, keyed by (string id, sensor id).
type GeometryMap map[SensorKey][3]float64

var geometry GeometryMap

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

// LoadDatabase reads the geometry valid for runNumber and keeps it for
// record completion. Records that carry their own position arrays never
// consult it.
func LoadDatabase(dbConn *sqlx.DB, runNumber int) error {
	var err error
	geometry, err = getGeometryFromDB(dbConn, runNumber)
	if err != nil {
		errMessage := fmt.Errorf("error getting geometry from database: %w", err)
		logger.Error(errMessage.Error())
		return errMessage
	}
	return nil
}

// Geometry returns the currently loaded geometry map, nil when no
// database has been loaded.
func Geometry() GeometryMap {
	return geometry
}

type geometryEntry struct {
	StringID int32   `db:"StringID"`
	SensorID int32   `db:"SensorID"`
	X        float64 `db:"X"`
	Y        float64 `db:"Y"`
	Z        float64 `db:"Z"`
}

func getGeometryFromDB(db *sqlx.DB, runNumber int) (GeometryMap, error) {
	query := "SELECT StringID, SensorID, X, Y, Z FROM SensorPosition WHERE MinRun <= %d and MaxRun >= %d"
	query = fmt.Sprintf(query, runNumber, runNumber)

	if configuration.Verbosity > 0 {
		logger.Info("Sensor geometry read from DB", "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s", query)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(query)
	if err != nil {
		errMessage := fmt.Errorf("error querying database: %w", err)
		return nil, errMessage
	}
	defer rows.Close()

	geom := make(GeometryMap)
	for rows.Next() {
		result := geometryEntry{}
		err := rows.StructScan(&result)
		if err != nil {
			errMessage := fmt.Errorf("error scanning DB row: %w", err)
			return nil, errMessage
		}
		key := SensorKey{StringID: result.StringID, SensorID: result.SensorID}
		geom[key] = [3]float64{result.X, result.Y, result.Z}
	}
	return geom, nil
}

// ParsePhotonRecordWithGeometry parses a record like ParsePhotonRecord,
// but a record missing only its position arrays is completed from the
// geometry map: every hit gets the position of its sensor. Sensors absent
// from the geometry still make the record unsupported.
func ParsePhotonRecordWithGeometry(data []byte, geom GeometryMap) (PhotonRecord, error) {
	record, missing, err := parsePhotonRecord(data)
	if err != nil {
		return record, err
	}
	if len(missing) == 0 {
		return record, nil
	}
	if geom == nil || !onlyPositionsMissing(missing) {
		return record, &UnsupportedFormatError{Missing: missing}
	}

	photons := &record.Photons
	n := len(photons.Time)
	photons.PosX = make([]float64, n)
	photons.PosY = make([]float64, n)
	photons.PosZ = make([]float64, n)
	for i := 0; i < n; i++ {
		key := SensorKey{StringID: photons.StringID[i], SensorID: photons.SensorID[i]}
		pos, ok := geom[key]
		if !ok {
			reason := fmt.Sprintf("sensor (%d, %d) not present in the run geometry", key.StringID, key.SensorID)
			return record, &UnsupportedFormatError{Reason: reason}
		}
		photons.PosX[i] = pos[0]
		photons.PosY[i] = pos[1]
		photons.PosZ[i] = pos[2]
	}
	return record, nil
}

func onlyPositionsMissing(missing []string) bool {
	for _, name := range missing {
		switch name {
		case "sensor_pos_x", "sensor_pos_y", "sensor_pos_z":
		default:
			return false
		}
	}
	return true
}
