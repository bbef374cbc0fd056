package summarystats

type Configuration struct {
	MaxEvents        int     `json:"max_events"`
	Verbosity        int     `json:"verbosity"`
	FileIn           string  `json:"file_in"`
	FileOut          string  `json:"file_out"`
	RunNumber        int     `json:"run_number"`
	GroupingWindowNs float64 `json:"grouping_window_ns"`
	NoDB             bool    `json:"no_db"`
	Discard          bool    `json:"discard"`
	Skip             int     `json:"skip"`
	Host             string  `json:"host"`
	User             string  `json:"user"`
	Passwd           string  `json:"pass"`
	DBName           string  `json:"dbname"`
	NumWorkers       int     `json:"num_workers"`
	WriteData        bool    `json:"write_data"`
	CompressionLevel int     `json:"compression_level"`
	MonitorPort      int     `json:"monitor_port"`
}

var configuration Configuration

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}
