package main

import (
	"encoding/json"
	"fmt"
	"os"

	summarystats "github.com/felixyu7/nt-summary-stats/pkg"
)

func LoadConfiguration(filename string) (summarystats.Configuration, error) {
	var config summarystats.Configuration

	// Set default values
	config.MaxEvents = 1000000000
	config.Verbosity = 0
	config.RunNumber = 0
	config.GroupingWindowNs = 0
	config.NoDB = true
	config.Discard = true
	config.Skip = 0
	config.Host = ""
	config.User = ""
	config.Passwd = ""
	config.DBName = ""
	config.NumWorkers = 1
	config.WriteData = true
	config.CompressionLevel = 4
	config.MonitorPort = 0

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}

	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	return config, nil
}

func printConfiguration(config summarystats.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("Input file: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("Output file: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("Run number: %d", config.RunNumber), "config")
	logger.Info(fmt.Sprintf("Grouping window: %f ns", config.GroupingWindowNs), "config")
	logger.Info(fmt.Sprintf("Max events: %d", config.MaxEvents), "config")
	logger.Info(fmt.Sprintf("Skip events: %d", config.Skip), "config")
	logger.Info(fmt.Sprintf("Workers: %d", config.NumWorkers), "config")
	logger.Info(fmt.Sprintf("Use database: %t", !config.NoDB), "config")
}
