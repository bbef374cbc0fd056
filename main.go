package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	sqlx "github.com/jmoiron/sqlx"

	summarystats "github.com/felixyu7/nt-summary-stats/pkg"
)

var dbConn *sqlx.DB
var configuration summarystats.Configuration

var (
	logger         Logger
	VerbosityLevel int
	DiscardErrors  bool
)

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	handlerStdOut := NewHandler(os.Stdout, opts)
	handlerStdErr := slog.NewJSONHandler(os.Stderr, opts)
	logger = Logger{
		InfoLog:  slog.New(handlerStdOut),
		ErrorLog: slog.New(handlerStdErr),
	}
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	flag.Parse()

	var err error
	configuration, err = LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		return
	}
	summarystats.SetConfiguration(configuration)
	summarystats.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	DiscardErrors = configuration.Discard
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", *configFilename)
		logger.Info(message, "main")
		printConfiguration(configuration, logger)
	}

	if configuration.MonitorPort > 0 {
		startMonitor(configuration.MonitorPort)
	}

	if !configuration.NoDB {
		dbConn, err = summarystats.ConnectToDatabase(configuration.User, configuration.Passwd,
			configuration.Host, configuration.DBName)
		if err != nil {
			message := fmt.Errorf("Error connecting to database: %w", err)
			logger.Error(message.Error())
			return
		}
		defer dbConn.Close()

		if err := summarystats.LoadDatabase(dbConn, configuration.RunNumber); err != nil {
			return
		}
	}

	file, err := os.Open(configuration.FileIn)
	if err != nil {
		message := fmt.Errorf("Error opening file: %w", err)
		logger.Error(message.Error())
		return
	}
	defer file.Close()

	if VerbosityLevel > 0 {
		evtCount, err := countEvents(file)
		if err != nil {
			message := fmt.Errorf("Error counting events: %w", err)
			logger.Error(message.Error())
			return
		}
		logger.Info(fmt.Sprintf("Number of events: %d", evtCount), "main")
	}

	var writer *summarystats.Writer
	if configuration.WriteData {
		writer, err = summarystats.NewWriter(configuration.FileOut)
		if err != nil {
			logger.Error(err.Error())
			return
		}
		defer writer.Close()
	}

	reader := NewEventReader(file)

	start := time.Now()
	runWorkers(reader, writer)
	duration := time.Since(start)

	message := fmt.Sprintf("Total time: %d ms", duration.Milliseconds())
	logger.Info(message, "main")
}
