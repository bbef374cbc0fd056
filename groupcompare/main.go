package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	summarystats "github.com/felixyu7/nt-summary-stats/pkg"
)

// groupcompare runs the two super-hit merge rules (re-anchored and
// transitively chained) over the same events across a window sweep and
// reports where they diverge. The two rules agree only while no run of
// sub-window gaps spans more than one window, so this gives a quick
// check of how sensitive a dataset is to the choice of rule.

var logger *slog.Logger

func init() {
	logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

type windowReport struct {
	WindowNs        float64
	Sensors         int
	DivergedSensors int
	AnchoredGroups  int
	ChainedGroups   int
}

func main() {
	inputFile := flag.String("input", "", "JSON-lines event file")
	windowList := flag.String("windows", "1,2,5,10", "Comma-separated grouping windows in ns")
	maxEvents := flag.Int("max-events", 1000000000, "Maximum number of events to read")
	flag.Parse()

	if *inputFile == "" {
		logger.Error("no input file given")
		os.Exit(1)
	}

	windows, err := parseWindows(*windowList)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	file, err := os.Open(*inputFile)
	if err != nil {
		logger.Error(fmt.Sprintf("error opening file: %v", err))
		os.Exit(1)
	}
	defer file.Close()

	reports := make([]windowReport, len(windows))
	for i, window := range windows {
		reports[i].WindowNs = window
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 1024*1024), 64*1024*1024)
	eventsRead := 0
	for scanner.Scan() && eventsRead < *maxEvents {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		eventsRead++

		record, err := summarystats.ParsePhotonRecord(line)
		if err != nil {
			logger.Error(fmt.Sprintf("skipping event %d: %v", eventsRead, err))
			continue
		}
		compareEvent(record.Photons, windows, reports)
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		logger.Error(fmt.Sprintf("error reading file: %v", err))
		os.Exit(1)
	}

	logger.Info(fmt.Sprintf("Compared %d events", eventsRead))
	for _, report := range reports {
		logger.Info(fmt.Sprintf(
			"window %.2f ns: %d/%d sensors diverge (re-anchored %d groups, chained %d groups)",
			report.WindowNs, report.DivergedSensors, report.Sensors,
			report.AnchoredGroups, report.ChainedGroups))
	}
}

func compareEvent(photons summarystats.PhotonData, windows []float64, reports []windowReport) {
	series := make(map[summarystats.SensorKey][2][]float64)
	for i := range photons.Time {
		key := summarystats.SensorKey{StringID: photons.StringID[i], SensorID: photons.SensorID[i]}
		entry := series[key]
		entry[0] = append(entry[0], photons.Time[i])
		if photons.Charge != nil {
			entry[1] = append(entry[1], photons.Charge[i])
		} else {
			entry[1] = append(entry[1], 1.0)
		}
		series[key] = entry
	}

	for i, window := range windows {
		for _, entry := range series {
			anchoredTimes, _, err := summarystats.GroupHits(entry[0], entry[1], window)
			if err != nil {
				logger.Error(err.Error())
				continue
			}
			chainedTimes, _, err := summarystats.GroupHitsChained(entry[0], entry[1], window)
			if err != nil {
				logger.Error(err.Error())
				continue
			}
			reports[i].Sensors++
			reports[i].AnchoredGroups += len(anchoredTimes)
			reports[i].ChainedGroups += len(chainedTimes)
			if !equalSlices(anchoredTimes, chainedTimes) {
				reports[i].DivergedSensors++
			}
		}
	}
}

func parseWindows(list string) ([]float64, error) {
	parts := strings.Split(list, ",")
	windows := make([]float64, 0, len(parts))
	for _, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid window %q: %w", part, err)
		}
		windows = append(windows, value)
	}
	return windows, nil
}

func equalSlices(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
