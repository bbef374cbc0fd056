package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// EventReader streams photon records from a JSON-lines event file, one
// record per line. Blank lines are skipped.
type EventReader struct {
	File     *os.File
	scanner  *bufio.Scanner
	EvtCount int
}

// Event lines carrying large sensor arrays easily exceed the default
// scanner buffer.
const maxLineSize = 64 * 1024 * 1024

func NewEventReader(file *os.File) *EventReader {
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 1024*1024), maxLineSize)
	return &EventReader{File: file, scanner: scanner, EvtCount: -1}
}

// getNextEvent returns the raw bytes of the next record honoring the
// Skip and MaxEvents settings, io.EOF when no records remain.
func (r *EventReader) getNextEvent() ([]byte, error) {
	for r.scanner.Scan() {
		line := r.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		r.EvtCount++
		if r.EvtCount >= configuration.MaxEvents+configuration.Skip {
			if VerbosityLevel > 0 {
				logger.Info("Max events reached", "reader")
			}
			return nil, io.EOF
		}
		if r.EvtCount < configuration.Skip {
			if VerbosityLevel > 1 {
				message := fmt.Sprintf("Skipping event %d", r.EvtCount)
				logger.Info(message, "reader")
			}
			continue
		}

		// The scanner reuses its buffer on the next Scan
		data := make([]byte, len(line))
		copy(data, line)
		return data, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// countEvents counts the records in the file and rewinds it.
func countEvents(file *os.File) (int, error) {
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 1024*1024), maxLineSize)
	evtCount := 0
	for scanner.Scan() {
		if len(scanner.Bytes()) > 0 {
			evtCount++
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	// Go back to the beginning of the file
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	return evtCount, nil
}
