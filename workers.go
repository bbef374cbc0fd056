package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	summarystats "github.com/felixyu7/nt-summary-stats/pkg"
)

// WorkerData carries one raw event record and its sequence number in the
// input file.
type WorkerData struct {
	Data     []byte
	Sequence int64
}

func runWorkers(reader *EventReader, writer *summarystats.Writer) {
	jobs := make(chan WorkerData, configuration.NumWorkers)
	results := make(chan summarystats.EventSummary, 1000)

	var wg sync.WaitGroup
	for w := 1; w <= configuration.NumWorkers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			worker(id, jobs, results)
		}(w)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	go sendEventsToWorkers(reader, jobs)
	processWorkerResults(results, writer)
}

// worker normalizes and reduces events; independent events have no
// shared state, so any number of workers may run.
func worker(id int, jobs <-chan WorkerData, results chan<- summarystats.EventSummary) {
	defer func() {
		if r := recover(); r != nil {
			message := fmt.Sprintf("Worker %d recovered from panic: %v", id, r)
			logger.Error(message)
			results <- summarystats.EventSummary{Error: true}
		}
	}()

	for job := range jobs {
		if VerbosityLevel > 1 {
			message := fmt.Sprintf("Worker %d processing event %d", id, job.Sequence)
			logger.Info(message, "worker")
		}
		results <- summarizeEvent(job)
	}
}

func summarizeEvent(job WorkerData) summarystats.EventSummary {
	record, err := summarystats.ParsePhotonRecordWithGeometry(job.Data, summarystats.Geometry())
	if err != nil {
		message := fmt.Errorf("error parsing event %d: %w", job.Sequence, err)
		logger.Error(message.Error())
		eventsFailed.Inc()
		return summarystats.EventSummary{Error: true}
	}
	if !record.HasEventID {
		record.EventID = job.Sequence
	}

	summary, err := summarystats.SummarizeEvent(record, configuration.GroupingWindowNs)
	if err != nil {
		message := fmt.Errorf("error processing event %d: %w", record.EventID, err)
		logger.Error(message.Error())
		eventsFailed.Inc()
		return summarystats.EventSummary{Error: true}
	}
	summary.RunNumber = int32(configuration.RunNumber)
	return summary
}

func sendEventsToWorkers(reader *EventReader, jobs chan<- WorkerData) {
	for {
		data, err := reader.getNextEvent()
		if err != nil {
			if err != io.EOF {
				message := fmt.Errorf("error reading event: %w", err)
				logger.Error(message.Error())
			}
			break
		}
		jobs <- WorkerData{Data: data, Sequence: int64(reader.EvtCount)}
	}
	close(jobs)
}

func processWorkerResults(results chan summarystats.EventSummary, writer *summarystats.Writer) {
	evtsProcessed := 0
	var totalTime int64 = 0
	for event := range results {
		if event.Error && !DiscardErrors {
			logger.Error(fmt.Sprintf("Stopping on failed event after %d events", evtsProcessed))
			return
		}

		start := time.Now()
		if configuration.WriteData && !event.Error {
			writer.WriteEvent(&event)
			eventWriteDuration.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
		}
		if !event.Error {
			evtsProcessed++
			eventsProcessed.Inc()
			sensorsSummarized.Add(float64(event.NumSensors()))
		}

		totalTime += time.Since(start).Milliseconds()
	}
	if VerbosityLevel > 0 {
		logger.Info(fmt.Sprintf("Processed events: %d", evtsProcessed), "main")
		logger.Info(fmt.Sprintf("Total time writing: %d ms", totalTime), "main")
	}
}
