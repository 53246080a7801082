// Command tracker runs one direction's traversal tracker: it reads
// newline-delimited detection records from a named FIFO, drives the
// state machine frame by frame, and emits total_passed changes to the
// aggregator. Wiring (flag parsing, channel plumbing, signal handling,
// graceful shutdown) is grounded on the teacher's main() in
// Amenhotep19-parking-lot-counter-go.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avtrejo/corridor-counter/internal/config"
	"github.com/avtrejo/corridor-counter/internal/emitter"
	"github.com/avtrejo/corridor-counter/internal/mqtttelemetry"
	"github.com/avtrejo/corridor-counter/internal/tracker"
	"github.com/avtrejo/corridor-counter/internal/visualize"
)

// streamReopenBackoff is how long runReader waits between attempts to
// reopen the detection stream after it closes, per §7's "reopen with
// backoff".
const streamReopenBackoff = time.Second

var (
	configPath string
	display    bool
	renderDLMS int
)

func parseCliFlags() {
	flag.StringVar(&configPath, "config", "", "Path to the tracker's INI configuration file")
	flag.BoolVar(&display, "display", false, "Open a debug visualization window")
	flag.IntVar(&renderDLMS, "render-delay-ms", 20, "Milliseconds between visualization redraws")
	flag.Parse()
}

func main() {
	parseCliFlags()
	if configPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -config is required")
		os.Exit(1)
	}

	instanceID := uuid.New().String()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger = logger.With(zap.String("instance_id", instanceID))

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	stream, err := os.Open(cfg.StreamPath)
	if err != nil {
		logger.Fatal("failed to open detection stream", zap.String("path", cfg.StreamPath), zap.Error(err))
	}

	trk := tracker.New(cfg.AOIs)
	emit := emitter.New(cfg.AggregatorURL, cfg.Role, 16, logger)
	emit.SetInstanceID(instanceID)

	// sigChan carries OS shutdown signals, per the teacher's signal.Notify
	// shape.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, os.Kill, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		emit.Run()
	}()

	var telemetry *mqtttelemetry.Broadcaster
	if cfg.TelemetryBroker != "" {
		telemetry = mqtttelemetry.New(cfg.TelemetryBroker, cfg.TelemetryTopic, cfg.Role, 16, logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			telemetry.Run()
		}()
	}

	var sink *visualize.Sink
	if display {
		sink = visualize.New("corridor-counter: "+cfg.Role, cfg.AOIs)
		defer sink.Close()
	}

	recordsChan := make(chan tracker.Record, 1)
	go runReader(stream, cfg.StreamPath, logger, recordsChan)

monitor:
	for {
		select {
		case sig := <-sigChan:
			logger.Info("shutting down on signal", zap.String("signal", sig.String()))
			break monitor
		case rec := <-recordsChan:
			result := trk.Step(rec)
			if result.Passed {
				emit.Push(result.Snapshot.TotalPassed)
			}
			if telemetry != nil {
				telemetry.Push(result.Snapshot)
			}
			if sink != nil {
				sink.Push(result.Snapshot)
				if !sink.Render(renderDLMS) {
					logger.Info("visualization window closed by operator")
					break monitor
				}
			}
		}
	}

	emit.Stop()
	if telemetry != nil {
		telemetry.Stop()
	}
	wg.Wait()
}

// runReader feeds recordsChan from stream until the process exits. A
// stream close (§7: "Stream closed: reopen with backoff; unchanged
// tracker state") is not fatal — runReader closes the spent stream,
// reopens path with a backoff, and keeps going without ever touching the
// caller's *tracker.Tracker.
func runReader(stream *os.File, path string, logger *zap.Logger, recordsChan chan<- tracker.Record) {
	reader := tracker.NewRecordReader(stream, logger)
	for {
		rec, err := reader.Next()
		if err != nil {
			logger.Info("detection stream closed, reopening", zap.String("path", path), zap.Error(err))
			stream.Close()
			stream = reopenStream(path, logger)
			reader = tracker.NewRecordReader(stream, logger)
			continue
		}
		recordsChan <- rec
	}
}

// reopenStream retries opening path until it succeeds. There is no
// bounded retry count: a permission failure would already have surfaced
// at the initial, fatal open in main, so a later failure here is assumed
// to be a transient producer restart and the tracker must remain live
// across it.
func reopenStream(path string, logger *zap.Logger) *os.File {
	for {
		f, err := os.Open(path)
		if err == nil {
			return f
		}
		logger.Warn("failed to reopen detection stream, retrying", zap.String("path", path), zap.Error(err))
		time.Sleep(streamReopenBackoff)
	}
}
