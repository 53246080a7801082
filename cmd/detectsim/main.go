// Command detectsim is the synthetic detection producer described in
// SPEC_FULL.md's "Inbound stream" section: it stands in for the
// out-of-scope neural network by replaying a scripted list of per-frame
// boxes onto a named FIFO, one newline-delimited JSON record per line.
// The pipe-creation and reader-wait loop is grounded on
// imx500_object_detection_car_service_pipe.py's mkfifo/O_NONBLOCK dance.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// scriptRecord mirrors the wire shape internal/tracker.RecordReader reads.
type scriptRecord struct {
	Frame      int               `json:"frame"`
	Detections []scriptDetection `json:"detections"`
}

type scriptDetection struct {
	Label string    `json:"label"`
	BBox  []float64 `json:"bbox"`
}

var (
	pipePath   string
	scriptPath string
	interval   time.Duration
	waitReader time.Duration
)

func parseCliFlags() {
	flag.StringVar(&pipePath, "pipe", "/tmp/corridor-detections.fifo", "Named pipe to write detection records to")
	flag.StringVar(&scriptPath, "script", "", "Path to a JSON array of scripted per-frame detection records")
	flag.DurationVar(&interval, "interval", 100*time.Millisecond, "Delay between frames")
	flag.DurationVar(&waitReader, "wait-reader", 10*time.Second, "How long to wait for a reader to open the pipe before falling back to stderr")
	flag.Parse()
}

func main() {
	parseCliFlags()
	if scriptPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -script is required")
		os.Exit(1)
	}

	records, err := loadScript(scriptPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading script: %v\n", err)
		os.Exit(1)
	}

	out, err := openPipeForWriting(pipePath, waitReader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Pipe error: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing record for frame %d: %v\n", rec.Frame, err)
			return
		}
		time.Sleep(interval)
	}
}

func loadScript(path string) ([]scriptRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []scriptRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// openPipeForWriting creates pipePath as a FIFO if it doesn't already
// exist, then retries a non-blocking write-only open once per second
// until a reader attaches or timeout elapses, falling back to stderr so
// the producer never blocks forever with nobody listening.
func openPipeForWriting(pipePath string, timeout time.Duration) (*os.File, error) {
	if _, err := os.Stat(pipePath); os.IsNotExist(err) {
		if err := unix.Mkfifo(pipePath, 0o644); err != nil {
			return nil, fmt.Errorf("creating named pipe %s: %w", pipePath, err)
		}
		fmt.Fprintf(os.Stderr, "Created named pipe at %s\n", pipePath)
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		f, err := os.OpenFile(pipePath, os.O_WRONLY|unix.O_NONBLOCK, 0)
		if err == nil {
			fmt.Fprintf(os.Stderr, "Opened named pipe %s for writing\n", pipePath)
			return f, nil
		}
		if !errIsNoReader(err) {
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "Waiting for reader on %s...\n", pipePath)
		time.Sleep(time.Second)
	}

	fmt.Fprintf(os.Stderr, "No reader after %s, using stderr\n", timeout)
	return os.Stderr, nil
}

func errIsNoReader(err error) bool {
	pathErr, ok := err.(*os.PathError)
	return ok && pathErr.Err == syscall.ENXIO
}
