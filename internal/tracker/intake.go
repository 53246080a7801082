package tracker

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/avtrejo/corridor-counter/internal/geometry"
	"go.uber.org/zap"
)

// rawDetection mirrors one {"label": "...", "bbox": [x,y,w,h]} entry on
// the wire.
type rawDetection struct {
	Label string    `json:"label"`
	BBox  []float64 `json:"bbox"`
}

// rawRecord mirrors one inbound JSON line. Frame is a pointer so a record
// missing the field can be distinguished from one explicitly carrying 0.
type rawRecord struct {
	Frame      *int           `json:"frame"`
	Detections []rawDetection `json:"detections"`
}

// RecordReader implements §4.1 Detection Intake: reads one
// newline-delimited JSON record at a time from a byte stream, dropping
// records with a missing frame field and failing softly (logging and
// continuing) on malformed lines.
type RecordReader struct {
	scanner *bufio.Scanner
	logger  *zap.Logger
}

// NewRecordReader wraps r as a line-oriented detection record source.
func NewRecordReader(r io.Reader, logger *zap.Logger) *RecordReader {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &RecordReader{scanner: s, logger: logger}
}

// Next returns the next well-formed record, skipping malformed or
// frame-less lines along the way. Once the stream is exhausted it returns
// ErrStreamClosed for a clean close (§7 "Stream closed: reopen with
// backoff") or the underlying scanner error for a genuine I/O failure.
func (rr *RecordReader) Next() (Record, error) {
	for rr.scanner.Scan() {
		line := bytes.TrimSpace(rr.scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var raw rawRecord
		if err := json.Unmarshal(line, &raw); err != nil {
			rr.logger.Warn("malformed detection record, skipping", zap.Error(err))
			continue
		}
		if raw.Frame == nil {
			rr.logger.Debug("detection record missing frame field, dropping")
			continue
		}

		rec := Record{Frame: *raw.Frame}
		for _, d := range raw.Detections {
			if !isTrackedLabel(d.Label) {
				continue
			}
			if len(d.BBox) != 4 {
				rr.logger.Warn("detection with malformed bbox, skipping", zap.String("label", d.Label))
				continue
			}
			rec.Detections = append(rec.Detections, Detection{
				Label: d.Label,
				Box:   geometry.Box{X: d.BBox[0], Y: d.BBox[1], W: d.BBox[2], H: d.BBox[3]},
			})
		}
		return rec, nil
	}
	if err := rr.scanner.Err(); err != nil {
		return Record{}, err
	}
	return Record{}, ErrStreamClosed
}

// ErrStreamClosed is returned by Next once the underlying stream reaches a
// clean EOF, distinguishing that case (reopen with backoff, per §7) from a
// decode or I/O failure.
var ErrStreamClosed = errors.New("detection stream closed")
