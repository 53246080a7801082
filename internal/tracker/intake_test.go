package tracker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordReaderParsesDetections(t *testing.T) {
	in := `{"frame": 1, "detections": [{"label": "car", "bbox": [15.0, 180.0, 40.0, 80.0]}]}` + "\n"
	rr := NewRecordReader(strings.NewReader(in), nil)

	rec, err := rr.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Frame)
	if assert.Len(t, rec.Detections, 1) {
		assert.Equal(t, "car", rec.Detections[0].Label)
		assert.Equal(t, 15.0, rec.Detections[0].Box.X)
	}

	_, err = rr.Next()
	assert.ErrorIs(t, err, ErrStreamClosed)
}

func TestRecordReaderSkipsBlankAndMalformedLines(t *testing.T) {
	in := "\n" +
		"not json at all\n" +
		`{"frame": 2, "detections": []}` + "\n"
	rr := NewRecordReader(strings.NewReader(in), nil)

	rec, err := rr.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Frame)
}

func TestRecordReaderDropsFramelessRecord(t *testing.T) {
	in := `{"detections": []}` + "\n" +
		`{"frame": 5, "detections": []}` + "\n"
	rr := NewRecordReader(strings.NewReader(in), nil)

	rec, err := rr.Next()
	require.NoError(t, err)
	assert.Equal(t, 5, rec.Frame)
}

func TestRecordReaderFiltersUntrackedLabels(t *testing.T) {
	in := `{"frame": 1, "detections": [{"label": "pedestrian", "bbox": [1,2,3,4]}, {"label": "Service_car", "bbox": [5,6,7,8]}]}` + "\n"
	rr := NewRecordReader(strings.NewReader(in), nil)

	rec, err := rr.Next()
	require.NoError(t, err)
	if assert.Len(t, rec.Detections, 1) {
		assert.Equal(t, "Service_car", rec.Detections[0].Label)
	}
}

func TestRecordReaderSkipsMalformedBBox(t *testing.T) {
	in := `{"frame": 1, "detections": [{"label": "car", "bbox": [1,2,3]}, {"label": "car", "bbox": [1,2,3,4]}]}` + "\n"
	rr := NewRecordReader(strings.NewReader(in), nil)

	rec, err := rr.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Frame)
	assert.Len(t, rec.Detections, 1, "only the malformed detection is dropped, not the whole record")
}

func TestRecordReaderEOFOnEmptyStream(t *testing.T) {
	rr := NewRecordReader(strings.NewReader(""), nil)
	_, err := rr.Next()
	assert.ErrorIs(t, err, ErrStreamClosed)
}
