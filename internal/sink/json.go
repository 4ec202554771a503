package sink

import (
	"context"

	"github.com/lepinkainen/artistpulse/internal/collect"
	"github.com/lepinkainen/artistpulse/internal/fileutil"
)

// DefaultJSONPath is the output file when none is configured.
const DefaultJSONPath = "aggregated_hiphop_data.json"

// JSONSink writes the records as one indented JSON array, replacing the
// file atomically.
type JSONSink struct {
	Path string
}

// NewJSONSink creates a JSON sink writing to path.
func NewJSONSink(path string) *JSONSink {
	if path == "" {
		path = DefaultJSONPath
	}
	return &JSONSink{Path: path}
}

func (s *JSONSink) Name() string {
	return "json"
}

func (s *JSONSink) Write(_ context.Context, records []collect.ArtistRecord) error {
	if records == nil {
		records = []collect.ArtistRecord{}
	}
	_, err := fileutil.WriteJSONFile(records, s.Path, true)
	return err
}
