package simulation

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/zeusync/asteroids/internal/core/observability/log"
	"github.com/zeusync/asteroids/internal/core/render"
)

// LogSink logs a one-line summary of every frame at debug level.
type LogSink struct {
	logger log.Log
}

func NewLogSink(logger log.Log) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Consume(_ context.Context, index uint64, frame render.Frame) error {
	s.logger.Debug("frame",
		log.Uint64("index", index),
		log.Int("outlines", len(frame.Outlines)),
		log.Int("skipped", frame.Skipped),
	)
	return nil
}

// JSONSink writes each frame as one JSON object per line.
type JSONSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

type jsonFrame struct {
	Index uint64 `json:"index"`
	render.Frame
}

func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{enc: json.NewEncoder(w)}
}

func (s *JSONSink) Consume(_ context.Context, index uint64, frame render.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(jsonFrame{Index: index, Frame: frame})
}

// MultiSink fans a frame out to every sink in order and stops at the first
// error.
type MultiSink []FrameSink

func (m MultiSink) Consume(ctx context.Context, index uint64, frame render.Frame) error {
	for _, sink := range m {
		if err := sink.Consume(ctx, index, frame); err != nil {
			return err
		}
	}
	return nil
}
