package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const lokiQueueSize = 256

type LokiLogEntry struct {
	Streams []LokiStream `json:"streams"`
}

type LokiStream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}

// LokiShipper pushes log lines to a Loki push endpoint from a single
// background goroutine. Lines are dropped when the queue is full.
type LokiShipper struct {
	serviceName string
	pushURL     string
	httpClient  *http.Client

	queue     chan LokiLogEntry
	wg        sync.WaitGroup
	closeOnce sync.Once
}

func NewLokiShipper(serviceName, lokiURL string) *LokiShipper {
	s := &LokiShipper{
		serviceName: serviceName,
		pushURL:     strings.TrimRight(lokiURL, "/") + "/loki/api/v1/push",
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		queue: make(chan LokiLogEntry, lokiQueueSize),
	}

	s.wg.Add(1)
	go s.run()

	return s
}

func (s *LokiShipper) Push(ctx context.Context, level zapcore.Level, msg string, fields []zap.Field) {
	entry, err := s.buildEntry(ctx, time.Now(), level, msg, fields)
	if err != nil {
		return
	}

	select {
	case s.queue <- entry:
	default:
	}
}

// Close flushes queued entries and stops the worker.
func (s *LokiShipper) Close() {
	s.closeOnce.Do(func() {
		close(s.queue)
		s.wg.Wait()
	})
}

func (s *LokiShipper) run() {
	defer s.wg.Done()

	for entry := range s.queue {
		s.send(entry)
	}
}

func (s *LokiShipper) buildEntry(ctx context.Context, ts time.Time, level zapcore.Level, msg string, fields []zap.Field) (LokiLogEntry, error) {
	enc := zapcore.NewMapObjectEncoder()
	for _, field := range fields {
		field.AddTo(enc)
	}

	line := enc.Fields
	line["timestamp"] = ts.Format(time.RFC3339Nano)
	line["level"] = level.String()
	line["message"] = msg
	line["service"] = s.serviceName

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		line["trace_id"] = span.SpanContext().TraceID().String()
		line["span_id"] = span.SpanContext().SpanID().String()
	}

	body, err := json.Marshal(line)
	if err != nil {
		return LokiLogEntry{}, err
	}

	return LokiLogEntry{
		Streams: []LokiStream{
			{
				Stream: map[string]string{
					"service": s.serviceName,
					"level":   level.String(),
				},
				Values: [][]string{
					{strconv.FormatInt(ts.UnixNano(), 10), string(body)},
				},
			},
		},
	}, nil
}

func (s *LokiShipper) send(entry LokiLogEntry) {
	body, err := json.Marshal(entry)
	if err != nil {
		return
	}

	req, err := http.NewRequest(http.MethodPost, s.pushURL, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	io.Copy(io.Discard, resp.Body)
}
