package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// CallRecord captures one model call for the audit log.
type CallRecord struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// AuditSink receives a record of every model call. The store implements
// this; tests use an in-memory sink.
type AuditSink interface {
	RecordCall(ctx context.Context, rec CallRecord) error
}

// AuditProvider is a decorator that records every call to the sink and
// the logger. Recording failures never fail the request.
type AuditProvider struct {
	inner  Provider
	sink   AuditSink
	logger *zap.Logger
}

// WithAudit wraps a Provider with call auditing. A nil sink disables
// persistence but keeps debug logging.
func WithAudit(p Provider, sink AuditSink, logger *zap.Logger) Provider {
	return &AuditProvider{inner: p, sink: sink, logger: logger}
}

func (a *AuditProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := a.inner.Generate(ctx, req)

	rec := CallRecord{
		Provider:  a.inner.ModelID(),
		Model:     a.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
		rec.Model = resp.Model
	}
	if err != nil {
		rec.ErrorMessage = err.Error()
	}

	a.logger.Debug("llm call",
		zap.String("purpose", purpose),
		zap.String("model", rec.Model),
		zap.Int64("latency_ms", rec.LatencyMs),
		zap.Bool("success", rec.Success),
	)

	if a.sink != nil {
		if recErr := a.sink.RecordCall(ctx, rec); recErr != nil {
			a.logger.Warn("failed to record llm call", zap.Error(recErr))
		}
	}

	return resp, err
}

func (a *AuditProvider) ModelID() string {
	return a.inner.ModelID()
}
