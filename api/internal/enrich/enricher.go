package enrich

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"business-eval/api/internal/analysis"
)

const DefaultCallTimeout = 10 * time.Second

var ErrRateLimited = errors.New("enrich: outbound call quota exhausted")

// StatusError is a non-success reply from an inference endpoint.
type StatusError struct {
	Engine string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Engine, e.Code, e.Body)
}

type Options struct {
	// CallTimeout bounds the single outbound call.
	CallTimeout time.Duration
	// RequestsPerMinute caps outbound calls; 0 disables the limiter.
	RequestsPerMinute int
}

// Enricher makes exactly one bounded attempt per call. It never retries.
type Enricher struct {
	engine  Engine
	timeout time.Duration
	limiter *rate.Limiter
	tracer  trace.Tracer
}

func New(engine Engine, opt Options) *Enricher {
	if opt.CallTimeout <= 0 {
		opt.CallTimeout = DefaultCallTimeout
	}
	var limiter *rate.Limiter
	if opt.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(opt.RequestsPerMinute)/60.0), opt.RequestsPerMinute)
	}
	return &Enricher{
		engine:  engine,
		timeout: opt.CallTimeout,
		limiter: limiter,
		tracer:  otel.Tracer("business-eval/enrich"),
	}
}

func (e *Enricher) EngineName() string { return e.engine.Name() }

// Analyze asks the engine for an analysis of idea and parses the reply.
func (e *Enricher) Analyze(ctx context.Context, idea analysis.BusinessIdea) (res analysis.Result, err error) {
	ctx, span := e.tracer.Start(ctx, "enrich.Analyze", trace.WithAttributes(attribute.String("enrich.engine", e.engine.Name())))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if e.limiter != nil && !e.limiter.Allow() {
		return analysis.Result{}, ErrRateLimited
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	text, err := e.engine.Generate(callCtx, BuildPrompt(idea))
	if err != nil {
		return analysis.Result{}, fmt.Errorf("%s generate: %w", e.engine.Name(), err)
	}
	return ParseAnalysis(text)
}

// FailureClass names an Analyze error for logs.
func FailureClass(err error) string {
	var pe *ParseError
	var se *StatusError
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.As(err, &pe):
		return "parse_" + pe.Reason
	case errors.As(err, &se):
		return "status"
	default:
		return "transport"
	}
}
