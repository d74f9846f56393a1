package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"playcoach/internal/recommendation"
	"playcoach/internal/situation"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "playcoach/internal/submission"

// Request is one submission of a situation snapshot.
type Request struct {
	ID        string
	Situation situation.Situation
}

// Recommender produces a recommendation for a request.
type Recommender interface {
	Recommend(ctx context.Context, req Request) (recommendation.Recommendation, error)
}

// Config controls how the client reaches the recommendation service.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	// Timeout bounds a single request when positive.
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client posts situations to the recommendation service.
type Client struct {
	endpoint   string
	httpClient httpDoer
	timeout    time.Duration
	logger     *zap.Logger
	tracer     trace.Tracer
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:   Endpoint(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		timeout:    cfg.Timeout,
		logger:     logger,
		tracer:     otel.Tracer(tracerName),
	}
}

// Endpoint returns the URL the client posts to.
func (c *Client) Endpoint() string { return c.endpoint }

// Recommend submits the situation and decodes the service's answer. It never
// retries. Failures after encoding are a *ServiceError, *TransportError or
// *DecodeError.
func (c *Client) Recommend(ctx context.Context, req Request) (recommendation.Recommendation, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	ctx, span := c.tracer.Start(ctx, "playcoach.recommend",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(situationAttributes(req)...),
	)
	defer span.End()

	started := time.Now()
	rec, status, err := c.do(ctx, req)
	fields := []zap.Field{
		zap.String("request_id", req.ID),
		zap.Int("status_code", status),
		zap.Duration("duration", time.Since(started)),
	}
	if status > 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, FailureMessage(err))
		c.logger.Warn("recommendation request failed", append(fields, zap.Error(err))...)
		return recommendation.Recommendation{}, err
	}

	c.logger.Info("recommendation received", append(fields,
		zap.String("pitch_call", rec.PitchCall),
		zap.Int("alignment_rows", len(rec.DefensiveAlignment)),
	)...)
	return rec, nil
}

func (c *Client) do(ctx context.Context, req Request) (recommendation.Recommendation, int, error) {
	body, err := json.Marshal(req.Situation)
	if err != nil {
		return recommendation.Recommendation{}, 0, fmt.Errorf("encode situation: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return recommendation.Recommendation{}, 0, &TransportError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if req.ID != "" {
		httpReq.Header.Set("X-Request-ID", req.ID)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	c.logger.Debug("posting situation",
		zap.String("request_id", req.ID),
		zap.String("endpoint", c.endpoint),
		zap.String("situation", req.Situation.Summary()),
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return recommendation.Recommendation{}, 0, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return recommendation.Recommendation{}, resp.StatusCode, &ServiceError{
			StatusCode: resp.StatusCode,
			Detail:     readDetail(resp.Body),
		}
	}

	rec, err := recommendation.Decode(resp.Body)
	if err != nil {
		return recommendation.Recommendation{}, resp.StatusCode, &DecodeError{Err: err}
	}
	return rec, resp.StatusCode, nil
}

// readDetail extracts {"detail": "..."} from an error body. Any read or
// parse failure yields "".
func readDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return payload.Detail
}

func situationAttributes(req Request) []attribute.KeyValue {
	s := req.Situation
	return []attribute.KeyValue{
		attribute.String("playcoach.request_id", req.ID),
		attribute.String("playcoach.offense_team", s.OffenseTeam),
		attribute.String("playcoach.defense_team", s.DefenseTeam),
		attribute.String("playcoach.half_inning", string(s.HalfInning)),
		attribute.Float64("playcoach.inning", s.Inning.Float()),
		attribute.String("playcoach.bases", s.BaseState()),
		attribute.Bool("playcoach.save_to_history", s.SaveToHistory),
	}
}
