package mothership

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bnema/alignment-console/internal/domain"
	"github.com/bnema/alignment-console/internal/ports"
)

const (
	maxResponseBytes    = 1 << 20
	correlationIDHeader = "X-Correlation-ID"
)

type API struct {
	BaseURL      string
	StatusPath   string
	ChatPath     string
	BriefingPath string
}

func DefaultAPI(baseURL string) API {
	return API{
		BaseURL:      baseURL,
		StatusPath:   "/status",
		ChatPath:     "/chat",
		BriefingPath: "/briefing",
	}
}

type Client struct {
	API            API
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.MothershipClient = Client{}

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

func (e *StatusError) Unwrap() error {
	return domain.ErrRequestFailed
}

// RequestError reports a transport or decoding failure.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return e.Err.Error()
}

func (e *RequestError) Unwrap() []error {
	return []error{domain.ErrRequestFailed, e.Err}
}

type statusResponse struct {
	Crew        []agentPayload `json:"crew"`
	Logs        []logPayload   `json:"logs"`
	ActiveAlert string         `json:"active_alert"`
}

type agentPayload struct {
	ID       string  `json:"id"`
	Status   string  `json:"status"`
	Location *string `json:"location"`
}

type logPayload struct {
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
	Message   string `json:"message"`
}

type chatRequest struct {
	AgentID     string `json:"agent_id"`
	UserMessage string `json:"user_message"`
}

type briefingResponse struct {
	Briefing string `json:"briefing"`
}

func (c Client) FetchStatus(ctx context.Context) (domain.WorldSnapshot, error) {
	var payload statusResponse
	if err := c.doJSON(ctx, http.MethodGet, c.API.StatusPath, nil, nil, &payload); err != nil {
		return domain.WorldSnapshot{}, fmt.Errorf("fetch status: %w", err)
	}

	return payload.toSnapshot(), nil
}

func (c Client) SendChat(ctx context.Context, cmd domain.CommandEnvelope) error {
	if cmd.AgentID == "" {
		return errors.New("send chat: agent id is required")
	}

	body, err := json.Marshal(chatRequest{AgentID: string(cmd.AgentID), UserMessage: cmd.Message})
	if err != nil {
		return fmt.Errorf("encode chat request: %w", err)
	}

	headers := map[string]string{}
	if cmd.CorrelationID != "" {
		headers[correlationIDHeader] = cmd.CorrelationID
	}

	if err := c.doJSON(ctx, http.MethodPost, c.API.ChatPath, body, headers, nil); err != nil {
		return fmt.Errorf("send chat: %w", err)
	}
	return nil
}

func (c Client) FetchBriefing(ctx context.Context) (string, error) {
	var payload briefingResponse
	if err := c.doJSON(ctx, http.MethodPost, c.API.BriefingPath, nil, nil, &payload); err != nil {
		return "", fmt.Errorf("fetch briefing: %w", err)
	}
	if payload.Briefing == "" {
		return "", fmt.Errorf("fetch briefing: %w", &RequestError{Err: errors.New("briefing response missing text")})
	}

	return payload.Briefing, nil
}

func (c Client) doJSON(ctx context.Context, method, path string, body []byte, headers map[string]string, out any) error {
	endpoint, err := buildAPIURL(c.API.BaseURL, path)
	if err != nil {
		return &RequestError{Err: err}
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(requestCtx, method, endpoint, reader)
	if err != nil {
		return &RequestError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return &RequestError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return &StatusError{Code: resp.StatusCode}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return &RequestError{Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 10 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func (p statusResponse) toSnapshot() domain.WorldSnapshot {
	snapshot := domain.WorldSnapshot{
		Crew:        make([]domain.Agent, 0, len(p.Crew)),
		Logs:        make([]domain.LogEntry, 0, len(p.Logs)),
		ActiveAlert: p.ActiveAlert,
	}
	if snapshot.ActiveAlert == "" {
		snapshot.ActiveAlert = domain.NoActiveAlert
	}

	for _, agent := range p.Crew {
		location := ""
		if agent.Location != nil {
			location = *agent.Location
		}
		snapshot.Crew = append(snapshot.Crew, domain.Agent{
			ID:       domain.AgentID(agent.ID),
			Status:   domain.AgentStatus(agent.Status),
			Location: location,
		})
	}

	for _, entry := range p.Logs {
		snapshot.Logs = append(snapshot.Logs, domain.LogEntry{
			Timestamp:  entry.Timestamp,
			Source:     entry.Source,
			Message:    entry.Message,
			Provenance: domain.ProvenanceAuthoritative,
		})
	}

	return snapshot
}

func buildAPIURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		return "", errors.New("api base url is required")
	}
	if path == "" {
		return "", errors.New("api path is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	endpoint, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	return endpoint.String(), nil
}
