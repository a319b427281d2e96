// ABOUTME: HTTP client for the vishing simulation backend
// ABOUTME: Wraps the personas, call placement, call list, detail, and report endpoints
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/harperreed/vishnet/models"
)

const (
	// Read endpoints are quick; call placement waits on telephony setup.
	readTimeout = 15 * time.Second
	callTimeout = 30 * time.Second

	// The list endpoint omits timestamps, so each record needs a detail
	// fetch just for its sort key. Bound the fan-out.
	detailFetchLimit = 8
)

// Client talks to one backend base URL. Operations apply their own timeouts;
// nothing is retried, and PlaceCall in particular must never be retried
// silently because it triggers a real outbound phone call.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *log.Logger
}

// New creates a client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		logger:  log.Default().With("component", "backend"),
	}
}

// BaseURL returns the backend base URL this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// ListPersonas fetches the current persona snapshot. Missing keys in the
// response default to empty lists.
func (c *Client) ListPersonas(ctx context.Context) (models.PersonaSet, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, "/personas", nil)
	if err != nil {
		return models.PersonaSet{}, &models.FetchError{Op: "fetch personas", Err: err}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return models.PersonaSet{}, &models.FetchError{Op: "fetch personas", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return models.PersonaSet{}, &models.FetchError{Op: "fetch personas", Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	var envelope struct {
		Personas models.PersonaSet `json:"personas"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return models.PersonaSet{}, &models.ParseError{Op: "fetching personas", Err: err}
	}

	c.logger.Debug("fetched personas",
		"normal", len(envelope.Personas.Normal),
		"impersonation", len(envelope.Personas.Impersonation))
	return envelope.Personas, nil
}

// PlaceCall submits a call placement and returns the backend's response
// body. A non-JSON success body is tolerated and reported as {"success": true}.
func (c *Client) PlaceCall(ctx context.Context, callReq models.CallRequest) (map[string]any, error) {
	body, err := json.Marshal(callReq.Payload())
	if err != nil {
		return nil, &models.ParseError{Op: "encoding call request", Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodPost, "/call", bytes.NewReader(body))
	if err != nil {
		return nil, &models.FetchError{Op: "place call", Err: err}
	}

	c.logger.Info("placing call", "mode", callReq.Mode, "persona", callReq.Persona)
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &models.FetchError{Op: "place call", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, _ := io.ReadAll(resp.Body)
	var content map[string]any
	decoded := json.Unmarshal(raw, &content) == nil && content != nil

	if resp.StatusCode >= 400 {
		message := ""
		if decoded {
			message = extractErrorMessage(content)
		}
		if message == "" {
			message = fmt.Sprintf("Server error: HTTP %d", resp.StatusCode)
		}
		return nil, &models.CallError{Message: message}
	}

	if !decoded {
		content = map[string]any{"success": true}
	}
	return content, nil
}

// extractErrorMessage pulls a human message out of a backend error body.
// Field priority: message, then error, then detail.
func extractErrorMessage(content map[string]any) string {
	for _, key := range []string{"message", "error", "detail"} {
		if value, ok := content[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

// ListCalls fetches the call history, newest first. The list endpoint does
// not include timestamps, so each record's detail is fetched to obtain one;
// a failed detail fetch degrades that record's timestamp to 0 instead of
// failing the listing.
func (c *Client) ListCalls(ctx context.Context) ([]models.CallRecord, error) {
	listCtx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	req, err := c.newRequest(listCtx, http.MethodGet, "/calls", nil)
	if err != nil {
		return nil, &models.FetchError{Op: "fetch calls", Err: err}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &models.FetchError{Op: "fetch calls", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, &models.FetchError{Op: "fetch calls", Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	var envelope struct {
		Calls []models.CallRecord `json:"calls"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, &models.ParseError{Op: "fetching calls", Err: err}
	}

	calls := envelope.Calls
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailFetchLimit)
	for i := range calls {
		g.Go(func() error {
			detail, err := c.GetCallDetails(gctx, calls[i].CallSid)
			if err != nil {
				c.logger.Debug("detail fetch failed, treating timestamp as unknown",
					"callSid", calls[i].CallSid, "err", err)
				calls[i].TimestampMillis = 0
				return nil
			}
			calls[i].TimestampMillis = detail.TimestampMillis
			calls[i].Mode = detail.Mode
			calls[i].Persona = detail.Persona
			calls[i].VoiceID = detail.VoiceID
			return nil
		})
	}
	// Workers never return errors; per-record failures degrade instead.
	_ = g.Wait()

	sort.SliceStable(calls, func(i, j int) bool {
		return calls[i].TimestampMillis > calls[j].TimestampMillis
	})
	return calls, nil
}

// callDetailData is the wire shape of /calls/{sid} and the data block of
// /reports/{sid}. Timestamp is left loosely typed because the backend has
// been seen emitting numbers, numeric strings, and nothing at all.
type callDetailData struct {
	CallSid   string `json:"callSid"`
	Name      string `json:"name"`
	Ph        string `json:"ph"`
	Mode      string `json:"mode"`
	Persona   string `json:"persona"`
	VoiceID   string `json:"voice_id"`
	Timestamp any    `json:"timestamp"`
}

// coerceMillis interprets whatever the backend put in a timestamp field.
// Anything unusable becomes 0, which renders as "N/A".
func coerceMillis(value any) int64 {
	switch v := value.(type) {
	case float64:
		return int64(v)
	case string:
		millis, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0
		}
		return millis
	case json.Number:
		millis, err := v.Int64()
		if err != nil {
			return 0
		}
		return millis
	default:
		return 0
	}
}

// GetCallDetails fetches the full record for one call SID.
func (c *Client) GetCallDetails(ctx context.Context, callSid string) (models.CallRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, "/calls/"+url.PathEscape(callSid), nil)
	if err != nil {
		return models.CallRecord{}, &models.FetchError{Op: "fetch call details", Err: err}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return models.CallRecord{}, &models.FetchError{Op: "fetch call details", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return models.CallRecord{}, &models.NotFoundError{CallSid: callSid}
	}
	if resp.StatusCode >= 400 {
		return models.CallRecord{}, &models.FetchError{Op: "fetch call details", Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	var envelope struct {
		Success bool           `json:"success"`
		Data    callDetailData `json:"data"`
		Error   string         `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return models.CallRecord{}, &models.ParseError{Op: "fetching call details", Err: err}
	}

	if !envelope.Success {
		if envelope.Error == "" {
			return models.CallRecord{}, &models.BackendError{Message: fmt.Sprintf("backend reported failure for call %s", callSid)}
		}
		return models.CallRecord{}, &models.BackendError{Message: envelope.Error}
	}

	record := models.CallRecord{
		CallSid:         envelope.Data.CallSid,
		Name:            envelope.Data.Name,
		Phone:           envelope.Data.Ph,
		Mode:            models.Mode(envelope.Data.Mode),
		Persona:         envelope.Data.Persona,
		VoiceID:         envelope.Data.VoiceID,
		TimestampMillis: coerceMillis(envelope.Data.Timestamp),
	}
	if record.CallSid == "" {
		record.CallSid = callSid
	}
	return record, nil
}

// GetReport fetches the post-call report for one call SID. A pending report
// is a successful result whose Pending() is true, not an error.
func (c *Client) GetReport(ctx context.Context, callSid string) (models.ReportRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, "/reports/"+url.PathEscape(callSid), nil)
	if err != nil {
		return models.ReportRecord{}, &models.FetchError{Op: "fetch report", Err: err}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return models.ReportRecord{}, &models.FetchError{Op: "fetch report", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return models.ReportRecord{}, &models.NotFoundError{CallSid: callSid}
	}
	if resp.StatusCode >= 400 {
		return models.ReportRecord{}, &models.FetchError{Op: "fetch report", Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	var envelope struct {
		Success bool                `json:"success"`
		Data    models.ReportRecord `json:"data"`
		Error   string              `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return models.ReportRecord{}, &models.ParseError{Op: "fetching report", Err: err}
	}

	if !envelope.Success {
		if envelope.Error == "" {
			return models.ReportRecord{}, &models.BackendError{Message: fmt.Sprintf("backend reported failure for report %s", callSid)}
		}
		return models.ReportRecord{}, &models.BackendError{Message: envelope.Error}
	}

	return envelope.Data, nil
}
