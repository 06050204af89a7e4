package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/fastygo/studyplanner/domain"
	"github.com/fastygo/studyplanner/repository"
)

const maxErrorBody = 512

// Config describes the remote collection resource.
type Config struct {
	// BaseURL is the collection address, e.g. http://host/api/v1/activities.
	BaseURL string
	// Token is sent as a bearer token when set.
	Token string
	// Client overrides the HTTP client; mostly for tests.
	Client *fasthttp.Client
}

// StatusError is returned for non-2xx responses and carries the message
// the server put in the body.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote store responded %d", e.StatusCode)
	}
	return fmt.Sprintf("remote store responded %d: %s", e.StatusCode, e.Message)
}

type activityClient struct {
	http  *fasthttp.Client
	base  string
	token string
}

// NewActivityClient returns a RecordStore speaking to a REST collection.
func NewActivityClient(cfg Config) (repository.RecordStore, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid remote base url %q", cfg.BaseURL)
	}
	client := cfg.Client
	if client == nil {
		client = &fasthttp.Client{Name: "studyplanner"}
	}
	return &activityClient{http: client, base: base, token: cfg.Token}, nil
}

func (c *activityClient) List(ctx context.Context) ([]domain.Activity, error) {
	var activities []domain.Activity
	if err := c.do(ctx, fasthttp.MethodGet, c.base, nil, &activities); err != nil {
		return nil, err
	}
	if activities == nil {
		activities = []domain.Activity{}
	}
	return activities, nil
}

func (c *activityClient) GetByID(ctx context.Context, id domain.ID) (*domain.Activity, error) {
	var activity domain.Activity
	if err := c.do(ctx, fasthttp.MethodGet, c.recordURL(id), nil, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

func (c *activityClient) Create(ctx context.Context, draft domain.Draft) (*domain.Activity, error) {
	var created domain.Activity
	if err := c.do(ctx, fasthttp.MethodPost, c.base, draft, &created); err != nil {
		return nil, err
	}
	if created.ID == "" {
		return nil, errors.New("remote store returned an activity without id")
	}
	return &created, nil
}

func (c *activityClient) Update(ctx context.Context, activity *domain.Activity) error {
	if activity == nil || activity.ID == "" {
		return domain.ErrInvalidPayload
	}
	return c.do(ctx, fasthttp.MethodPut, c.recordURL(activity.ID), activity, nil)
}

func (c *activityClient) Delete(ctx context.Context, id domain.ID) error {
	return c.do(ctx, fasthttp.MethodDelete, c.recordURL(id), nil, nil)
}

func (c *activityClient) recordURL(id domain.ID) string {
	return c.base + "/" + url.PathEscape(id.String())
}

func (c *activityClient) do(ctx context.Context, method, uri string, body, out interface{}) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(method)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	if err := c.send(ctx, req, resp); err != nil {
		return fmt.Errorf("%s %s: %w", method, uri, err)
	}

	status := resp.StatusCode()
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		statusErr := &StatusError{StatusCode: status, Message: errorMessage(resp.Body())}
		if status == http.StatusNotFound {
			return fmt.Errorf("%w: %w", domain.ErrActivityNotFound, statusErr)
		}
		return statusErr
	}
	if out == nil {
		return nil
	}
	return decodePayload(resp.Body(), out)
}

func (c *activityClient) send(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		return c.http.DoDeadline(req, resp, deadline)
	}
	return c.http.Do(req, resp)
}

// envelope matches the CRUD service's response wrapper. Bare JSON bodies
// from other services are accepted as well.
type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

func decodePayload(body []byte, out interface{}) error {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '{' {
		var env envelope
		if err := json.Unmarshal(body, &env); err == nil && env.Status != "" {
			body = env.Data
		}
	}
	if len(body) == 0 {
		return errors.New("remote store returned an empty body")
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode remote response: %w", err)
	}
	return nil
}

func errorMessage(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil {
		var msg string
		if len(env.Error) > 0 && json.Unmarshal(env.Error, &msg) == nil && msg != "" {
			return msg
		}
		if env.Message != "" {
			return env.Message
		}
	}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return string(body)
}
