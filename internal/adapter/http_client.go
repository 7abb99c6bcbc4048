package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/storyshare/storyshare/internal/config"
	"github.com/storyshare/storyshare/internal/logger"
	"github.com/storyshare/storyshare/models"
)

// Auth-flavoured service messages that force a logout instead of a retry.
var authFailureMessages = []string{
	"missing authentication",
	"invalid token signature",
	"token maximum age exceeded",
}

type httpStoryAPI struct {
	client *resty.Client
	logger *logger.Logger

	mu    sync.RWMutex
	token string
}

// NewHTTPStoryAPI constructs the HTTP/REST implementation of [StoryAPI].
// The transport argument lets the composition root install the caching
// interception layer; pass nil to use the default transport.
func NewHTTPStoryAPI(cfg config.ClientAPI, transport http.RoundTripper, log *logger.Logger) StoryAPI {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.RequestTimeout)
	if transport != nil {
		cli.SetTransport(transport)
	}

	return &httpStoryAPI{client: cli, logger: log}
}

func (h *httpStoryAPI) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpStoryAPI) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpStoryAPI) Register(ctx context.Context, req models.RegisterRequest) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/register")
	if err != nil {
		return classifyTransportError("register request", err)
	}

	return mapAPIError(resp)
}

func (h *httpStoryAPI) Login(ctx context.Context, req models.LoginRequest) (models.LoginResult, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/login")
	if err != nil {
		return models.LoginResult{}, classifyTransportError("login request", err)
	}
	if err = mapAPIError(resp); err != nil {
		return models.LoginResult{}, err
	}

	var body models.LoginResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return models.LoginResult{}, fmt.Errorf("decode login response: %w", err)
	}

	h.SetToken(body.LoginResult.Token)
	return body.LoginResult, nil
}

func (h *httpStoryAPI) ListStories(ctx context.Context) ([]models.Story, error) {
	resp, err := h.authedRequest(ctx, "").
		SetQueryParam("location", "1").
		Get("/stories")
	if err != nil {
		return nil, classifyTransportError("list stories request", err)
	}
	if err = mapAPIError(resp); err != nil {
		return nil, err
	}

	var body models.StoriesResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("decode stories response: %w", err)
	}

	return body.ListStory, nil
}

func (h *httpStoryAPI) CreateStory(ctx context.Context, req CreateStoryRequest) error {
	r := h.authedRequest(ctx, req.Token).
		SetFormData(map[string]string{"description": req.Description}).
		SetFileReader("photo", req.PhotoName, bytes.NewReader(req.Photo))

	if req.Lat != nil && req.Lon != nil {
		r.SetFormData(map[string]string{
			"lat": strconv.FormatFloat(*req.Lat, 'f', -1, 64),
			"lon": strconv.FormatFloat(*req.Lon, 'f', -1, 64),
		})
	}

	resp, err := r.Post("/stories")
	if err != nil {
		return classifyTransportError("create story request", err)
	}

	return mapAPIError(resp)
}

func (h *httpStoryAPI) SubscribeNotifications(ctx context.Context, sub models.PushSubscription) error {
	resp, err := h.authedRequest(ctx, "").
		SetHeader("Content-Type", "application/json").
		SetBody(sub).
		Post("/notifications/subscribe")
	if err != nil {
		return classifyTransportError("subscribe notifications request", err)
	}

	return mapAPIError(resp)
}

func (h *httpStoryAPI) UnsubscribeNotifications(ctx context.Context, endpoint string) error {
	resp, err := h.authedRequest(ctx, "").
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"endpoint": endpoint}).
		Delete("/notifications/subscribe")
	if err != nil {
		return classifyTransportError("unsubscribe notifications request", err)
	}

	return mapAPIError(resp)
}

func (h *httpStoryAPI) Ping(ctx context.Context) error {
	// Any status code proves the service answered; an auth rejection is
	// still a reachable network.
	_, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("size", "1").
		Get("/stories")
	if err != nil {
		return classifyTransportError("ping request", err)
	}

	return nil
}

func (h *httpStoryAPI) authedRequest(ctx context.Context, tokenOverride string) *resty.Request {
	req := h.client.R().SetContext(ctx)

	token := tokenOverride
	if token == "" {
		token = h.Token()
	}
	if token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func mapAPIError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	var body models.APIResponse
	_ = json.Unmarshal(resp.Body(), &body)

	message := strings.TrimSpace(body.Message)
	if message == "" {
		message = http.StatusText(resp.StatusCode())
	}

	if resp.StatusCode() == http.StatusUnauthorized || isAuthFailureMessage(message) {
		return fmt.Errorf("%w: %s", ErrUnauthorized, message)
	}

	return &APIError{Status: resp.StatusCode(), Message: message}
}

func isAuthFailureMessage(message string) bool {
	lower := strings.ToLower(message)
	for _, known := range authFailureMessages {
		if strings.Contains(lower, known) {
			return true
		}
	}
	return false
}

// classifyTransportError wraps request errors that never produced a response.
// resty surfaces these as *url.Error wrapping the net-level cause, which
// [IsConnectivityError] inspects.
func classifyTransportError(op string, err error) error {
	if IsConnectivityError(err) {
		return fmt.Errorf("%s: %w: %w", op, ErrConnectivity, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// UserIDFromToken extracts the subject claim from a StoryShare JWT without
// verifying the signature. Used only to recover the user id locally; the
// token itself stays an opaque bearer string.
func UserIDFromToken(tokenString string) (string, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return "", err
	}

	return sub, nil
}
