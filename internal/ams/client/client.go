package client

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/brandonyach/amsadmin/internal/ams/config"
	"github.com/brandonyach/amsadmin/internal/ams/util"
)

// Client talks to one AMS instance. It authenticates lazily via
// /api/v2/user/loginUser and replays the session token on every request,
// both as the session-header header and as the JSESSIONID cookie the
// platform expects.
type Client struct {
	baseURL  string
	appName  string
	username string
	password string

	httpClient *http.Client

	mu            sync.Mutex
	sessionToken  string
	authenticated bool
	cacheEnabled  bool
	cache         map[string]json.RawMessage
}

func New(cfg *config.Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid AMS url %q", cfg.URL)
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	appName := segments[len(segments)-1]
	if appName == "" {
		return nil, fmt.Errorf("invalid AMS url %q: missing site path", cfg.URL)
	}

	return &Client{
		baseURL:      base,
		appName:      appName,
		username:     cfg.Username,
		password:     cfg.Password,
		httpClient:   &http.Client{Timeout: cfg.RequestTimeout},
		cacheEnabled: cfg.Cache,
		cache:        make(map[string]json.RawMessage),
	}, nil
}

func (c *Client) endpointURL(endpoint, apiVersion string) string {
	return fmt.Sprintf("%s/api/%s/%s?informat=json&format=json",
		c.baseURL, apiVersion, strings.TrimLeft(endpoint, "/"))
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	req.Header.Set("User-Agent", "amsadmin-go")
	req.Header.Set("X-APP-ID", "external.example.postman")

	c.mu.Lock()
	token := c.sessionToken
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("session-header", token)
		req.Header.Set("Cookie", "JSESSIONID="+token)
	}
}

// Login authenticates against the instance and stores the session token.
func (c *Client) Login(ctx context.Context) error {
	if c.username == "" || c.password == "" {
		return errors.New("no credentials provided: supply a username and password or set AMS_USERNAME/AMS_PASSWORD")
	}

	payload := map[string]any{
		"username": c.username,
		"password": c.password,
		"loginProperties": map[string]any{
			"appName":    c.appName,
			"clientTime": time.Now().Format("2006-01-02T15:04:05"),
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpointURL("user/loginUser", "v2"), bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return errors.New("invalid URL or login credentials")
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed with status %d", resp.StatusCode)
	}

	token := resp.Header.Get("session-header")
	if token == "" {
		return errors.New("no session header received from server")
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if apiErr := rpcException(respBody, "user/loginUser"); apiErr != nil {
		return fmt.Errorf("login failed: %s", apiErr.Message)
	}

	c.mu.Lock()
	c.sessionToken = token
	c.authenticated = true
	c.mu.Unlock()

	util.GetLogger().Info("authenticated with AMS instance", "url", c.baseURL, "site", c.appName)
	return nil
}

// fetch posts a JSON payload to an endpoint and returns the raw response.
// Responses are cached per url+endpoint+payload when asked; mutating
// endpoints must pass cache=false.
func (c *Client) fetch(ctx context.Context, endpoint, apiVersion string, payload any, cache bool) (json.RawMessage, error) {
	c.mu.Lock()
	authed := c.authenticated
	c.mu.Unlock()
	if !authed {
		if err := c.Login(ctx); err != nil {
			return nil, err
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	var cacheKey string
	if cache && c.cacheEnabled {
		sum := sha256.Sum256([]byte(c.baseURL + endpoint + string(body)))
		cacheKey = hex.EncodeToString(sum[:])
		c.mu.Lock()
		cached, ok := c.cache[cacheKey]
		c.mu.Unlock()
		if ok {
			return cached, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpointURL(endpoint, apiVersion), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Endpoint: endpoint, Status: resp.StatusCode}
	}
	if apiErr := rpcException(respBody, endpoint); apiErr != nil {
		return nil, apiErr
	}

	if cacheKey != "" {
		c.mu.Lock()
		c.cache[cacheKey] = respBody
		c.mu.Unlock()
	}
	return respBody, nil
}
