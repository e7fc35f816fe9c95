package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brandonyach/amsadmin/internal/ams/config"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAMS is an in-process stand-in for an AMS instance serving the three
// endpoints the client touches.
type fakeAMS struct {
	server *httptest.Server

	loginCalls  int
	searchCalls int
	saveCalls   int

	lastSessionHeader string
	lastSavedPerson   map[string]any
	rejectSaves       bool
}

func newFakeAMS(t *testing.T) *fakeAMS {
	t.Helper()
	f := &fakeAMS{}
	e := echo.New()

	e.POST("/site/api/v2/user/loginUser", func(c echo.Context) error {
		f.loginCalls++
		c.Response().Header().Set("session-header", "sess-abc123")
		return c.JSON(http.StatusOK, map[string]any{"applicationId": 1})
	})

	e.POST("/site/api/v1/usersearch", func(c echo.Context) error {
		f.searchCalls++
		f.lastSessionHeader = c.Request().Header.Get("session-header")
		return c.JSON(http.StatusOK, map[string]any{
			"results": []map[string]any{
				{
					"id": 4512, "firstName": "Riley", "lastName": "Jones",
					"username": "rjones", "emailAddress": "riley@example.com",
				},
				{
					"id": 4513, "firstName": "Samantha", "lastName": "Fields",
					"username": "sfields", "emailAddress": "sam@example.com",
				},
			},
		})
	})

	e.POST("/site/api/v2/person/save", func(c echo.Context) error {
		f.saveCalls++
		var body struct {
			Person map[string]any `json:"person"`
		}
		if err := c.Bind(&body); err != nil {
			return err
		}
		f.lastSavedPerson = body.Person
		if f.rejectSaves {
			return c.JSON(http.StatusOK, map[string]any{
				"__is_rpc_exception__": true,
				"type":                 "ValidationException",
				"value":                map[string]any{"detailMessage": "email address already in use"},
			})
		}
		return c.JSON(http.StatusOK, map[string]any{"id": body.Person["id"]})
	})

	f.server = httptest.NewServer(e)
	t.Cleanup(f.server.Close)
	return f
}

func testConfig(url string) *config.Config {
	return &config.Config{
		URL:            url,
		Username:       "admin",
		Password:       "pw",
		RequestTimeout: 5 * time.Second,
		Workers:        1,
		Cache:          true,
	}
}

func newTestClient(t *testing.T, f *fakeAMS) *Client {
	t.Helper()
	c, err := New(testConfig(f.server.URL + "/site"))
	require.NoError(t, err)
	return c
}

func TestNewRejectsBadURL(t *testing.T) {
	for _, url := range []string{"", "not a url", "https://"} {
		_, err := New(testConfig(url))
		assert.Error(t, err, url)
	}
}

func TestLoginStoresSession(t *testing.T) {
	f := newFakeAMS(t)
	c := newTestClient(t, f)

	require.NoError(t, c.Login(context.Background()))
	assert.Equal(t, 1, f.loginCalls)

	// Subsequent requests replay the session token.
	_, err := c.FetchAllUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sess-abc123", f.lastSessionHeader)
}

func TestLoginInvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	c, err := New(testConfig(srv.URL + "/site"))
	require.NoError(t, err)
	err = c.Login(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid URL or login credentials")
}

func TestLoginRequiresSessionHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	c, err := New(testConfig(srv.URL + "/site"))
	require.NoError(t, err)
	err = c.Login(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no session header")
}

func TestFetchAllUsers(t *testing.T) {
	f := newFakeAMS(t)
	c := newTestClient(t, f)

	users, err := c.FetchAllUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "4512", users[0].ID)
	assert.Equal(t, "Riley Jones", users[0].About())
	assert.Equal(t, "sfields", users[1].Username)

	// The client logged in lazily before the first fetch.
	assert.Equal(t, 1, f.loginCalls)
}

func TestFetchAllUsersIsCached(t *testing.T) {
	f := newFakeAMS(t)
	c := newTestClient(t, f)

	_, err := c.FetchAllUsers(context.Background())
	require.NoError(t, err)
	_, err = c.FetchAllUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, f.searchCalls)
}

func TestSavePerson(t *testing.T) {
	f := newFakeAMS(t)
	c := newTestClient(t, f)

	person := map[string]any{"id": "4512", "emailAddress": "riley.new@example.com"}
	require.NoError(t, c.SavePerson(context.Background(), person))
	assert.Equal(t, "riley.new@example.com", f.lastSavedPerson["emailAddress"])

	// Saves are never served from cache.
	require.NoError(t, c.SavePerson(context.Background(), person))
	assert.Equal(t, 2, f.saveCalls)
}

func TestSavePersonRequiresID(t *testing.T) {
	f := newFakeAMS(t)
	c := newTestClient(t, f)

	err := c.SavePerson(context.Background(), map[string]any{"emailAddress": "x@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required field 'id'")
	assert.Equal(t, 0, f.saveCalls)
}

func TestSavePersonRPCException(t *testing.T) {
	f := newFakeAMS(t)
	f.rejectSaves = true
	c := newTestClient(t, f)

	err := c.SavePerson(context.Background(), map[string]any{"id": "4512", "emailAddress": "dup@example.com"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "ValidationException", apiErr.Type)
	assert.Contains(t, apiErr.Message, "already in use")
}

func TestFetchSurfacesHTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/site/api/v2/user/loginUser" {
			w.Header().Set("session-header", "sess-abc123")
			w.Write([]byte(`{}`))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	c, err := New(testConfig(srv.URL + "/site"))
	require.NoError(t, err)

	_, err = c.FetchAllUsers(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
}
