package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"floorplan-studio/internal/common/metrics"
	"floorplan-studio/internal/planner/generator"
	"floorplan-studio/internal/planner/service"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	app      *fiber.App
	sessions *service.SessionManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	sessions := service.NewSessionManager(context.Background(), generator.NewSimulated(0), nil)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	Register(app, sessions, metrics.New())
	return &testServer{app: app, sessions: sessions}
}

func (s *testServer) do(t *testing.T, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, data
}

func (s *testServer) session(t *testing.T) string {
	t.Helper()
	resp, body := s.do(t, http.MethodPost, "/api/sessions", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var view service.View
	require.NoError(t, json.Unmarshal(body, &view))
	require.NotEmpty(t, view.ID)
	return view.ID
}

func (s *testServer) setField(t *testing.T, id, field, value string) fieldResponse {
	t.Helper()
	payload, _ := json.Marshal(fieldRequest{Value: &value})
	resp, body := s.do(t, http.MethodPut, "/api/sessions/"+id+"/fields/"+field, string(payload))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var out fieldResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func (s *testServer) fill(t *testing.T, id string) {
	t.Helper()
	s.setField(t, id, "squareFeet", "2500")
	s.setField(t, id, "bedrooms", "3")
	s.setField(t, id, "bathrooms", "2")
	s.setField(t, id, "garages", "2")
}

func (s *testServer) wait(t *testing.T, id string) {
	t.Helper()
	st, err := s.sessions.Get(id)
	require.NoError(t, err)
	st.Wait()
}

func TestIndex_CreatesSession(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), "Generate Floor Plan")
	assert.Equal(t, 1, s.sessions.Len())

	// A reload starts over with a new session.
	s.do(t, http.MethodGet, "/", "")
	assert.Equal(t, 2, s.sessions.Len())
}

func TestSetField(t *testing.T) {
	s := newTestServer(t)
	id := s.session(t)

	out := s.setField(t, id, "bedrooms", "3")
	assert.True(t, out.Accepted)
	assert.Equal(t, "3", out.Value)

	out = s.setField(t, id, "bedrooms", "3b")
	assert.False(t, out.Accepted)
	assert.Equal(t, "3", out.Value)
}

func TestSetField_OutOfOrderKeystrokes(t *testing.T) {
	s := newTestServer(t)
	id := s.session(t)
	path := "/api/sessions/" + id + "/fields/squareFeet"

	// The second keystroke arrives first.
	resp, body := s.do(t, http.MethodPut, path, `{"value":"25","seq":2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out fieldResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.True(t, out.Accepted)
	assert.Equal(t, "25", out.Value)

	resp, body = s.do(t, http.MethodPut, path, `{"value":"2","seq":1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out = fieldResponse{}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.True(t, out.Stale)
	assert.False(t, out.Accepted)
	assert.Equal(t, "25", out.Value)
	assert.Equal(t, uint64(1), out.Seq)

	_, body = s.do(t, http.MethodGet, "/api/sessions/"+id, "")
	var view service.View
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, "25", view.Form.SquareFeet)
}

func TestSetField_BadRequests(t *testing.T) {
	s := newTestServer(t)
	id := s.session(t)

	resp, body := s.do(t, http.MethodPut, "/api/sessions/"+id+"/fields/kitchens", `{"value":"1"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "unknown field")

	resp, _ = s.do(t, http.MethodPut, "/api/sessions/"+id+"/fields/bedrooms", `{"value":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	s.setField(t, id, "bedrooms", "3")
	for _, payload := range []string{`{}`, `{"val":"4"}`, `{"value":null}`} {
		resp, body = s.do(t, http.MethodPut, "/api/sessions/"+id+"/fields/bedrooms", payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, payload)
		assert.Contains(t, string(body), "value is required", payload)
	}
	st, err := s.sessions.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "3", st.Snapshot(false).Form.Bedrooms)

	resp, body = s.do(t, http.MethodPut, "/api/sessions/nope/fields/bedrooms", `{"value":"1"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "session not found")
}

func TestGenerate_ValidationFailure(t *testing.T) {
	s := newTestServer(t)
	id := s.session(t)
	s.setField(t, id, "squareFeet", "99")
	s.setField(t, id, "bedrooms", "3")
	s.setField(t, id, "bathrooms", "2")
	s.setField(t, id, "garages", "2")

	resp, body := s.do(t, http.MethodPost, "/api/sessions/"+id+"/generate", "")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var out struct {
		Error         string `json:"error"`
		Notifications []struct {
			Title   string `json:"title"`
			Variant string `json:"variant"`
		} `json:"notifications"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "Invalid Square Footage", out.Error)
	require.Len(t, out.Notifications, 1)
	assert.Equal(t, "destructive", out.Notifications[0].Variant)

	_, body = s.do(t, http.MethodGet, "/api/sessions/"+id, "")
	var view service.View
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, "idle", string(view.Phase))
	assert.Empty(t, view.Notifications)
}

func TestGenerate_EndToEnd(t *testing.T) {
	s := newTestServer(t)
	id := s.session(t)
	s.fill(t, id)

	resp, _ := s.do(t, http.MethodPost, "/api/sessions/"+id+"/generate", "")
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	s.wait(t, id)

	_, body := s.do(t, http.MethodGet, "/api/sessions/"+id, "")
	var view service.View
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, "done", string(view.Phase))
	assert.False(t, view.Busy)
	require.NotNil(t, view.Image)
	assert.Equal(t, "/assets/floorplan-placeholder.jpg", view.Image.URL)
	assert.Equal(t, "2500 sq ft • 3 bed • 2 bath • 2 garage", view.Summary)
	require.Len(t, view.Notifications, 1)
	assert.Equal(t, "Floor Plan Generated!", view.Notifications[0].Title)

	resp, body = s.do(t, http.MethodGet, "/api/sessions/"+id+"/download", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "floorplan-2500sqft-3bed-2bath.jpg")
	require.GreaterOrEqual(t, len(body), 2)
	assert.Equal(t, []byte{0xFF, 0xD8}, body[:2])

	_, body = s.do(t, http.MethodGet, "/api/sessions/"+id, "")
	require.NoError(t, json.Unmarshal(body, &view))
	require.Len(t, view.Notifications, 1)
	assert.Equal(t, "Download Started", view.Notifications[0].Title)
}

func TestDownload_BeforeGenerate(t *testing.T) {
	s := newTestServer(t)
	id := s.session(t)

	resp, _ := s.do(t, http.MethodGet, "/api/sessions/"+id+"/download", "")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPlaceholderAsset(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, http.MethodGet, "/assets/floorplan-placeholder.jpg", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, body)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)
	s.session(t)

	resp, body := s.do(t, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ready","sessions":1,"generating":0}`, string(body))

	resp, _ = s.do(t, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = s.do(t, http.MethodGet, "/health/startup", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "started_at")

	resp, body = s.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "floorplan_studio_sessions")
}

func TestDocs(t *testing.T) {
	s := newTestServer(t)

	resp, body := s.do(t, http.MethodGet, "/docs/openapi.yaml", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "/api/sessions/{id}/generate")

	resp, body = s.do(t, http.MethodGet, "/docs", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), "/docs/openapi.yaml")
}
