package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lookbusy1344/scriptcore/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createSession(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/v1/session", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created api.SessionCreateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	return created.SessionID
}

func loadProgram(t *testing.T, srv *httptest.Server, sessionID, src string) {
	t.Helper()
	body, _ := json.Marshal(api.LoadProgramRequest{Source: src})
	resp, err := http.Post(srv.URL+"/api/v1/session/"+sessionID+"/load", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var loaded api.LoadProgramResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loaded))
	require.True(t, loaded.Success, loaded.Errors)
}

func TestHealthEndpointReportsSessionCount(t *testing.T) {
	s := api.NewServer(":0")
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, float64(0), health["sessions"])
}

func TestCreateLoadAndStepSession(t *testing.T) {
	s := api.NewServer(":0")
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	id := createSession(t, srv)
	loadProgram(t, srv, id, "s:0 1\ns:1 2\n")

	resp, err := http.Post(srv.URL+"/api/v1/session/"+id+"/step", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	statusResp, err := http.Get(srv.URL + "/api/v1/session/" + id)
	require.NoError(t, err)
	defer statusResp.Body.Close()
	var status api.SessionStatusResponse
	require.NoError(t, json.NewDecoder(statusResp.Body).Decode(&status))
	assert.Equal(t, 1, status.Cursor)
}

func TestBreakpointAndContinueReachesBreakpointState(t *testing.T) {
	s := api.NewServer(":0")
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	id := createSession(t, srv)
	loadProgram(t, srv, id, "s:0 1\ns:1 2\np:g:0\n")

	body, _ := json.Marshal(api.BreakpointRequest{Index: 2})
	resp, err := http.Post(srv.URL+"/api/v1/session/"+id+"/breakpoint", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Post(srv.URL+"/api/v1/session/"+id+"/continue", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	assert.Eventually(t, func() bool {
		statusResp, err := http.Get(srv.URL + "/api/v1/session/" + id)
		if err != nil {
			return false
		}
		defer statusResp.Body.Close()
		var status api.SessionStatusResponse
		if err := json.NewDecoder(statusResp.Body).Decode(&status); err != nil {
			return false
		}
		return status.State == "breakpoint" && status.Cursor == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDestroySessionRemovesItFromList(t *testing.T) {
	s := api.NewServer(":0")
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	id := createSession(t, srv)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/session/"+id, nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	statusResp, err := http.Get(srv.URL + "/api/v1/session/" + id)
	require.NoError(t, err)
	defer statusResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, statusResp.StatusCode)
}
