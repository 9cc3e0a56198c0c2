package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bastiangx/phrasematch/pkg/textmatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp
}

func TestHTTPMatch(t *testing.T) {
	h := NewHTTPHandler(newTestServer(t), false)

	t.Run("successful request", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodPost, "/v1/match", `{"text": "Summer fun is very very     good"}`)
		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decodeResponse(t, rr)
		assert.Equal(t, StatusOK, resp.Status)
		assert.NotEmpty(t, resp.ID, "request id is echoed")
		assert.Equal(t, []textmatch.ExactMatch{
			{Start: 0, End: 9, Keys: []int{102, 103, 104}},
			{Start: 19, End: 31, Keys: []int{106}},
		}, resp.Matches)
	})

	t.Run("invalid request body json", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodPost, "/v1/match", `{invalid json::}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Body is invalid json")
	})

	t.Run("missing required field", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodPost, "/v1/match", `{}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Required fields missing")
	})

	t.Run("unsupported character", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodPost, "/v1/match", `{"text": "ééé"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		resp := decodeResponse(t, rr)
		assert.Equal(t, CodeUnsupported, resp.Code)
		assert.Contains(t, resp.Error, "unsupported character")
	})
}

func TestHTTPPartial(t *testing.T) {
	h := NewHTTPHandler(newTestServer(t), false)
	rr := doRequest(t, h, http.MethodPost, "/v1/partial", `{"text": "summer "}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []textmatch.PartialMatch{
		{Entry: "summer", MatchedChars: 6, CompletingChars: 7},
		{Entry: "summer fun", MatchedChars: 7, CompletingChars: 7},
	}, decodeResponse(t, rr).Partials)
}

func TestHTTPEntries(t *testing.T) {
	h := NewHTTPHandler(newTestServer(t), false)

	rr := doRequest(t, h, http.MethodPut, "/v1/entries/200", `{"text": "Summer  Nights"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, decodeResponse(t, rr).Count)

	rr = doRequest(t, h, http.MethodGet, "/v1/entries?prefix=summer%20n", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []textmatch.Entry{{Key: 200, Text: "summer nights"}}, decodeResponse(t, rr).Entries)

	rr = doRequest(t, h, http.MethodPut, "/v1/entries/abc", `{"text": "x"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, h, http.MethodPut, "/v1/entries/201", `{"text": "   "}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = doRequest(t, h, http.MethodDelete, "/v1/entries/200", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, h, http.MethodDelete, "/v1/entries/200", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, h, http.MethodPost, "/v1/entries", `{"entries": [{"key": 300, "text": "a"}, {"key": 301, "text": "b"}]}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 2, decodeResponse(t, rr).Count)

	rr = doRequest(t, h, http.MethodPost, "/v1/entries", `{"entries": [{"text": "no key"}]}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, h, http.MethodGet, "/v1/stats", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 10, decodeResponse(t, rr).Count)
}

func TestHTTPHealthAndMetrics(t *testing.T) {
	h := NewHTTPHandler(newTestServer(t), true)

	rr := doRequest(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, StatusOK, decodeResponse(t, rr).Status)

	doRequest(t, h, http.MethodPost, "/v1/match", `{"text": "summer"}`)
	rr = doRequest(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "phrasematch_requests_total")
	assert.Contains(t, rr.Body.String(), "phrasematch_http_requests_total")

	noMetrics := NewHTTPHandler(newTestServer(t), false)
	rr = doRequest(t, noMetrics, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
