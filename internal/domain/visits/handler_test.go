package visits

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Route("/owners/{ownerID}/pets/{petID}", func(pr chi.Router) {
		RegisterRoutes(pr, newTestService(), nil)
	})
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func doReq(t *testing.T, method, url string, body any) (int, []byte) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, b
}

func TestHandler_VisitLifecycle(t *testing.T) {
	ts := newTestServer(t)
	base := ts.URL + "/owners/1/pets/7/visits"

	st, body := doReq(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, st)
	assert.JSONEq(t, `[]`, string(body))

	st, body = doReq(t, http.MethodPost, base, map[string]any{
		"date":        "2013-01-01",
		"description": "rabies shot",
	})
	require.Equal(t, http.StatusCreated, st, string(body))
	assert.JSONEq(t, `{"id":1,"date":"2013-01-01","description":"rabies shot","petId":7}`, string(body))

	st, _ = doReq(t, http.MethodPost, base, map[string]any{"date": "01/01/2013", "description": "x"})
	assert.Equal(t, http.StatusBadRequest, st)

	st, _ = doReq(t, http.MethodDelete, base+"/1", nil)
	assert.Equal(t, http.StatusNoContent, st)

	st, _ = doReq(t, http.MethodDelete, base+"/1", nil)
	assert.Equal(t, http.StatusNotFound, st)
}

func TestHandler_ForeignPet(t *testing.T) {
	ts := newTestServer(t)

	st, _ := doReq(t, http.MethodGet, ts.URL+"/owners/2/pets/7/visits", nil)
	assert.Equal(t, http.StatusNotFound, st)

	st, _ = doReq(t, http.MethodGet, ts.URL+"/owners/x/pets/7/visits", nil)
	assert.Equal(t, http.StatusBadRequest, st)
}
