package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surveyline/intake/app"
	"github.com/surveyline/intake/config"
	"github.com/surveyline/intake/metrics"
	"github.com/surveyline/intake/model"
	"github.com/surveyline/intake/storage"
)

func newTestApp(t *testing.T) (app.App, *storage.FileStore) {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "submissions.jsonl"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return app.App{
		Store:   store,
		Config:  config.Config{AllowedOrigins: []string{"*"}},
		Metrics: metrics.New(prometheus.NewRegistry()),
	}, store
}

func postSurvey(handler http.Handler, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/survey", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Error  string                 `json:"error"`
	Detail []model.FieldViolation `json:"detail"`
}

const validBody = `{"name":"Ann","email":"Ann@Example.com","age":30,"consent":true,"rating":5,"comments":"great"}`

func TestSubmitSurvey(t *testing.T) {
	t.Run("valid submission is accepted and appended", func(t *testing.T) {
		a, store := newTestApp(t)
		handler := Wire(a)

		w := postSurvey(handler, validBody, map[string]string{"User-Agent": "curl/8.0"})
		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, map[string]string{"status": "ok"}, resp)

		records, err := store.ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 1)

		rec := records[0]
		assert.Equal(t, "Ann", rec.Name)
		assert.Equal(t, "71d4f55f72fa128dfb468a1a3901507c804b74316488744d769d7f4b16696476", rec.Email)
		assert.Equal(t, "624b60c58c9d8bfb6ff1886c2fd605d2adeb6ea4da576068201b6c6958ce93f4", rec.Age)
		assert.NotEmpty(t, rec.SubmissionID)
		assert.False(t, rec.ReceivedAt.IsZero())
		assert.Equal(t, "192.0.2.1", rec.IP) // httptest peer address, port stripped
		require.NotNil(t, rec.UserAgent)
		assert.Equal(t, "curl/8.0", *rec.UserAgent)
	})

	t.Run("forwarded address wins over peer address", func(t *testing.T) {
		a, store := newTestApp(t)
		handler := Wire(a)

		w := postSurvey(handler, validBody, map[string]string{"X-Forwarded-For": "203.0.113.9"})
		assert.Equal(t, http.StatusCreated, w.Code)

		records, err := store.ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "203.0.113.9", records[0].IP)
	})

	t.Run("client-supplied submission_id is stored verbatim", func(t *testing.T) {
		a, store := newTestApp(t)
		handler := Wire(a)

		body := `{"name":"Ann","email":"ann@example.com","age":30,"consent":true,"rating":5,"submission_id":"my-own-id"}`
		w := postSurvey(handler, body, nil)
		assert.Equal(t, http.StatusCreated, w.Code)

		records, err := store.ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "my-own-id", records[0].SubmissionID)
	})

	t.Run("unparseable body yields invalid_json and no record", func(t *testing.T) {
		a, store := newTestApp(t)
		handler := Wire(a)

		w := postSurvey(handler, `{"name":`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp errorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "invalid_json", resp.Error)

		records, err := store.ReadAll()
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("empty body yields invalid_json", func(t *testing.T) {
		a, _ := newTestApp(t)
		handler := Wire(a)

		w := postSurvey(handler, "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing consent yields validation_error and no record", func(t *testing.T) {
		a, store := newTestApp(t)
		handler := Wire(a)

		body := `{"name":"Ann","email":"ann@example.com","age":30,"rating":5}`
		w := postSurvey(handler, body, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp errorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "validation_error", resp.Error)
		require.Len(t, resp.Detail, 1)
		assert.Equal(t, "consent", resp.Detail[0].Field)

		records, err := store.ReadAll()
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("wrong-typed field yields validation_error naming the field", func(t *testing.T) {
		a, _ := newTestApp(t)
		handler := Wire(a)

		body := `{"name":"Ann","email":"ann@example.com","age":"thirty","consent":true,"rating":5}`
		w := postSurvey(handler, body, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp errorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "validation_error", resp.Error)
		require.Len(t, resp.Detail, 1)
		assert.Equal(t, "age", resp.Detail[0].Field)
	})

	t.Run("multiple violations are all reported", func(t *testing.T) {
		a, _ := newTestApp(t)
		handler := Wire(a)

		w := postSurvey(handler, `{"comments":"hi"}`, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp errorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		fields := make([]string, len(resp.Detail))
		for i, v := range resp.Detail {
			fields[i] = v.Field
		}
		assert.Equal(t, []string{"name", "email", "age", "consent", "rating"}, fields)
	})

	t.Run("storage failure yields a server error", func(t *testing.T) {
		a := app.App{
			Store:   failingStore{},
			Config:  config.Config{AllowedOrigins: []string{"*"}},
			Metrics: metrics.New(prometheus.NewRegistry()),
		}
		handler := Wire(a)

		w := postSurvey(handler, validBody, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "disk")
	})
}

func TestPing(t *testing.T) {
	a, _ := newTestApp(t)
	handler := Wire(a)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.NotEmpty(t, resp["utc_time"])
}

type failingStore struct{}

func (failingStore) Append(ctx context.Context, rec model.StoredSurveyRecord) error {
	return errors.New("disk full")
}

func (failingStore) Close() error { return nil }
