package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContact(store *memStore) (*Contact, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	h := NewContact(store, NewMetrics(reg))
	h.newRef = func() string { return "ref-123" }
	return h, reg
}

func postContact(h *Contact, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.Submit(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func counterValue(t *testing.T, reg *prometheus.Registry, outcome string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "contact_submissions_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "outcome" && l.GetValue() == outcome {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestContact_Stored(t *testing.T) {
	store := &memStore{}
	h, reg := newTestContact(store)

	rec := postContact(h, `{"name":"  Alice ","email":"alice@example.com","company":"","message":"Hello there"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, map[string]any{
		"success": true,
		"message": "Message sent successfully!",
		"id":      "ref-123",
	}, decodeBody(t, rec))

	require.Len(t, store.items, 1)
	sub := store.items[0]
	assert.Equal(t, "Alice", sub.Name)
	assert.Equal(t, "ref-123", sub.Ref)
	assert.Nil(t, sub.Company)
	assert.Equal(t, 1.0, counterValue(t, reg, OutcomeStored))
}

func TestContact_SanitizesHTML(t *testing.T) {
	store := &memStore{}
	h, _ := newTestContact(store)

	rec := postContact(h, `{"name":"<script>alert(1)</script>Alice","email":"a@b.com","company":"Acme","message":"hi <img src=x onerror=alert(1)>"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.items, 1)
	assert.Equal(t, "Alice", store.items[0].Name)
	assert.NotContains(t, store.items[0].Message, "onerror")
	require.NotNil(t, store.items[0].Company)
	assert.Equal(t, "Acme", *store.items[0].Company)
}

func TestContact_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
		field   string
	}{
		{name: "missing message key", body: `{"name":"Alice","email":"a@b.com"}`, wantErr: "Missing required fields."},
		{name: "not json", body: `name=Alice`, wantErr: "Missing required fields."},
		{name: "json null", body: `null`, wantErr: "Missing required fields."},
		{name: "bad email", body: `{"name":"Alice","email":"nope","message":"hi"}`, wantErr: "Invalid email", field: "email"},
		{name: "short name", body: `{"name":"A","email":"a@b.com","message":"hi"}`, wantErr: "Name must be at least 2 characters", field: "name"},
		{name: "empty message", body: `{"name":"Alice","email":"a@b.com","message":"   "}`, wantErr: "Message is required", field: "message"},
		{name: "long message", body: `{"name":"Alice","email":"a@b.com","message":"` + strings.Repeat("x", 2001) + `"}`, wantErr: "Message is too long (max 2000)", field: "message"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{}
			h, reg := newTestContact(store)

			rec := postContact(h, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tt.wantErr, body["error"])
			if tt.field != "" {
				fields, ok := body["fields"].(map[string]any)
				require.True(t, ok, "fields map expected")
				assert.Contains(t, fields, tt.field)
			}
			assert.Empty(t, store.items)
			assert.Equal(t, 1.0, counterValue(t, reg, OutcomeInvalid))
		})
	}
}

func TestContact_StoreFailure(t *testing.T) {
	store := &memStore{err: errors.New("disk full")}
	h, reg := newTestContact(store)

	rec := postContact(h, `{"name":"Alice","email":"a@b.com","message":"hi"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "An internal server error occurred.", body["error"])
	assert.NotContains(t, rec.Body.String(), "disk full")
	assert.Equal(t, 1.0, counterValue(t, reg, OutcomeError))
}

func jsonDecode(rec *httptest.ResponseRecorder, v any) error {
	return json.Unmarshal(rec.Body.Bytes(), v)
}
