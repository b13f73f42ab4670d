package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	current time.Time
}

func (clock *fakeClock) now() time.Time {
	return clock.current
}

func (clock *fakeClock) advance(duration time.Duration) {
	clock.current = clock.current.Add(duration)
}

func newRegistryWithClock(idleTimeout time.Duration) (*sessionRegistry, *fakeClock) {
	clock := &fakeClock{current: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	registry := newSessionRegistry(idleTimeout)
	registry.now = clock.now
	return registry, clock
}

func TestRemoveIdleSessions(t *testing.T) {
	registry, clock := newRegistryWithClock(10 * time.Minute)

	abandoned := registry.add(&sessionEntry{})
	active := registry.add(&sessionEntry{})

	clock.advance(8 * time.Minute)
	_, err := registry.get(active)
	require.NoError(t, err)

	clock.advance(5 * time.Minute)
	assert.Equal(t, 1, registry.removeIdle())

	_, err = registry.get(abandoned)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = registry.get(active)
	assert.NoError(t, err)
	assert.Equal(t, 1, registry.count())
}

func TestRemoveIdleKeepsSessionsAtTimeout(t *testing.T) {
	registry, clock := newRegistryWithClock(10 * time.Minute)
	registry.add(&sessionEntry{})

	clock.advance(10 * time.Minute)
	assert.Zero(t, registry.removeIdle())
	assert.Equal(t, 1, registry.count())
}

func TestRemoveIdleWithoutTimeout(t *testing.T) {
	registry, clock := newRegistryWithClock(0)
	registry.add(&sessionEntry{})

	clock.advance(365 * 24 * time.Hour)
	assert.Zero(t, registry.removeIdle())
	assert.Equal(t, 1, registry.count())
}

func TestIdleCheckInterval(t *testing.T) {
	assert.Equal(t, 5*time.Minute, idleCheckInterval(20*time.Minute))
	assert.Equal(t, time.Second, idleCheckInterval(2*time.Second))
}

func TestIdleSessionNotFoundOverHTTP(t *testing.T) {
	explorerAPI := NewCSVExplorerAPI(Config{
		Port:                  "0",
		MaxUploadBytes:        1024 * 1024,
		DefaultRowsPerPage:    25,
		DelimiterLinesToCheck: 20,
		SessionIdleTimeout:    time.Minute,
	})
	clock := &fakeClock{current: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	explorerAPI.sessions.now = clock.now

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("csvFile", "sales.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("region,sales\nNorth,100\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/sessions", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	res := httptest.NewRecorder()
	explorerAPI.ServeHTTP(res, req)
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

	var created struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))
	schemaPath := "/sessions/" + created.ID.String() + "/schema"

	clock.advance(2 * time.Minute)
	require.Equal(t, 1, explorerAPI.sessions.removeIdle())

	res = httptest.NewRecorder()
	explorerAPI.ServeHTTP(res, httptest.NewRequest(http.MethodGet, schemaPath, nil))
	assert.Equal(t, http.StatusNotFound, res.Code)
}
