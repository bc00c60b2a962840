package admin

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"pollos-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seed(t *testing.T) storage.Store {
	t.Helper()
	s := storage.NewMemoryStore()
	require.NoError(t, s.Set("01-01-2024", `{"title":"Alcalá","orders":[]}`))
	require.NoError(t, s.Set("schedule", `{"Lunes":"Meco"}`))
	require.NoError(t, s.Set("alcala", `not json`))
	return s
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KindLedger, Classify("31-12-2024"))
	assert.Equal(t, KindSchedule, Classify("schedule"))
	assert.Equal(t, KindClients, Classify("torrejon"))
	assert.Equal(t, KindClients, Classify("32-12-2024"))
}

func TestListShowRemove(t *testing.T) {
	s := seed(t)

	keys, err := ListKeys(s)
	require.NoError(t, err)
	require.Len(t, keys, 3)
	assert.Equal(t, KeyInfo{Key: "01-01-2024", Kind: KindLedger, Bytes: 31, Valid: true}, keys[0])
	assert.False(t, keys[1].Valid)

	e, err := Show(s, "alcala")
	require.NoError(t, err)
	assert.Nil(t, e.Value)
	assert.Equal(t, "not json", e.Raw)

	_, err = Show(s, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	_, err = Remove(s, "schedule")
	require.NoError(t, err)
	_, ok, err := s.Get("schedule")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHandlers(t *testing.T) {
	s := seed(t)
	app := fiber.New()
	app.Get("/keys", ListKeysHandler(s))
	app.Get("/keys/:key", ShowKeyHandler(s))
	app.Delete("/keys/:key", DeleteKeyHandler(s, zap.NewNop()))

	resp, err := app.Test(httptest.NewRequest("GET", "/keys", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	var keys []KeyInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&keys))
	assert.Len(t, keys, 3)

	resp, err = app.Test(httptest.NewRequest("GET", "/keys/01-01-2024", nil))
	require.NoError(t, err)
	var e Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	assert.JSONEq(t, `{"title":"Alcalá","orders":[]}`, string(e.Value))

	resp, err = app.Test(httptest.NewRequest("DELETE", "/keys/01-01-2024", nil))
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/keys/01-01-2024", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
