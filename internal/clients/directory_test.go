package clients

import (
	"testing"

	"pollos-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"José María":     "jose maria",
		"  Peña-López! ": "  penalopez ",
		"ÁNGEL 2":        "angel 2",
		"":               "",
		"¿?":             "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Normalize(in), in)
	}
}

func TestFormatName(t *testing.T) {
	assert.Equal(t, "Ana María", FormatName("  aNA   maRÍA "))
	assert.Equal(t, "Luis", FormatName("LUIS"))
	assert.Equal(t, "", FormatName("   "))
}

func TestUpsert(t *testing.T) {
	d := NewDirectory(storage.NewMemoryStore(), nil)

	c, err := d.Upsert("Villanueva", "ana maría", false)
	require.NoError(t, err)
	assert.Equal(t, "Ana María", c.Name)

	_, err = d.Upsert("Villanueva", "ANA MARÍA", true)
	require.NoError(t, err)
	_, err = d.Upsert("Villanueva", "Luis", false)
	require.NoError(t, err)
	// fuzzy-equal but not format-equal: a distinct entry
	_, err = d.Upsert("Villanueva", "Ana Maria", false)
	require.NoError(t, err)

	list, err := d.List("Villanueva")
	require.NoError(t, err)
	assert.Equal(t, []Client{
		{Name: "Ana María", Blacklisted: true},
		{Name: "Luis"},
		{Name: "Ana Maria"},
	}, list)

	found, ok, err := d.Find("villanueva", "ana maría")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, found.Blacklisted)

	other, err := d.List("Alcalá")
	require.NoError(t, err)
	assert.Empty(t, other)

	c, err = d.Upsert("Villanueva", "   ", true)
	require.NoError(t, err)
	assert.Empty(t, c.Name)
}

func TestSuggestionsFor(t *testing.T) {
	d := NewDirectory(storage.NewMemoryStore(), nil)
	for _, n := range []string{"Ángela", "Andrés", "Luis"} {
		_, err := d.Upsert("Villanueva", n, false)
		require.NoError(t, err)
	}

	got, err := d.SuggestionsFor("Villanueva", "an")
	require.NoError(t, err)
	assert.Equal(t, []Client{{Name: "Ángela"}, {Name: "Andrés"}}, got)

	got, err = d.SuggestionsFor("Villanueva", "ÁNGE")
	require.NoError(t, err)
	assert.Equal(t, []Client{{Name: "Ángela"}}, got)

	for _, empty := range []string{"", "  ", "!!"} {
		got, err = d.SuggestionsFor("Villanueva", empty)
		require.NoError(t, err)
		assert.Empty(t, got, "%q", empty)
	}
}

func TestCorruptListIsEmpty(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(Key("Villanueva"), "not json"))
	core, logs := observer.New(zapcore.WarnLevel)
	d := NewDirectory(store, zap.New(core))

	list, err := d.List("Villanueva")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 1, logs.Len())

	_, err = d.Upsert("Villanueva", "Ana", false)
	require.NoError(t, err)
	list, err = d.List("Villanueva")
	require.NoError(t, err)
	assert.Equal(t, []Client{{Name: "Ana"}}, list)
}
