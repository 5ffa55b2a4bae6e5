package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `[
  {"name": "Hydra Glow Serum", "brand": "Lira Luxe", "price": 45, "skin_type": "Dry"},
  {"name": "Velvet Lip Liner", "brand": "ColorPop", "price": 14}
]`

func TestLoad_RemoteSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()

	l := NewLoader(srv.URL, "secret", "", nil)
	products, rendered := l.Load(context.Background())

	require.Len(t, products, 2)
	assert.Equal(t, "Hydra Glow Serum", products[0].Name)
	assert.Contains(t, rendered, "Lira Luxe")
}

func TestLoad_RemoteFailureFallsBackToLocal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0o644))

	l := NewLoader(srv.URL, "", path, nil)
	products, rendered := l.Load(context.Background())

	require.Len(t, products, 2)
	assert.Contains(t, rendered, "Velvet Lip Liner")
}

func TestLoad_NoSourceDegradesToPlaceholder(t *testing.T) {
	l := NewLoader("", "", filepath.Join(t.TempDir(), "missing.json"), nil)
	products, rendered := l.Load(context.Background())

	assert.Empty(t, products)
	assert.Equal(t, Placeholder, rendered)
}

func TestLoad_MalformedLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	l := NewLoader("", "", path, nil)
	products, rendered := l.Load(context.Background())

	assert.Empty(t, products)
	assert.Equal(t, Placeholder, rendered)
}
