package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSSinkWritesNestedPaths(t *testing.T) {
	root := t.TempDir()
	sink, err := NewFSSink(root)
	require.NoError(t, err)

	require.NoError(t, sink.Write("pages/services/water-damage/sydney.json", []byte(`{"url":"/services/water-damage/sydney"}`)))
	require.NoError(t, sink.Write("sitemap.xml", []byte("<sitemapindex/>")))

	data, err := os.ReadFile(filepath.Join(root, "pages", "services", "water-damage", "sydney.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "/services/water-damage/sydney")

	_, err = os.Stat(filepath.Join(root, "sitemap.xml"))
	assert.NoError(t, err)
}

func TestMemSinkCapturesWritesInOrder(t *testing.T) {
	sink := NewMemSink()
	require.NoError(t, sink.Write("a.json", []byte("a")))
	require.NoError(t, sink.Write("b.json", []byte("b")))
	require.NoError(t, sink.Write("a.json", []byte("a2")))

	assert.Equal(t, []string{"a.json", "b.json", "a.json"}, sink.Calls())
	assert.Equal(t, []string{"a.json", "b.json"}, sink.Paths())
	assert.Equal(t, 2, sink.Len())

	data, ok := sink.Get("a.json")
	require.True(t, ok)
	assert.Equal(t, "a2", string(data))
}

func TestMemSinkFailureInjection(t *testing.T) {
	sink := NewMemSink()
	sink.FailOn = "sitemap.xml"

	require.NoError(t, sink.Write("pages/index.json", []byte("{}")))
	err := sink.Write("sitemap.xml", []byte("x"))
	require.Error(t, err)

	_, ok := sink.Get("sitemap.xml")
	assert.False(t, ok)
}
