package sitemap

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/disasterrecoveryau/sitegen/internal/catalog"
	"github.com/disasterrecoveryau/sitegen/internal/config"
	"github.com/disasterrecoveryau/sitegen/internal/manifest"
)

const testOrigin = "https://disasterrecovery.com.au"

var testStamp = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func defaultManifest(t *testing.T) *manifest.Manifest {
	t.Helper()
	c, err := catalog.Load("")
	require.NoError(t, err)
	m, err := manifest.Build(c, testOrigin, config.Default().Policy)
	require.NoError(t, err)
	return m
}

func TestAssembleShardsSumToManifest(t *testing.T) {
	m := defaultManifest(t)
	set, err := Assemble(m, testStamp, MaxURLsPerShard)
	require.NoError(t, err)

	assert.Equal(t, m.Len(), set.URLCount())

	seen := make(map[string]struct{})
	for _, shard := range set.Shards {
		for _, u := range shard.URLs {
			_, dup := seen[u.Loc]
			require.False(t, dup, "URL %s in more than one shard", u.Loc)
			seen[u.Loc] = struct{}{}
		}
	}
}

func TestAssembleFamilyShards(t *testing.T) {
	m := defaultManifest(t)
	set, err := Assemble(m, testStamp, MaxURLsPerShard)
	require.NoError(t, err)

	names := make([]string, 0, len(set.Shards))
	for _, s := range set.Shards {
		names = append(names, s.Filename)
	}
	assert.Equal(t, []string{
		"sitemap-main.xml",
		"sitemap-services.xml",
		"sitemap-locations.xml",
		"sitemap-knowledge.xml",
	}, names)
}

func TestAssembleSplitsOverfullFamily(t *testing.T) {
	m := defaultManifest(t)
	set, err := Assemble(m, testStamp, 100)
	require.NoError(t, err)

	var locShards []Shard
	for _, s := range set.Shards {
		if s.Family == manifest.FamilyLocations {
			locShards = append(locShards, s)
		}
	}
	require.Greater(t, len(locShards), 1, "fixture should overflow a 100-URL shard")
	assert.Equal(t, "sitemap-locations-1.xml", locShards[0].Filename)
	assert.Equal(t, "sitemap-locations-2.xml", locShards[1].Filename)
	for _, s := range locShards {
		assert.LessOrEqual(t, len(s.URLs), 100)
	}
	assert.Equal(t, m.Len(), set.URLCount())
}

func TestIndexReferencesExactlyTheShards(t *testing.T) {
	m := defaultManifest(t)
	set, err := Assemble(m, testStamp, 100)
	require.NoError(t, err)

	data, err := set.EncodeIndex()
	require.NoError(t, err)
	idx := string(data)

	assert.Equal(t, len(set.Shards), strings.Count(idx, "<sitemap>"))
	for _, shard := range set.Shards {
		assert.Contains(t, idx, "<loc>"+testOrigin+"/"+shard.Filename+"</loc>")
	}
}

func TestShardEncoding(t *testing.T) {
	m := defaultManifest(t)
	set, err := Assemble(m, testStamp, MaxURLsPerShard)
	require.NoError(t, err)

	data, err := set.EncodeShard(set.Shards[0])
	require.NoError(t, err)
	xml := string(data)

	assert.True(t, strings.HasPrefix(xml, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, xml, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, xml, "<loc>"+testOrigin+"/</loc>")
	assert.Contains(t, xml, "<priority>1.0</priority>")
	assert.Contains(t, xml, "<changefreq>daily</changefreq>")
	assert.Contains(t, xml, "<lastmod>2025-06-01</lastmod>")
	assert.NotContains(t, xml, "<priority>1</priority>")
}

func TestEncodingDeterministic(t *testing.T) {
	m := defaultManifest(t)

	render := func() string {
		set, err := Assemble(m, testStamp, MaxURLsPerShard)
		require.NoError(t, err)
		var b strings.Builder
		for _, shard := range set.Shards {
			data, err := set.EncodeShard(shard)
			require.NoError(t, err)
			b.Write(data)
		}
		idx, err := set.EncodeIndex()
		require.NoError(t, err)
		b.Write(idx)
		return b.String()
	}

	assert.Equal(t, render(), render())
}
