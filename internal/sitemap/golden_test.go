package sitemap

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/disasterrecoveryau/sitegen/internal/catalog"
	"github.com/disasterrecoveryau/sitegen/internal/config"
	"github.com/disasterrecoveryau/sitegen/internal/manifest"
)

var updateGolden = flag.Bool("update-golden", false, "update golden test files")

// fixtureManifest builds a manifest from a one-location, one-service catalog
// with no standalone items or guides, so the golden files stay small and
// hand-checkable.
func fixtureManifest(t *testing.T) *manifest.Manifest {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"locations.yaml": `locations:
  - slug: sydney
    city: Sydney
    state: NSW
    population: 5312000
    climate: Temperate oceanic
    postcode: "2000"
    latitude: -33.8688
    longitude: 151.2093
    suburbs: [Parramatta, Chatswood, Bondi]
`,
		"services.yaml": `services:
  - slug: water-damage
    label: Water Damage Restoration
    category: water
    urgency: critical
    cost_range: $2,000-$15,000
`,
		"standalone.yaml": "emergency_times: []\n",
		"guides.yaml":     "guides: []\n",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	c, err := catalog.Load(dir)
	require.NoError(t, err)
	m, err := manifest.Build(c, testOrigin, config.Default().Policy)
	require.NoError(t, err)
	return m
}

func compareGolden(t *testing.T, name string, got []byte) {
	t.Helper()
	path := filepath.Join("testdata", name)

	if *updateGolden {
		require.NoError(t, os.WriteFile(path, got, 0o644))
		t.Logf("updated golden file %s", path)
		return
	}

	want, err := os.ReadFile(path)
	require.NoError(t, err, "missing golden file %s; run with -update-golden", path)
	assert.Equal(t, string(want), string(got), name)
}

func TestEncodeMatchesGoldenFiles(t *testing.T) {
	m := fixtureManifest(t)
	set, err := Assemble(m, testStamp, MaxURLsPerShard)
	require.NoError(t, err)

	require.Len(t, set.Shards, 3)
	for _, shard := range set.Shards {
		data, err := set.EncodeShard(shard)
		require.NoError(t, err)
		compareGolden(t, shard.Filename, data)
	}

	index, err := set.EncodeIndex()
	require.NoError(t, err)
	compareGolden(t, set.IndexFilename, index)
}
