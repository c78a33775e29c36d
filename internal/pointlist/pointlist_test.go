package pointlist

import (
	"math/rand/v2"
	"testing"

	"github.com/woozymasta/randomspot/internal/geo"
	"github.com/woozymasta/randomspot/internal/geohash"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomPoints(rng *rand.Rand, n int) []geo.Point {
	points := make([]geo.Point, n)
	for i := range points {
		points[i] = geo.Point{Lat: rng.Float64()*160 - 80, Lng: rng.Float64()*358 - 179}
	}
	return points
}

func TestTokenRoundTrip(t *testing.T) {
	latErr, lngErr := geohash.ErrorBound(Precision)
	rng := rand.New(rand.NewPCG(10, 20))

	for _, n := range []int{1, 3, 17, 100} {
		points := randomPoints(rng, n)

		token := PointsToToken(points)
		require.Len(t, token, n*Precision)

		got := TokenToPoints(token)
		require.Len(t, got, n)
		for i := range points {
			assert.InDelta(t, points[i].Lat, got[i].Lat, latErr+1e-6)
			assert.InDelta(t, points[i].Lng, got[i].Lng, lngErr+1e-6)
		}
	}
}

func TestTokenStable(t *testing.T) {
	points := randomPoints(rand.New(rand.NewPCG(1, 1)), 10)
	token := Serialize(points)
	assert.Equal(t, token, Serialize(Parse(token)))
}

func TestSerializeEmpty(t *testing.T) {
	assert.Equal(t, "", Serialize(nil))
	assert.Empty(t, Parse(""))
	assert.NotNil(t, Parse(""))
}

func TestParseLegacyHashArray(t *testing.T) {
	got := Parse(`["dr5regw","u4pruyd"]`)
	require.Len(t, got, 2)
	assert.InDelta(t, 40.7128, got[0].Lat, 2e-3)
	assert.InDelta(t, 57.649, got[1].Lat, 2e-3)
}

func TestParseLegacyPointArray(t *testing.T) {
	got := Parse(`[{"lat":40.5,"lng":-75.25},{"lat":41,"lng":-74}]`)
	assert.Equal(t, []geo.Point{{Lat: 40.5, Lng: -75.25}, {Lat: 41, Lng: -74}}, got)
}

func TestParseMalformed(t *testing.T) {
	for _, text := range []string{
		"not a valid token!!",
		"abcdefgh",          // right width, 'a' is not base-32
		"dr5regw3dr5",       // wrong width
		`["dr5regw3", 12]`,  // mixed array
		`["dr5regw3","!!"]`, // bad hash inside array
		`[{"lat":1}]`,       // missing lng
		`{"lat":1,"lng":2}`, // object, not array
		`[1, 2, 3]`,
	} {
		got := TokenToPoints(text)
		assert.NotNil(t, got, "text %q", text)
		assert.Empty(t, got, "text %q", text)
	}
}

func TestParseEmptyArrays(t *testing.T) {
	assert.Empty(t, Parse("[]"))
}
