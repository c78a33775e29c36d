package geohash

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/woozymasta/randomspot/internal/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeKnown(t *testing.T) {
	tests := []struct {
		p         geo.Point
		precision int
		want      string
	}{
		{geo.Point{Lat: 57.64911, Lng: 10.40744}, 11, "u4pruydqqvj"},
		{geo.Point{Lat: 42.6, Lng: -5.6}, 5, "ezs42"},
		{geo.Point{Lat: 0, Lng: 0}, 1, "s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Encode(tt.p, tt.precision))
	}
}

func TestEncodeLength(t *testing.T) {
	p := geo.Point{Lat: 40.7128, Lng: -74.006}
	for precision := 1; precision <= MaxPrecision; precision++ {
		assert.Len(t, Encode(p, precision), precision)
	}
	assert.Len(t, Encode(p, 0), 1)
	assert.Len(t, Encode(p, 40), MaxPrecision)
}

func TestEncodeOutOfRange(t *testing.T) {
	assert.Len(t, Encode(geo.Point{Lat: 90, Lng: 180}, 8), 8)
	assert.Equal(t, Encode(geo.Point{Lat: 10, Lng: -170}, 8), Encode(geo.Point{Lat: 10, Lng: 190}, 8))
}

func TestEncodeNonFinite(t *testing.T) {
	zero := Encode(geo.Point{}, 8)
	assert.Equal(t, zero, Encode(geo.Point{Lat: math.NaN(), Lng: math.NaN()}, 8))
	assert.Equal(t, zero, Encode(geo.Point{Lng: math.Inf(1)}, 8))
	assert.Equal(t, Encode(geo.Point{Lat: 90}, 8), Encode(geo.Point{Lat: math.Inf(1)}, 8))
	assert.Equal(t, Encode(geo.Point{Lat: -90}, 8), Encode(geo.Point{Lat: math.Inf(-1)}, 8))
}

func TestDecodeInvalid(t *testing.T) {
	for _, hash := range []string{"", "abc", "u4pru!", "0123456789bcd", "ilo"} {
		_, err := Decode(hash)
		assert.ErrorIs(t, err, ErrInvalidHash, "hash %q", hash)
	}
}

func TestDecodeUpperCase(t *testing.T) {
	lower, err := Decode("dr5regw3")
	require.NoError(t, err)
	upper, err := Decode("DR5REGW3")
	require.NoError(t, err)
	assert.Equal(t, lower, upper)
}

func TestPointRoundTrip(t *testing.T) {
	latErr, lngErr := ErrorBound(8)
	rng := rand.New(rand.NewPCG(17, 71))

	for range 2000 {
		p := geo.Point{Lat: rng.Float64()*170 - 85, Lng: rng.Float64()*359 - 179.5}.Round(Decimals)

		got, err := Decode(Encode(p, 8))
		require.NoError(t, err)
		assert.InDelta(t, p.Lat, got.Lat, latErr+1e-6)
		assert.InDelta(t, p.Lng, got.Lng, lngErr+1e-6)
	}
}

func TestHashRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))

	for range 2000 {
		buf := make([]byte, 8)
		for i := range buf {
			buf[i] = alphabet[rng.IntN(len(alphabet))]
		}
		hash := string(buf)

		p, err := Decode(hash)
		require.NoError(t, err)
		assert.Equal(t, hash, Encode(p, 8))
	}
}

func TestErrorBound(t *testing.T) {
	lat, lng := ErrorBound(8)
	assert.InDelta(t, 8.58e-5, lat, 1e-7)
	assert.InDelta(t, 1.716e-4, lng, 1e-7)

	lat, lng = ErrorBound(7)
	assert.InDelta(t, 6.87e-4, lat, 1e-6)
	assert.InDelta(t, 6.87e-4, lng, 1e-6)
}

func TestParsePoint(t *testing.T) {
	p, ok := ParsePoint("dr5regw3")
	assert.True(t, ok)
	assert.InDelta(t, 40.7128, p.Lat, 1e-3)
	assert.InDelta(t, -74.006, p.Lng, 1e-3)

	_, ok = ParsePoint("")
	assert.False(t, ok)
	_, ok = ParsePoint("not-a-hash")
	assert.False(t, ok)
}
