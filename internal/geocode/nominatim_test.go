package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNominatimItems(t *testing.T) {
	items := []nominatimItem{
		{
			Lat:         "39.7817",
			Lon:         "-89.6501",
			DisplayName: "Springfield, Sangamon County, Illinois, United States",
			Importance:  0.72,
		},
	}
	res, err := parseNominatimItems(items)
	require.NoError(t, err)
	assert.Equal(t, 39.7817, res.Lat)
	assert.Equal(t, -89.6501, res.Lon)
	assert.Equal(t, 0.72, res.Confidence)
}

func TestParseNominatimItems_Empty(t *testing.T) {
	_, err := parseNominatimItems(nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNominatimGeocoder_CachesQueries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, "Chatham, IL", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"39.6761","lon":"-89.7045","display_name":"Chatham","importance":0.5}]`))
	}))
	defer srv.Close()

	g := NewNominatim(srv.URL, "test-agent", time.Millisecond)
	for i := 0; i < 3; i++ {
		p, err := g.Geocode(context.Background(), "Chatham, IL")
		require.NoError(t, err)
		assert.Equal(t, 39.6761, p.Lat)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestNominatimGeocoder_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewNominatim(srv.URL, "", time.Millisecond).Geocode(context.Background(), "x")
	assert.Error(t, err)
}
