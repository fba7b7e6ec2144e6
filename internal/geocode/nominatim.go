package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultNominatimURL = "https://nominatim.openstreetmap.org"

// NominatimGeocoder queries an OSM Nominatim instance. Results are cached per
// query and requests are spaced by MinInterval, as the public instance asks.
type NominatimGeocoder struct {
	BaseURL   string
	UserAgent string
	Client    *http.Client

	limiter *rate.Limiter
	mu      sync.Mutex
	cache   map[string]Place
}

func NewNominatim(baseURL, userAgent string, minInterval time.Duration) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = defaultNominatimURL
	}
	if userAgent == "" {
		userAgent = "grndwrk-backend"
	}
	if minInterval <= 0 {
		minInterval = time.Second
	}
	return &NominatimGeocoder{
		BaseURL:   baseURL,
		UserAgent: userAgent,
		Client:    &http.Client{Timeout: 10 * time.Second},
		limiter:   rate.NewLimiter(rate.Every(minInterval), 1),
		cache:     map[string]Place{},
	}
}

type nominatimItem struct {
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	DisplayName string  `json:"display_name"`
	Importance  float64 `json:"importance"`
}

func (g *NominatimGeocoder) Geocode(ctx context.Context, query string) (Place, error) {
	g.mu.Lock()
	if cached, ok := g.cache[query]; ok {
		g.mu.Unlock()
		return cached, nil
	}
	g.mu.Unlock()

	if err := g.limiter.Wait(ctx); err != nil {
		return Place{}, err
	}

	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", g.BaseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Place{}, err
	}
	req.Header.Set("User-Agent", g.UserAgent)

	resp, err := g.Client.Do(req)
	if err != nil {
		return Place{}, eris.Wrap(err, "geocode: nominatim request")
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Place{}, eris.Errorf("geocode: nominatim http error: %s", resp.Status)
	}

	var items []nominatimItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return Place{}, eris.Wrap(err, "geocode: decode nominatim response")
	}
	place, err := parseNominatimItems(items)
	if err != nil {
		return Place{}, err
	}

	g.mu.Lock()
	g.cache[query] = place
	g.mu.Unlock()
	return place, nil
}

func parseNominatimItems(items []nominatimItem) (Place, error) {
	if len(items) == 0 {
		return Place{}, ErrNotFound
	}
	lat, err := strconv.ParseFloat(items[0].Lat, 64)
	if err != nil {
		return Place{}, eris.Wrap(err, "geocode: parse lat")
	}
	lon, err := strconv.ParseFloat(items[0].Lon, 64)
	if err != nil {
		return Place{}, eris.Wrap(err, "geocode: parse lon")
	}
	if lat == 0 && lon == 0 && items[0].DisplayName == "" {
		return Place{}, ErrNotFound
	}
	return Place{Lat: lat, Lon: lon, DisplayName: items[0].DisplayName, Confidence: items[0].Importance}, nil
}
