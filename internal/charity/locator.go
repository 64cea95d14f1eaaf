// Package charity finds donation destinations, merging the locally verified
// charity list with facilities discovered through the Overpass geodata API.
package charity

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/rewear-ai/rewear/internal/model"
	"github.com/rewear-ai/rewear/internal/store"
)

// DefaultBaseURL is the public Overpass API interpreter endpoint.
const DefaultBaseURL = "https://overpass-api.de/api/interpreter"

// DefaultTimeout bounds a single Overpass request.
const DefaultTimeout = 8 * time.Second

// DefaultRadiusMeters is the search radius around the user's coordinates.
const DefaultRadiusMeters = 15000

// fallbackName is used for facilities without a usable name tag.
const fallbackName = "Community Support Center"

// fallbackAddress is used for facilities without address tags.
const fallbackAddress = "Local Area"

// cacheTTL is how long external lookup results are reused per coordinate pair.
const cacheTTL = 15 * time.Minute

// Locator produces an ordered list of donation destination candidates.
type Locator struct {
	db      *sql.DB
	baseURL string
	radius  int
	http    *http.Client
	cache   *cache.Cache
}

// NewLocator creates a Locator. Empty baseURL, zero timeout and zero radius
// use the defaults.
func NewLocator(db *sql.DB, baseURL string, timeout time.Duration, radius int) *Locator {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if radius == 0 {
		radius = DefaultRadiusMeters
	}
	return &Locator{
		db:      db,
		baseURL: baseURL,
		radius:  radius,
		http:    &http.Client{Timeout: timeout},
		cache:   cache.New(cacheTTL, 2*cacheTTL),
	}
}

// FindNearby returns donation candidates: every verified charity first, then
// externally discovered facilities within the search radius of the given
// coordinates. Candidates are de-duplicated by normalized name, with verified
// entries taking precedence.
//
// Failures degrade instead of propagating: a store error yields an empty
// verified set, an external error yields a verified-only list. The external
// lookup is skipped entirely when either coordinate is missing.
func (l *Locator) FindNearby(ctx context.Context, lat, lon *float64) []model.CharityCandidate {
	var candidates []model.CharityCandidate
	seen := make(map[string]bool)

	verified, err := store.ListCharities(ctx, l.db)
	if err != nil {
		slog.Error("failed to list verified charities", "error", err)
	}
	for _, c := range verified {
		candidates = append(candidates, c.Candidate())
		seen[normalizeName(c.Name)] = true
	}

	if lat == nil || lon == nil {
		return candidates
	}

	external, err := l.fetchExternal(ctx, *lat, *lon)
	if err != nil {
		slog.Warn("external charity lookup failed, using verified list only", "error", err)
		return candidates
	}

	for _, c := range external {
		key := normalizeName(c.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		candidates = append(candidates, c)
	}

	return candidates
}

// normalizeName is the de-duplication key for candidate names across the
// local store and the external source.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type overpassPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type overpassElement struct {
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *overpassPoint    `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

// buildQuery composes the Overpass QL query for charity-like facilities
// around the given point.
func buildQuery(lat, lon float64, radius int) string {
	around := fmt.Sprintf("(around:%d,%g,%g)", radius, lat, lon)
	return fmt.Sprintf(`[out:json][timeout:25];
(
  node["social_facility"]%[1]s;
  node["amenity"="social_centre"]%[1]s;
  node["office"="ngo"]%[1]s;
  node["charity"="yes"]%[1]s;
);
out center;`, around)
}

// fetchExternal queries the Overpass API and converts each element into a
// candidate. Successful responses are cached briefly per coordinate pair.
func (l *Locator) fetchExternal(ctx context.Context, lat, lon float64) ([]model.CharityCandidate, error) {
	key := fmt.Sprintf("%.3f,%.3f", lat, lon)
	if cached, ok := l.cache.Get(key); ok {
		return cached.([]model.CharityCandidate), nil
	}

	params := url.Values{}
	params.Set("data", buildQuery(lat, lon, l.radius))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building overpass request: %w", err)
	}

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying overpass: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass returned status %d", resp.StatusCode)
	}

	var parsed overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding overpass response: %w", err)
	}

	candidates := make([]model.CharityCandidate, 0, len(parsed.Elements))
	for _, el := range parsed.Elements {
		candidates = append(candidates, candidateFromElement(el))
	}

	l.cache.Set(key, candidates, cache.DefaultExpiration)
	return candidates, nil
}

// candidateFromElement derives a candidate from an Overpass element,
// substituting fixed fallbacks for missing tags. Ways and relations carry
// their coordinates in a center point rather than directly.
func candidateFromElement(el overpassElement) model.CharityCandidate {
	name := el.Tags["name"]
	if name == "" {
		name = el.Tags["official_name"]
	}
	if name == "" {
		name = fallbackName
	}

	kind := el.Tags["social_facility:for"]
	if kind == "" {
		kind = model.CandidateNonProfit
	}

	address := el.Tags["addr:street"]
	if address == "" {
		address = el.Tags["addr:city"]
	}
	if address == "" {
		address = fallbackAddress
	}

	lat, lon := el.Lat, el.Lon
	if lat == nil && el.Center != nil {
		lat = &el.Center.Lat
	}
	if lon == nil && el.Center != nil {
		lon = &el.Center.Lon
	}

	return model.CharityCandidate{
		Name:    name,
		Type:    kind,
		Address: address,
		Lat:     lat,
		Lon:     lon,
	}
}
