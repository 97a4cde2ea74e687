package itinerary

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/urban-guide/internal/api/googlemaps"
)

// cachedSearch memoises nearby searches for identical origin, radius and keywords.
// Everything else goes straight to the wrapped client.
type cachedSearch struct {
	PlacesClient
	cache *cache.Cache
}

func newCachedSearch(next PlacesClient, ttl time.Duration) *cachedSearch {
	return &cachedSearch{
		PlacesClient: next,
		cache:        cache.New(ttl, 2*ttl),
	}
}

func (c *cachedSearch) NearbySearch(ctx context.Context, req googlemaps.NearbySearchRequest) ([]googlemaps.Place, error) {
	key := searchKey(req)
	if v, ok := c.cache.Get(key); ok {
		return slices.Clone(v.([]googlemaps.Place)), nil
	}
	places, err := c.PlacesClient.NearbySearch(ctx, req)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, slices.Clone(places))
	return places, nil
}

func searchKey(req googlemaps.NearbySearchRequest) string {
	var b strings.Builder
	b.WriteString(strconv.FormatFloat(req.Location.Lat, 'f', -1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(req.Location.Lng, 'f', -1, 64))
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(req.Radius, 'f', -1, 64))
	for _, k := range req.Keywords {
		b.WriteByte('|')
		b.WriteString(k)
	}
	return b.String()
}
