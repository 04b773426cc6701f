package geocode

import (
	"fmt"
	"strconv"

	"github.com/manzanit0/nominatry/pkg/nominatim"
)

func NewNominatimClient(n *nominatim.Client) *nc {
	return &nc{n: n}
}

type nc struct {
	n *nominatim.Client
}

var _ Client = (*nc)(nil)

func (c *nc) Geocode(query string) (*Location, error) {
	places, err := c.n.Search(query)
	if err != nil {
		return nil, err
	}

	if len(places) == 0 {
		return nil, fmt.Errorf("unable to geocode address")
	}

	// The first place is the server's best match.
	best := places[0]

	lat, err := strconv.ParseFloat(best.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse latitude %q: %w", best.Lat, err)
	}

	lon, err := strconv.ParseFloat(best.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse longitude %q: %w", best.Lon, err)
	}

	location := Location{Latitude: lat, Longitude: lon, Name: query}
	if best.Address != nil {
		location.Country = best.Address.Country
		location.CountryCode = best.Address.CountryCode
	}

	return &location, nil
}

func (c *nc) ReverseGeocode(lat, lon float64) (*Location, error) {
	place, err := c.n.Reverse(formatCoordinate(lat), formatCoordinate(lon), nil)
	if err != nil {
		return nil, err
	}

	if place == nil {
		return nil, fmt.Errorf("unable to reverse geocode location")
	}

	location := Location{Latitude: lat, Longitude: lon, Name: place.DisplayName}
	if place.Address != nil {
		location.Country = place.Address.Country
		location.CountryCode = place.Address.CountryCode

		if city := cityOf(place.Address); city != "" {
			location.Name = fmt.Sprintf("%s, %s", city, place.Address.Country)
		}
	}

	return &location, nil
}

// cityOf walks down the administrative levels until one is populated.
func cityOf(a *nominatim.Address) string {
	for _, name := range []string{a.City, a.Town, a.Village, a.Municipality, a.County} {
		if name != "" {
			return name
		}
	}

	return ""
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
