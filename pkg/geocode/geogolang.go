package geocode

import (
	"strconv"
	"strings"

	"github.com/codingsince1985/geo-golang"
	"github.com/manzanit0/nominatry/pkg/nominatim"
)

// NewGeoGolangGeocoder exposes a nominatim.Client through geo-golang's
// Geocoder interface, so code written against that library can keep its
// call sites while gaining a configurable instance, identification header
// and timeout.
func NewGeoGolangGeocoder(n *nominatim.Client) geo.Geocoder {
	return &gg{n: n}
}

type gg struct {
	n *nominatim.Client
}

func (c *gg) Geocode(address string) (*geo.Location, error) {
	places, err := c.n.Search(address)
	if err != nil {
		return nil, err
	}

	if len(places) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, err
	}

	lng, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, err
	}

	return &geo.Location{Lat: lat, Lng: lng}, nil
}

func (c *gg) ReverseGeocode(lat, lng float64) (*geo.Address, error) {
	place, err := c.n.Reverse(formatCoordinate(lat), formatCoordinate(lng), nil)
	if err != nil {
		return nil, err
	}

	if place == nil {
		return nil, nil
	}

	address := geo.Address{FormattedAddress: place.DisplayName}
	if a := place.Address; a != nil {
		address.Street = a.Road
		address.HouseNumber = a.HouseNumber
		address.Suburb = a.Suburb
		address.Postcode = a.Postcode
		address.State = a.State
		address.StateDistrict = a.StateDistrict
		address.County = a.County
		address.Country = a.Country
		// geo-golang's own openstreetmap geocoder upper-cases the code.
		address.CountryCode = strings.ToUpper(a.CountryCode)
		address.City = cityOf(a)
	}

	return &address, nil
}
