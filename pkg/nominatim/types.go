package nominatim

// Status is the health snapshot returned by the /status.php endpoint. A
// non-zero Status value is data, not a transport failure: the server answered,
// it's just reporting that it isn't healthy. Callers inspect it themselves.
type Status struct {
	Status          int    `json:"status"`
	Message         string `json:"message"`
	DataUpdated     string `json:"data_updated,omitempty"`
	SoftwareVersion string `json:"software_version,omitempty"`
	DatabaseVersion string `json:"database_version,omitempty"`
}

// Place is a single geocoded result. Lat and Lon are kept as the decimal
// strings the server sent, never round-tripped through a float, so the
// source precision is preserved.
type Place struct {
	PlaceID     int64    `json:"place_id"`
	Licence     string   `json:"licence"`
	OSMType     string   `json:"osm_type"`
	OSMID       int64    `json:"osm_id"`
	BoundingBox []string `json:"boundingbox"`
	Lat         string   `json:"lat"`
	Lon         string   `json:"lon"`
	DisplayName string   `json:"display_name"`

	Class      string   `json:"class,omitempty"`
	Type       string   `json:"type,omitempty"`
	Importance *float64 `json:"importance,omitempty"`
	Icon       string   `json:"icon,omitempty"`

	Address   *Address   `json:"address,omitempty"`
	ExtraTags *ExtraTags `json:"extratags,omitempty"`
}

// Address is the administrative hierarchy of a place. Nominatim omits every
// level that doesn't apply, so all fields are optional.
type Address struct {
	HouseNumber   string `json:"house_number,omitempty"`
	Road          string `json:"road,omitempty"`
	Suburb        string `json:"suburb,omitempty"`
	Village       string `json:"village,omitempty"`
	Town          string `json:"town,omitempty"`
	City          string `json:"city,omitempty"`
	Municipality  string `json:"municipality,omitempty"`
	County        string `json:"county,omitempty"`
	StateDistrict string `json:"state_district,omitempty"`
	State         string `json:"state,omitempty"`
	ISO31662Lvl4  string `json:"ISO3166-2-lvl4,omitempty"`
	Postcode      string `json:"postcode,omitempty"`
	Country       string `json:"country,omitempty"`
	CountryCode   string `json:"country_code,omitempty"`
}

// ExtraTags is the extra OSM metadata a place may carry.
type ExtraTags struct {
	Capital    string `json:"capital,omitempty"`
	Website    string `json:"website,omitempty"`
	Wikidata   string `json:"wikidata,omitempty"`
	Wikipedia  string `json:"wikipedia,omitempty"`
	Population string `json:"population,omitempty"`
}

// StructuredQuery is a search expressed as discrete address components
// instead of free text. Empty fields are omitted from the request entirely.
type StructuredQuery struct {
	Amenity    string
	Street     string
	City       string
	County     string
	State      string
	Country    string
	PostalCode string
}

type errorResponse struct {
	Error string `json:"error"`
}
