package nominatim

// IdentificationMethod tells the Nominatim server who is issuing requests.
// The usage policy of the public instance requires every request to identify
// the application through either a Referer or a User-Agent header.
type IdentificationMethod struct {
	header string
	value  string
}

// FromUserAgent identifies the application through the User-Agent header.
func FromUserAgent(value string) IdentificationMethod {
	return IdentificationMethod{header: "User-Agent", value: value}
}

// FromReferer identifies the application through the Referer header.
func FromReferer(value string) IdentificationMethod {
	return IdentificationMethod{header: "Referer", value: value}
}

func (m IdentificationMethod) Header() string {
	return m.header
}

func (m IdentificationMethod) Value() string {
	return m.value
}
