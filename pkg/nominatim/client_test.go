package nominatim_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/manzanit0/nominatry/pkg/nominatim"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*nominatim.Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := nominatim.New(nominatim.FromUserAgent("nominatry-tests"))
	if err := client.SetBaseURL(srv.URL); err != nil {
		t.Fatalf("set base url: %s", err.Error())
	}

	return client, srv
}

func TestIdentificationHeader(t *testing.T) {
	testCases := []struct {
		desc   string
		ident  nominatim.IdentificationMethod
		header string
		value  string
	}{
		{
			desc:   "a user agent identification sets the User-Agent header",
			ident:  nominatim.FromUserAgent("my-application/1.0"),
			header: "User-Agent",
			value:  "my-application/1.0",
		},
		{
			desc:   "a referer identification sets the Referer header",
			ident:  nominatim.FromReferer("https://example.com"),
			header: "Referer",
			value:  "https://example.com",
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			var got string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get(tC.header)
				fmt.Fprint(w, `{"status":0,"message":"OK"}`)
			}))
			defer srv.Close()

			client := nominatim.New(tC.ident)
			if err := client.SetBaseURL(srv.URL); err != nil {
				t.Fatalf("set base url: %s", err.Error())
			}

			if _, err := client.Status(); err != nil {
				t.Fatalf("status: %s", err.Error())
			}

			if got != tC.value {
				t.Errorf("got %q for header %s, want %q", got, tC.header, tC.value)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `{"status":700,"message":"Database connection failed","software_version":"4.2.1"}`)
	})

	status, err := client.Status()
	if err != nil {
		t.Fatalf("status: %s", err.Error())
	}

	if gotPath != "/status.php" {
		t.Errorf("got path %q, want /status.php", gotPath)
	}

	if gotQuery.Get("format") != "json" {
		t.Errorf("got format %q, want json", gotQuery.Get("format"))
	}

	// A non-zero status code is data for the caller, not an error.
	want := &nominatim.Status{Status: 700, Message: "Database connection failed", SoftwareVersion: "4.2.1"}
	if diff := cmp.Diff(want, status); diff != "" {
		t.Errorf("unexpected status (-want +got):\n%s", diff)
	}
}

func TestSearch(t *testing.T) {
	t.Run("the query and the fixed parameters are sent", func(t *testing.T) {
		var gotQuery url.Values
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query()
			fmt.Fprint(w, `[]`)
		})

		if _, err := client.Search("statue of liberty"); err != nil {
			t.Fatalf("search: %s", err.Error())
		}

		for param, want := range map[string]string{
			"q":              "statue of liberty",
			"format":         "json",
			"addressdetails": "1",
			"extratags":      "1",
		} {
			if got := gotQuery.Get(param); got != want {
				t.Errorf("got %s=%q, want %q", param, got, want)
			}
		}
	})

	t.Run("an empty response array is a valid empty result", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[]`)
		})

		places, err := client.Search("xxxxxxxxxx")
		if err != nil {
			t.Fatalf("search: %s", err.Error())
		}

		if len(places) != 0 {
			t.Errorf("got %d places, want none", len(places))
		}
	})

	t.Run("the server ranking is preserved", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[
				{"place_id":1,"display_name":"Paris, France","lat":"48.8588897","lon":"2.3200410"},
				{"place_id":2,"display_name":"Paris, Texas","lat":"33.6617962","lon":"-95.5555130"}
			]`)
		})

		places, err := client.Search("paris")
		if err != nil {
			t.Fatalf("search: %s", err.Error())
		}

		if len(places) != 2 {
			t.Fatalf("got %d places, want 2", len(places))
		}

		if places[0].DisplayName != "Paris, France" || places[1].DisplayName != "Paris, Texas" {
			t.Errorf("results out of order: %q, %q", places[0].DisplayName, places[1].DisplayName)
		}
	})
}

func TestSearchStructured(t *testing.T) {
	var gotQuery url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `[]`)
	})

	_, err := client.SearchStructured(nominatim.StructuredQuery{City: "Paris"})
	if err != nil {
		t.Fatalf("search structured: %s", err.Error())
	}

	if got := gotQuery.Get("city"); got != "Paris" {
		t.Errorf("got city=%q, want Paris", got)
	}

	for _, param := range []string{"amenity", "street", "county", "state", "country", "postalcode"} {
		if gotQuery.Has(param) {
			t.Errorf("unset field %s was encoded as %q", param, gotQuery.Get(param))
		}
	}
}

func TestReverse(t *testing.T) {
	t.Run("a place body yields a place with the exact coordinate strings", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{
				"place_id":123,
				"licence":"ODbL",
				"osm_type":"way",
				"osm_id":238241022,
				"lat":"40.689253199999996",
				"lon":"-74.04454817144321",
				"display_name":"Statue of Liberty, New York, United States",
				"boundingbox":["40.6883573","40.6902995","-74.0472454","-74.0437663"]
			}`)
		})

		place, err := client.Reverse("40.689249", "-74.044500", nil)
		if err != nil {
			t.Fatalf("reverse: %s", err.Error())
		}

		if place == nil {
			t.Fatal("expected a place, got nil")
		}

		// No precision may be lost to float round-tripping.
		if place.Lat != "40.689253199999996" {
			t.Errorf("got lat %q, want the raw response string", place.Lat)
		}

		if place.Lon != "-74.04454817144321" {
			t.Errorf("got lon %q, want the raw response string", place.Lon)
		}
	})

	t.Run("an error body yields an absent place, not a failure", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"error":"Unable to geocode"}`)
		})

		place, err := client.Reverse("0.0", "0.0", nil)
		if err != nil {
			t.Fatalf("reverse: %s", err.Error())
		}

		if place != nil {
			t.Errorf("expected no place, got %+v", place)
		}
	})

	t.Run("coordinates are sent verbatim with whitespace stripped", func(t *testing.T) {
		var gotQuery url.Values
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query()
			fmt.Fprint(w, `{"error":"Unable to geocode"}`)
		})

		if _, err := client.Reverse(" 40.689249 ", "-74.044500", nil); err != nil {
			t.Fatalf("reverse: %s", err.Error())
		}

		if got := gotQuery.Get("lat"); got != "40.689249" {
			t.Errorf("got lat=%q, want 40.689249", got)
		}

		if got := gotQuery.Get("lon"); got != "-74.044500" {
			t.Errorf("got lon=%q, want -74.044500", got)
		}

		if gotQuery.Has("zoom") {
			t.Errorf("zoom was encoded as %q without being set", gotQuery.Get("zoom"))
		}
	})

	t.Run("zoom is forwarded when set", func(t *testing.T) {
		var gotQuery url.Values
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query()
			fmt.Fprint(w, `{"error":"Unable to geocode"}`)
		})

		zoom := 10
		if _, err := client.Reverse("40.689249", "-74.044500", &zoom); err != nil {
			t.Fatalf("reverse: %s", err.Error())
		}

		if got := gotQuery.Get("zoom"); got != "10" {
			t.Errorf("got zoom=%q, want 10", got)
		}
	})
}

func TestLookup(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()

		// Only one of the two ids resolves.
		fmt.Fprint(w, `[{"place_id":1,"osm_type":"relation","osm_id":146656,"display_name":"Manchester, England"}]`)
	})

	places, err := client.Lookup([]string{"R146656", "W50637691"})
	if err != nil {
		t.Fatalf("lookup: %s", err.Error())
	}

	if gotPath != "/lookup" {
		t.Errorf("got path %q, want /lookup", gotPath)
	}

	if got := gotQuery.Get("osm_ids"); got != "R146656,W50637691" {
		t.Errorf("got osm_ids=%q, want R146656,W50637691", got)
	}

	if len(places) != 1 {
		t.Fatalf("got %d places, want 1", len(places))
	}

	if places[0].DisplayName != "Manchester, England" {
		t.Errorf("got %q, want Manchester, England", places[0].DisplayName)
	}
}

func TestSetBaseURL(t *testing.T) {
	testCases := []struct {
		desc    string
		url     string
		wantErr bool
	}{
		{
			desc: "an absolute url is accepted",
			url:  "https://nominatim.example.com/",
		},
		{
			desc:    "a relative url is rejected",
			url:     "/nominatim",
			wantErr: true,
		},
		{
			desc:    "garbage is rejected",
			url:     "://not-a-url",
			wantErr: true,
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			client := nominatim.New(nominatim.FromUserAgent("nominatry-tests"))

			err := client.SetBaseURL(tC.url)
			if tC.wantErr && err == nil {
				t.Errorf("expected an error for %q, got none", tC.url)
			}

			if !tC.wantErr && err != nil {
				t.Errorf("unexpected error for %q: %s", tC.url, err.Error())
			}
		})
	}
}

func TestServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Bandwidth limit exceeded", http.StatusTooManyRequests)
	})

	if _, err := client.Search("paris"); err == nil {
		t.Error("expected an error on a non-200 response, got none")
	}
}
