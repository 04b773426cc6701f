package main

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/manzanit0/nominatry/cmd/server/places"
	"github.com/manzanit0/nominatry/pkg/nominatim"
)

func statusController(client *nominatim.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, err := client.Status()
		if err != nil {
			c.JSON(502, gin.H{"error": err.Error()})
			return
		}

		c.JSON(200, status)
	}
}

func searchController(client *nominatim.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if q := c.Query("q"); q != "" {
			found, err := client.Search(q)
			if err != nil {
				c.JSON(502, gin.H{"error": err.Error()})
				return
			}

			c.JSON(200, found)
			return
		}

		structured := nominatim.StructuredQuery{
			Amenity:    c.Query("amenity"),
			Street:     c.Query("street"),
			City:       c.Query("city"),
			County:     c.Query("county"),
			State:      c.Query("state"),
			Country:    c.Query("country"),
			PostalCode: c.Query("postalcode"),
		}

		if structured == (nominatim.StructuredQuery{}) {
			c.JSON(400, gin.H{"error": "provide q or at least one structured search field"})
			return
		}

		found, err := client.SearchStructured(structured)
		if err != nil {
			c.JSON(502, gin.H{"error": err.Error()})
			return
		}

		c.JSON(200, found)
	}
}

func reverseController(client *nominatim.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		lat, lon := c.Query("lat"), c.Query("lon")
		if lat == "" || lon == "" {
			c.JSON(400, gin.H{"error": "lat and lon are required"})
			return
		}

		var zoom *int
		if raw := c.Query("zoom"); raw != "" {
			z, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(400, gin.H{"error": "zoom must be an integer"})
				return
			}

			zoom = &z
		}

		place, err := client.Reverse(lat, lon, zoom)
		if err != nil {
			c.JSON(502, gin.H{"error": err.Error()})
			return
		}

		if place == nil {
			c.JSON(404, gin.H{"error": "no place found at the given coordinates"})
			return
		}

		c.JSON(200, place)
	}
}

func lookupController(client *nominatim.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Query("osm_ids")
		if raw == "" {
			c.JSON(400, gin.H{"error": "osm_ids is required"})
			return
		}

		found, err := client.Lookup(strings.Split(raw, ","))
		if err != nil {
			c.JSON(502, gin.H{"error": err.Error()})
			return
		}

		c.JSON(200, found)
	}
}

type savePlaceRequest struct {
	Name  string `json:"name"`
	Query string `json:"query"`
}

func savePlaceController(client *nominatim.Client, repo places.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req savePlaceRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": "bad request"})
			return
		}

		if req.Name == "" || req.Query == "" {
			c.JSON(400, gin.H{"error": "name and query are required"})
			return
		}

		found, err := client.Search(req.Query)
		if err != nil {
			c.JSON(502, gin.H{"error": err.Error()})
			return
		}

		if len(found) == 0 {
			c.JSON(404, gin.H{"error": "no place found for the given query"})
			return
		}

		best := found[0]

		// The coordinates are stored as floats; the saved place is a
		// bookmark, not a wire-precision mirror.
		latitude, _ := strconv.ParseFloat(best.Lat, 64)
		longitude, _ := strconv.ParseFloat(best.Lon, 64)

		place := places.Place{
			Name:        req.Name,
			DisplayName: best.DisplayName,
			Latitude:    latitude,
			Longitude:   longitude,
			OSMType:     best.OSMType,
			OSMID:       best.OSMID,
		}

		if best.Address != nil {
			place.Country = best.Address.Country
			place.CountryCode = best.Address.CountryCode
		}

		if err := repo.SavePlace(c.Request.Context(), &place); err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}

		c.JSON(201, place)
	}
}

func getPlaceController(repo places.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		place, err := repo.GetPlace(c.Request.Context(), c.Param("name"))
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}

		if place == nil {
			c.JSON(404, gin.H{"error": "no saved place under that name"})
			return
		}

		c.JSON(200, place)
	}
}

func listPlacesController(repo places.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		found, err := repo.ListPlaces(c.Request.Context())
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}

		c.JSON(200, found)
	}
}
