package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/manzanit0/nominatry/pkg/env"
	"github.com/manzanit0/nominatry/pkg/logger"
	"github.com/manzanit0/nominatry/pkg/nominatim"
)

const ServiceName = "geocli"

const usage = `usage: geocli <command> [arguments]

commands:
  status                      check the health of the nominatim server
  search <query>              geocode a free-text query
  reverse <lat> <lon> [zoom]  resolve coordinates to the nearest place
  lookup <osm_id>...          resolve OSM ids, e.g. R146656 W50637691`

func init() {
	logger.InitGlobalSlog(ServiceName)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("geocli failed", "error", err.Error())
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", usage)
	}

	client, err := newNominatimClient()
	if err != nil {
		return err
	}

	switch args[0] {
	case "status":
		return runStatus(client)
	case "search":
		if len(args) < 2 {
			return fmt.Errorf("usage: geocli search <query>")
		}

		return runSearch(client, strings.Join(args[1:], " "))
	case "reverse":
		if len(args) < 3 {
			return fmt.Errorf("usage: geocli reverse <lat> <lon> [zoom]")
		}

		var zoom *int
		if len(args) > 3 {
			z, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("failed to parse zoom as integer: %s", err.Error())
			}

			zoom = &z
		}

		return runReverse(client, args[1], args[2], zoom)
	case "lookup":
		if len(args) < 2 {
			return fmt.Errorf("usage: geocli lookup <osm_id>...")
		}

		return runLookup(client, args[1:])
	default:
		return fmt.Errorf("unknown command %q\n\n%s", args[0], usage)
	}
}

func runStatus(client *nominatim.Client) error {
	status, err := client.Status()
	if err != nil {
		return fmt.Errorf("check server status: %w", err)
	}

	if status.Status == 0 {
		fmt.Printf("server healthy: %s\n", status.Message)
	} else {
		fmt.Printf("server reports fault %d: %s\n", status.Status, status.Message)
	}

	if status.SoftwareVersion != "" {
		fmt.Printf("software version: %s\n", status.SoftwareVersion)
	}

	if status.DataUpdated != "" {
		fmt.Printf("data updated: %s\n", status.DataUpdated)
	}

	return nil
}

func runSearch(client *nominatim.Client, query string) error {
	places, err := client.Search(query)
	if err != nil {
		return fmt.Errorf("search %q: %w", query, err)
	}

	if len(places) == 0 {
		fmt.Printf("no places found for %q\n", query)
		return nil
	}

	printPlaces(places)
	return nil
}

func runReverse(client *nominatim.Client, lat, lon string, zoom *int) error {
	place, err := client.Reverse(lat, lon, zoom)
	if err != nil {
		return fmt.Errorf("reverse geocode %s, %s: %w", lat, lon, err)
	}

	if place == nil {
		fmt.Printf("no place found at %s, %s\n", lat, lon)
		return nil
	}

	printPlaces([]nominatim.Place{*place})
	return nil
}

func runLookup(client *nominatim.Client, osmIDs []string) error {
	places, err := client.Lookup(osmIDs)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", strings.Join(osmIDs, ","), err)
	}

	if len(places) == 0 {
		fmt.Println("no places found for the given ids")
		return nil
	}

	printPlaces(places)
	return nil
}

func printPlaces(places []nominatim.Place) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"OSM", "Latitude", "Longitude", "Name"})

	for _, p := range places {
		table.Append([]string{
			fmt.Sprintf("%s/%d", p.OSMType, p.OSMID),
			p.Lat,
			p.Lon,
			p.DisplayName,
		})
	}

	table.SetRowLine(true)
	table.SetRowSeparator("-")
	table.Render()
}

// newNominatimClient wires the client without the logging transport; geocli
// writes tables to stdout and request logs would garble them.
func newNominatimClient() (*nominatim.Client, error) {
	ident, err := env.Identification()
	if err != nil {
		return nil, err
	}

	client := nominatim.New(ident)

	if baseURL := os.Getenv("NOMINATIM_BASE_URL"); baseURL != "" {
		if err := client.SetBaseURL(baseURL); err != nil {
			return nil, fmt.Errorf("failed to parse NOMINATIM_BASE_URL: %w", err)
		}
	}

	return client, nil
}
