package places

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Place is a geocoded bookmark a user saved under a name of their choosing.
type Place struct {
	Name        string
	DisplayName string
	Latitude    float64
	Longitude   float64
	Country     string
	CountryCode string
	OSMType     string
	OSMID       int64
}

type dbPlace struct {
	Name string `db:"name"`

	DisplayName *string  `db:"display_name"`
	Latitude    *float64 `db:"latitude"`
	Longitude   *float64 `db:"longitude"`

	Country     *string `db:"country"`
	CountryCode *string `db:"country_code"`

	OSMType *string `db:"osm_type"`
	OSMID   *int64  `db:"osm_id"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Repository interface {
	SavePlace(ctx context.Context, place *Place) error
	GetPlace(ctx context.Context, name string) (*Place, error)
	ListPlaces(ctx context.Context) ([]*Place, error)
}

type pgRepo struct {
	db *sqlx.DB
}

var _ Repository = (*pgRepo)(nil)

func NewPgRepository(db *sql.DB) *pgRepo {
	return &pgRepo{db: sqlx.NewDb(db, "postgres")}
}

func (r *pgRepo) SavePlace(ctx context.Context, place *Place) error {
	query := `
	INSERT INTO places (name, display_name, latitude, longitude, country, country_code, osm_type, osm_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (name) DO UPDATE
	SET display_name = $2, latitude = $3, longitude = $4, country = $5, country_code = $6, osm_type = $7, osm_id = $8, updated_at = NOW();`

	_, err := r.db.ExecContext(ctx, query,
		place.Name, place.DisplayName, place.Latitude, place.Longitude,
		place.Country, place.CountryCode, place.OSMType, place.OSMID)
	if err != nil {
		return fmt.Errorf("upsert place: %w", err)
	}

	return nil
}

func (r *pgRepo) GetPlace(ctx context.Context, name string) (*Place, error) {
	var p dbPlace

	err := r.db.GetContext(ctx, &p, `SELECT * FROM places WHERE name = $1 LIMIT 1`, name)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("select place: %w", err)
	} else if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	return p.Map(), nil
}

func (r *pgRepo) ListPlaces(ctx context.Context) ([]*Place, error) {
	var rows []dbPlace

	err := r.db.SelectContext(ctx, &rows, `SELECT * FROM places ORDER BY name`)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("select places: %w", err)
	}

	placesx := make([]*Place, len(rows))
	for i := range rows {
		placesx[i] = rows[i].Map()
	}

	return placesx, nil
}

func (p dbPlace) Map() *Place {
	place := Place{Name: p.Name}

	if p.DisplayName != nil {
		place.DisplayName = *p.DisplayName
	}

	if p.Latitude != nil {
		place.Latitude = *p.Latitude
	}

	if p.Longitude != nil {
		place.Longitude = *p.Longitude
	}

	if p.Country != nil {
		place.Country = *p.Country
	}

	if p.CountryCode != nil {
		place.CountryCode = *p.CountryCode
	}

	if p.OSMType != nil {
		place.OSMType = *p.OSMType
	}

	if p.OSMID != nil {
		place.OSMID = *p.OSMID
	}

	return &place
}
