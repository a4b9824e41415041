package gateway

import (
	"context"
	"database/sql"

	"auctiondesk/internal/models"
)

const vehicleColumns = `ficha, anio, modelo, coalesce(descripcion,''), imagen_url`

func scanVehicle(row rowScanner) (models.Vehicle, error) {
	var (
		v   models.Vehicle
		img sql.NullString
	)
	if err := row.Scan(&v.Ficha, &v.Year, &v.Model, &v.Description, &img); err != nil {
		return v, err
	}
	v.ImageURL = nullStringPtr(img)
	return v, nil
}

func (g *Gateway) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	rows, err := g.db.QueryContext(ctx, `SELECT `+vehicleColumns+` FROM vehiculo ORDER BY ficha`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vehicles := []models.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (g *Gateway) GetVehicle(ctx context.Context, ficha string) (*models.Vehicle, error) {
	v, err := scanVehicle(g.db.QueryRowContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehiculo WHERE ficha = $1`, ficha))
	if err != nil {
		return nil, notFound(err)
	}
	return &v, nil
}
