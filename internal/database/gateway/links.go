package gateway

import (
	"context"

	"auctiondesk/internal/models"
)

// ListLinks returns the auctions managed by auctioneerID, newest first.
func (g *Gateway) ListLinks(ctx context.Context, auctioneerID string) ([]models.Link, error) {
	rows, err := g.db.QueryContext(ctx,
		`SELECT id_subastador, id_subasta, fecha_creacion FROM gestiona
		  WHERE id_subastador = $1
		  ORDER BY fecha_creacion DESC`, auctioneerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []models.Link
	for rows.Next() {
		var l models.Link
		if err := rows.Scan(&l.AuctioneerID, &l.AuctionID, &l.CreatedAt); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

func (g *Gateway) LinkExists(ctx context.Context, auctionID, auctioneerID string) (bool, error) {
	var exists bool
	err := g.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM gestiona WHERE id_subasta = $1 AND id_subastador = $2)`,
		auctionID, auctioneerID).Scan(&exists)
	return exists, err
}
