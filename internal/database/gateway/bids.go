package gateway

import (
	"context"
	"database/sql"
	"strings"

	"auctiondesk/internal/models"
)

// ListBids returns the bids of an auction, most recent first (date, then time).
func (g *Gateway) ListBids(ctx context.Context, auctionID string) ([]models.Bid, error) {
	rows, err := g.db.QueryContext(ctx,
		`SELECT p.id_puja, p.monto,
		        to_char(p.fecha, 'YYYY-MM-DD'), to_char(p.hora, 'HH24:MI:SS'),
		        p.id_postor, u.nombre, u.primer_apellido
		   FROM puja p
		   LEFT JOIN postor po ON po.id_postor = p.id_postor
		   LEFT JOIN usuario u ON u.id_usuario = po.id_usuario
		  WHERE p.id_subasta = $1
		  ORDER BY p.fecha DESC, p.hora DESC`, auctionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := []models.Bid{}
	for rows.Next() {
		var (
			b              models.Bid
			name, lastName sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.Amount, &b.Date, &b.Time, &b.BidderID, &name, &lastName); err != nil {
			return nil, err
		}
		b.BidderName = bidderName(name, lastName)
		bids = append(bids, b)
	}
	return bids, rows.Err()
}

func bidderName(name, lastName sql.NullString) string {
	if !name.Valid && !lastName.Valid {
		return models.UnknownBidder
	}
	return strings.TrimSpace(name.String + " " + lastName.String)
}

func (g *Gateway) HasAdjudication(ctx context.Context, auctionID string) (bool, error) {
	var exists bool
	err := g.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM adjudicacion WHERE id_subasta = $1)`, auctionID).Scan(&exists)
	return exists, err
}
