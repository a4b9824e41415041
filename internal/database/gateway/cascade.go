package gateway

import (
	"context"
	"database/sql"

	"auctiondesk/internal/models"
)

// CreateAuction inserts the auction row and its managing link together.
func (g *Gateway) CreateAuction(ctx context.Context, a models.Auction, link models.Link) error {
	return g.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO subasta (id_subasta, titulo, descripcion, estado, created_at,
			                      inicio, fin, precio_base, monto_minimo_puja,
			                      cantidad_max_participantes, ficha)
			      VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			a.ID, a.Title, a.Description, string(a.Status), a.CreatedAt,
			a.StartsAt, a.EndsAt, a.BasePrice, a.MinBidIncrement,
			a.MaxParticipants, a.Ficha)
		if err != nil {
			return &StepError{Table: TableAuction, Err: err}
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO gestiona (id_subastador, id_subasta, fecha_creacion) VALUES ($1, $2, $3)`,
			link.AuctioneerID, link.AuctionID, link.CreatedAt)
		if err != nil {
			return &StepError{Table: TableLink, Err: err}
		}
		return nil
	})
}

// DeleteAuctionCascade removes the auction and everything hanging off it, in
// dependency order. The first failing step aborts and rolls everything back.
func (g *Gateway) DeleteAuctionCascade(ctx context.Context, auctionID, auctioneerID string) error {
	steps := []struct {
		table string
		query string
		args  []any
	}{
		{TableBid, `DELETE FROM puja WHERE id_subasta = $1`, []any{auctionID}},
		{TableParticipant, `DELETE FROM participa WHERE id_subasta = $1`, []any{auctionID}},
		{TableAdjudication, `DELETE FROM adjudicacion WHERE id_subasta = $1`, []any{auctionID}},
		{TableLink, `DELETE FROM gestiona WHERE id_subasta = $1 AND id_subastador = $2`, []any{auctionID, auctioneerID}},
		{TableAuction, `DELETE FROM subasta WHERE id_subasta = $1`, []any{auctionID}},
	}

	return g.withTx(ctx, func(tx *sql.Tx) error {
		for _, s := range steps {
			if _, err := tx.ExecContext(ctx, s.query, s.args...); err != nil {
				return &StepError{Table: s.table, Err: err}
			}
		}
		return nil
	})
}
