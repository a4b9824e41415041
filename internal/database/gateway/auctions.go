package gateway

import (
	"context"
	"database/sql"
	"fmt"

	"auctiondesk/internal/models"

	"github.com/lib/pq"
)

const auctionColumns = `id_subasta, titulo, coalesce(descripcion,''), estado,
       created_at, inicio, fin,
       precio_base, monto_minimo_puja, cantidad_max_participantes,
       ficha, motivo_cancelacion`

func scanAuction(row rowScanner) (models.Auction, error) {
	var (
		a                   models.Auction
		created, start, end sql.NullTime
		ficha, cancelReason sql.NullString
	)
	err := row.Scan(&a.ID, &a.Title, &a.Description, &a.Status,
		&created, &start, &end,
		&a.BasePrice, &a.MinBidIncrement, &a.MaxParticipants,
		&ficha, &cancelReason)
	if err != nil {
		return a, err
	}
	a.CreatedAt = nullTimePtr(created)
	a.StartsAt = nullTimePtr(start)
	a.EndsAt = nullTimePtr(end)
	a.Ficha = nullStringPtr(ficha)
	a.CancelReason = nullStringPtr(cancelReason)
	return a, nil
}

// ListAuctionsByIDs returns the auctions whose id is in ids, latest start first.
func (g *Gateway) ListAuctionsByIDs(ctx context.Context, ids []string) ([]models.Auction, error) {
	if len(ids) == 0 {
		return []models.Auction{}, nil
	}
	rows, err := g.db.QueryContext(ctx,
		`SELECT `+auctionColumns+` FROM subasta
		  WHERE id_subasta::text = ANY($1)
		  ORDER BY inicio DESC NULLS LAST`,
		pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]models.Auction, 0, len(ids))
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (g *Gateway) GetAuction(ctx context.Context, id string) (*models.Auction, error) {
	row := g.db.QueryRowContext(ctx,
		`SELECT `+auctionColumns+` FROM subasta WHERE id_subasta = $1`, id)
	a, err := scanAuction(row)
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (g *Gateway) UpdateAuction(ctx context.Context, id string, u models.AuctionUpdate) error {
	res, err := g.db.ExecContext(ctx,
		`UPDATE subasta
		    SET titulo = $1, descripcion = $2, inicio = $3, fin = $4,
		        precio_base = $5, monto_minimo_puja = $6,
		        cantidad_max_participantes = $7, ficha = $8
		  WHERE id_subasta = $9`,
		u.Title, u.Description, u.StartsAt, u.EndsAt,
		u.BasePrice, u.MinBidIncrement, u.MaxParticipants, u.Ficha, id)
	if err != nil {
		return err
	}
	return expectOne(res)
}

// UpdateStatusFrom moves the auction from one status to another and, when
// reason is non-nil, writes motivo_cancelacion. The row is only touched while
// it still holds from; applied is false when it no longer does (or the
// auction is gone), so a caller working from an old copy never overwrites a
// newer status.
func (g *Gateway) UpdateStatusFrom(ctx context.Context, id string, from, to models.Status, reason *string) (applied bool, err error) {
	var res sql.Result
	if reason != nil {
		res, err = g.db.ExecContext(ctx,
			`UPDATE subasta SET estado = $1, motivo_cancelacion = $2 WHERE id_subasta = $3 AND estado = $4`,
			string(to), *reason, id, string(from))
	} else {
		res, err = g.db.ExecContext(ctx,
			`UPDATE subasta SET estado = $1 WHERE id_subasta = $2 AND estado = $3`,
			string(to), id, string(from))
	}
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListVehicleRefs returns every auction that references a vehicle, except
// excludeAuctionID when it is non-empty.
func (g *Gateway) ListVehicleRefs(ctx context.Context, excludeAuctionID string) ([]models.VehicleRef, error) {
	var (
		rows *sql.Rows
		err  error
	)
	base := `SELECT id_subasta, ficha, estado FROM subasta WHERE ficha IS NOT NULL`
	if excludeAuctionID != "" {
		rows, err = g.db.QueryContext(ctx, base+` AND id_subasta <> $1`, excludeAuctionID)
	} else {
		rows, err = g.db.QueryContext(ctx, base)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []models.VehicleRef
	for rows.Next() {
		var r models.VehicleRef
		if err := rows.Scan(&r.AuctionID, &r.Ficha, &r.Status); err != nil {
			return nil, err
		}
		refs = append(refs, r)
	}
	return refs, rows.Err()
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	if n > 1 {
		return fmt.Errorf("expected one row, updated %d", n)
	}
	return nil
}
