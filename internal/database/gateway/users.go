package gateway

import (
	"context"
	"strings"
)

// GetAuctioneerName resolves subastador -> usuario and returns the display
// name ("nombre primer_apellido"). A blank name yields "".
func (g *Gateway) GetAuctioneerName(ctx context.Context, auctioneerID string) (string, error) {
	var userID string
	err := g.db.QueryRowContext(ctx,
		`SELECT id_usuario FROM subastador WHERE id_subastador = $1`, auctioneerID).Scan(&userID)
	if err != nil {
		return "", notFound(err)
	}

	var name, lastName string
	err = g.db.QueryRowContext(ctx,
		`SELECT coalesce(nombre,''), coalesce(primer_apellido,'') FROM usuario WHERE id_usuario = $1`,
		userID).Scan(&name, &lastName)
	if err != nil {
		return "", notFound(err)
	}
	return strings.TrimSpace(name + " " + lastName), nil
}
