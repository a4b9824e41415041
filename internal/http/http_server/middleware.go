package http_server

import (
	"auctiondesk/internal/actor"

	"github.com/gin-gonic/gin"
)

// ActorMiddleware installs the acting auctioneer on every request context.
// Authentication is stubbed, so this is always the configured auctioneer.
func ActorMiddleware(auctioneerID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(actor.WithAuctioneer(c.Request.Context(), auctioneerID))
		c.Next()
	}
}
