package ws

import (
	"sync"
)

// Hub keeps one room of dashboard connections per auctioneer.
type Hub struct {
	rooms sync.Map // auctioneerID -> *room
}

func NewHub() *Hub { return &Hub{} }

// Broadcast sends msg to every dashboard of the auctioneer.
func (h *Hub) Broadcast(auctioneerID string, msg []byte) {
	if v, ok := h.rooms.Load(auctioneerID); ok {
		v.(*room).broadcast(msg)
	}
}

func (h *Hub) Join(auctioneerID string, c *clientConn) {
	r, _ := h.rooms.LoadOrStore(auctioneerID, newRoom())
	r.(*room).add(c)
}

func (h *Hub) Leave(auctioneerID string, c *clientConn) {
	if v, ok := h.rooms.Load(auctioneerID); ok {
		v.(*room).remove(c)
	}
}

// Size reports how many dashboards of the auctioneer are connected.
func (h *Hub) Size(auctioneerID string) int {
	if v, ok := h.rooms.Load(auctioneerID); ok {
		return v.(*room).size()
	}
	return 0
}
