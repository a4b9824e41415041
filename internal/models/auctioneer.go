package models

const DefaultAuctioneerName = "Usuario"

type Auctioneer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
