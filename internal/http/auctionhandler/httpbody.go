package auctionhandler

type CancelAuctionBody struct {
	Reason string `json:"reason" binding:"required" example:"The vehicle was withdrawn by its owner"`
} // @name CancelAuctionRequest

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
} // @name ErrorResponse

type ListAuctionsQuery struct {
	Status []string `form:"status"`
	From   string   `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To     string   `form:"to"   binding:"omitempty,datetime=2006-01-02"`
} // @name ListAuctionsQuery
