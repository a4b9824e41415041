package auctionview

import (
	"time"

	"auctiondesk/internal/models"

	"github.com/shopspring/decimal"
)

const ExampleDataBanner = "Could not connect to the database. Showing example data."

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// exampleAuctions is shown when the store cannot be reached.
func exampleAuctions() []models.Auction {
	return []models.Auction{
		{
			ID:              "1",
			Title:           "Toyota Corolla",
			Status:          models.StatusPending,
			CreatedAt:       day(2025, time.April, 12),
			StartsAt:        day(2025, time.April, 12),
			EndsAt:          day(2025, time.April, 20),
			BasePrice:       decimal.NewFromInt(2000),
			MinBidIncrement: decimal.NewFromInt(100),
			MaxParticipants: 30,
		},
		{
			ID:              "2",
			Title:           "Moto Yamaha",
			Status:          models.StatusPublished,
			CreatedAt:       day(2025, time.April, 1),
			StartsAt:        day(2025, time.April, 1),
			EndsAt:          day(2025, time.April, 15),
			BasePrice:       decimal.NewFromInt(1500),
			MinBidIncrement: decimal.NewFromInt(50),
			MaxParticipants: 25,
		},
		{
			ID:              "3",
			Title:           "Moto Yamaha",
			Status:          models.StatusFinalized,
			CreatedAt:       day(2025, time.March, 15),
			StartsAt:        day(2025, time.March, 15),
			EndsAt:          day(2025, time.March, 30),
			BasePrice:       decimal.NewFromInt(1200),
			MinBidIncrement: decimal.NewFromInt(50),
			MaxParticipants: 25,
		},
	}
}
