package auction

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"auctiondesk/internal/models"
)

const MaxCancelReasonLen = 300

var (
	ErrInFlight        = errors.New("another action on this auction is in progress")
	ErrNotPending      = errors.New("auction is not pending")
	ErrNotPublished    = errors.New("auction is not published")
	ErrNotActive       = errors.New("auction is not active")
	ErrNotDeletable    = errors.New("only pending, finalized, expired or cancelled auctions can be deleted")
	ErrMissingSchedule = errors.New("auction has no start or end date")
	ErrStartPassed     = errors.New("start date has already passed")
	ErrEndPassed       = errors.New("end date has already passed")
	ErrEndBeforeStart  = errors.New("end date must be after start date")
	ErrReasonRequired  = errors.New("cancellation reason is required")
	ErrReasonTooLong   = errors.New("cancellation reason exceeds 300 characters")
)

// IsTransient reports the client-local substates shown while a write is in flight.
func IsTransient(s models.Status) bool {
	switch s {
	case models.StatusPublishing, models.StatusPausing, models.StatusCancelling:
		return true
	}
	return false
}

// IsTerminal reports statuses no transition leaves.
func IsTerminal(s models.Status) bool {
	return s == models.StatusFinalized || s == models.StatusCancelled
}

// CheckPublish gates Pendiente -> Publicada.
func CheckPublish(a models.Auction, now time.Time) error {
	if IsTransient(a.Status) {
		return ErrInFlight
	}
	if a.Status != models.StatusPending {
		return ErrNotPending
	}
	if a.StartsAt == nil || a.EndsAt == nil {
		return ErrMissingSchedule
	}
	if !a.StartsAt.After(now) {
		return ErrStartPassed
	}
	if !a.EndsAt.After(now) {
		return ErrEndPassed
	}
	if !a.EndsAt.After(*a.StartsAt) {
		return ErrEndBeforeStart
	}
	return nil
}

// CheckStop gates Publicada -> Pendiente.
func CheckStop(a models.Auction) error {
	if IsTransient(a.Status) {
		return ErrInFlight
	}
	if a.Status != models.StatusPublished {
		return ErrNotPublished
	}
	return nil
}

// CheckCancel gates Activa -> Cancelada and returns the reason to persist.
func CheckCancel(a models.Auction, reason string) (string, error) {
	if IsTransient(a.Status) {
		return "", ErrInFlight
	}
	if a.Status != models.StatusActive {
		return "", ErrNotActive
	}
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return "", ErrReasonRequired
	}
	if utf8.RuneCountInString(reason) > MaxCancelReasonLen {
		return "", ErrReasonTooLong
	}
	return trimmed, nil
}

func CheckDelete(a models.Auction) error {
	switch a.Status {
	case models.StatusPending, models.StatusFinalized, models.StatusExpired, models.StatusCancelled:
		return nil
	}
	if IsTransient(a.Status) {
		return ErrInFlight
	}
	return ErrNotDeletable
}

func CheckEdit(a models.Auction) error {
	if IsTransient(a.Status) {
		return ErrInFlight
	}
	if a.Status != models.StatusPending {
		return ErrNotPending
	}
	return nil
}

// NextAutomatic evaluates the time-driven transitions once. adjudicated is only
// consulted for Expirada auctions. At most one step is taken per call.
func NextAutomatic(a models.Auction, now time.Time, adjudicated bool) (models.Status, bool) {
	switch a.Status {
	case models.StatusPublished:
		if a.StartsAt != nil && !now.Before(*a.StartsAt) {
			return models.StatusActive, true
		}
	case models.StatusActive:
		if a.EndsAt != nil && !now.Before(*a.EndsAt) {
			return models.StatusExpired, true
		}
	case models.StatusExpired:
		if adjudicated {
			return models.StatusFinalized, true
		}
	}
	return a.Status, false
}
