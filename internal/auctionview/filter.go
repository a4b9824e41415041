package auctionview

import (
	"fmt"
	"slices"
	"time"

	"auctiondesk/internal/models"
)

const dateLayout = "2006-01-02"

// Filter narrows the auction list. All predicates are conjunctive and an
// empty Statuses set does not filter by status. From and To are calendar
// days; the time of day is ignored.
type Filter struct {
	Statuses []models.Status `json:"statuses,omitempty"`
	From     *time.Time      `json:"from,omitempty"`
	To       *time.Time      `json:"to,omitempty"`
}

// ParseFilter builds a Filter from query values. Dates use YYYY-MM-DD and are
// read in loc.
func ParseFilter(statuses []string, from, to string, loc *time.Location) (Filter, error) {
	var f Filter
	for _, s := range statuses {
		st := models.Status(s)
		if !st.Valid() {
			return Filter{}, fmt.Errorf("unknown status %q", s)
		}
		if !slices.Contains(f.Statuses, st) {
			f.Statuses = append(f.Statuses, st)
		}
	}
	if from != "" {
		t, err := time.ParseInLocation(dateLayout, from, loc)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid from date %q", from)
		}
		f.From = &t
	}
	if to != "" {
		t, err := time.ParseInLocation(dateLayout, to, loc)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid to date %q", to)
		}
		f.To = &t
	}
	return f, nil
}

// ToggleStatus adds s to the selected set, or removes it when present.
func (f Filter) ToggleStatus(s models.Status) Filter {
	if i := slices.Index(f.Statuses, s); i >= 0 {
		f.Statuses = slices.Delete(slices.Clone(f.Statuses), i, i+1)
		return f
	}
	f.Statuses = append(slices.Clone(f.Statuses), s)
	return f
}

func (f Filter) IsZero() bool {
	return len(f.Statuses) == 0 && f.From == nil && f.To == nil
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Match reports whether a passes the filter. An auction without a creation
// date is never excluded by the date bounds.
func (f Filter) Match(a models.Auction, loc *time.Location) bool {
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, a.Status) {
		return false
	}
	if a.CreatedAt == nil {
		return true
	}
	if f.From != nil && a.CreatedAt.Before(startOfDay(*f.From, loc)) {
		return false
	}
	if f.To != nil {
		end := startOfDay(*f.To, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
		if a.CreatedAt.After(end) {
			return false
		}
	}
	return true
}

// Apply returns the auctions passing f, keeping their order.
func (f Filter) Apply(auctions []models.Auction, loc *time.Location) []models.Auction {
	out := make([]models.Auction, 0, len(auctions))
	for _, a := range auctions {
		if f.Match(a, loc) {
			out = append(out, a)
		}
	}
	return out
}
