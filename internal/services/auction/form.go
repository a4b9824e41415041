package auction

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Form field keys, shared with the dashboard for inline error placement.
const (
	FieldTitle           = "title"
	FieldStart           = "start"
	FieldEnd             = "end"
	FieldBasePrice       = "base_price"
	FieldMinBid          = "min_bid"
	FieldMaxParticipants = "max_participants"
	FieldVehicle         = "vehicle"
)

var requiredMessages = map[string]string{
	FieldTitle:           "title is required",
	FieldStart:           "start date is required",
	FieldEnd:             "end date is required",
	FieldBasePrice:       "base price is required",
	FieldMinBid:          "minimum bid is required",
	FieldMaxParticipants: "maximum participants is required",
	FieldVehicle:         "a vehicle must be selected",
}

// FieldErrors maps a form field key to the message shown next to it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "invalid auction: " + strings.Join(parts, "; ")
}

// AuctionForm holds the raw values typed into the create/edit form.
type AuctionForm struct {
	Title           string `json:"title"            validate:"required"`
	Description     string `json:"description"`
	Start           string `json:"start"            validate:"required"`
	End             string `json:"end"              validate:"required"`
	BasePrice       string `json:"base_price"       validate:"required"`
	MinBid          string `json:"min_bid"          validate:"required"`
	MaxParticipants string `json:"max_participants" validate:"required"`
	Vehicle         string `json:"vehicle"          validate:"required"`
}

// AuctionInput is a form that passed validation.
type AuctionInput struct {
	Title           string
	Description     string
	StartsAt        time.Time
	EndsAt          time.Time
	BasePrice       decimal.Decimal
	MinBid          decimal.Decimal
	MaxParticipants int
	Vehicle         string
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	return v
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func parseDateTime(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unparseable date")
}

// Validate runs the required, numeric and date groups and reports every
// violation. Datetimes without an offset are read in loc.
func (f AuctionForm) Validate(now time.Time, loc *time.Location) (AuctionInput, error) {
	f = f.trimmed()
	errs := FieldErrors{}
	in := AuctionInput{Title: f.Title, Description: f.Description, Vehicle: f.Vehicle}

	if err := formValidator.Struct(f); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			return in, err
		}
		for _, fe := range ves {
			errs[fe.Field()] = requiredMessages[fe.Field()]
		}
	}

	// numeric
	if f.BasePrice != "" {
		v, err := decimal.NewFromString(f.BasePrice)
		if err != nil || !v.IsPositive() {
			errs[FieldBasePrice] = "base price must be a positive number"
		}
		in.BasePrice = v
	}
	if f.MinBid != "" {
		v, err := decimal.NewFromString(f.MinBid)
		if err != nil || !v.IsPositive() {
			errs[FieldMinBid] = "minimum bid must be a positive number"
		}
		in.MinBid = v
	}
	if f.MaxParticipants != "" {
		v, err := decimal.NewFromString(f.MaxParticipants)
		if err != nil || !v.IsPositive() || !v.IsInteger() || !v.LessThanOrEqual(decimal.NewFromInt32(1<<31-1)) {
			errs[FieldMaxParticipants] = "maximum participants must be a positive integer"
		} else {
			in.MaxParticipants = int(v.IntPart())
		}
	}

	// dates
	var startOK, endOK bool
	if f.Start != "" {
		t, err := parseDateTime(f.Start, loc)
		if err != nil {
			errs[FieldStart] = "start date is not a valid date"
		} else {
			in.StartsAt, startOK = t, true
			if !t.After(now) {
				errs[FieldStart] = "start date must be later than the current date and time"
			}
		}
	}
	if f.End != "" {
		t, err := parseDateTime(f.End, loc)
		if err != nil {
			errs[FieldEnd] = "end date is not a valid date"
		} else {
			in.EndsAt, endOK = t, true
			if !t.After(now) {
				errs[FieldEnd] = "end date must be later than the current date and time"
			}
		}
	}
	if startOK && endOK && !in.EndsAt.After(in.StartsAt) {
		errs[FieldEnd] = "end date must be later than the start date"
	}

	if len(errs) > 0 {
		return in, errs
	}
	return in, nil
}

func (f AuctionForm) trimmed() AuctionForm {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.Start = strings.TrimSpace(f.Start)
	f.End = strings.TrimSpace(f.End)
	f.BasePrice = strings.TrimSpace(f.BasePrice)
	f.MinBid = strings.TrimSpace(f.MinBid)
	f.MaxParticipants = strings.TrimSpace(f.MaxParticipants)
	f.Vehicle = strings.TrimSpace(f.Vehicle)
	return f
}
