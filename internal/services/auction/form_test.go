package auction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() AuctionForm {
	return AuctionForm{
		Title:           "Toyota Corolla 2019",
		Start:           "2025-04-11T09:00",
		End:             "2025-04-20T18:00",
		BasePrice:       "2000",
		MinBid:          "100.50",
		MaxParticipants: "30",
		Vehicle:         "F-1",
	}
}

func TestValidate_ok(t *testing.T) {
	in, err := validForm().Validate(now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "Toyota Corolla 2019", in.Title)
	assert.Equal(t, "100.5", in.MinBid.String())
	assert.Equal(t, 30, in.MaxParticipants)
	assert.Equal(t, time.Date(2025, 4, 11, 9, 0, 0, 0, time.UTC), in.StartsAt)
}

func TestValidate_requiredFields(t *testing.T) {
	_, err := AuctionForm{Description: "only a description"}.Validate(now, time.UTC)

	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	for _, k := range []string{FieldTitle, FieldStart, FieldEnd, FieldBasePrice, FieldMinBid, FieldMaxParticipants, FieldVehicle} {
		assert.Contains(t, fe, k)
	}
	assert.Len(t, fe, 7)
}

func TestValidate_negativeBasePrice(t *testing.T) {
	f := validForm()
	f.BasePrice = "-5"
	_, err := f.Validate(now, time.UTC)

	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, map[string]string{FieldBasePrice: "base price must be a positive number"}, map[string]string(fe))
}

func TestValidate_numeric(t *testing.T) {
	f := validForm()
	f.MinBid = "abc"
	f.MaxParticipants = "2.5"
	_, err := f.Validate(now, time.UTC)

	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, FieldMinBid)
	assert.Contains(t, fe, FieldMaxParticipants)
	assert.NotContains(t, fe, FieldBasePrice)
}

func TestValidate_dates(t *testing.T) {
	f := validForm()
	f.Start = "2025-04-10T12:00"
	f.End = "2025-04-09T12:00"
	_, err := f.Validate(now, time.UTC)

	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe[FieldStart], "current date")
	assert.Contains(t, fe, FieldEnd)

	f = validForm()
	f.End = f.Start
	_, err = f.Validate(now, time.UTC)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "end date must be later than the start date", fe[FieldEnd])

	f = validForm()
	f.Start = "tomorrow"
	_, err = f.Validate(now, time.UTC)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "start date is not a valid date", fe[FieldStart])
}

func TestValidate_readsLocalTimesInLocation(t *testing.T) {
	loc := time.FixedZone("UTC-4", -4*3600)
	in, err := validForm().Validate(now, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 4, 11, 13, 0, 0, 0, time.UTC), in.StartsAt.UTC())
}

func TestFieldErrors_Error(t *testing.T) {
	fe := FieldErrors{FieldTitle: "title is required", FieldEnd: "bad"}
	assert.Equal(t, "invalid auction: end: bad; title: title is required", fe.Error())
}
