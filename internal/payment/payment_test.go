package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return testNow
}

func TestChargeValidCard(t *testing.T) {
	processor := NewProcessor(0, fixedClock)

	err := processor.Charge(1000, Card{
		Number:   "4242 4242 4242 4242",
		ExpMonth: 12,
		ExpYear:  2027,
		CVV:      "123",
	})
	require.NoError(t, err)
}

func TestChargeBadNumber(t *testing.T) {
	processor := NewProcessor(0, fixedClock)

	// fails the Luhn check
	err := processor.Charge(1000, Card{
		Number:   "4242424242424241",
		ExpMonth: 12,
		ExpYear:  2027,
	})
	require.ErrorIs(t, err, ErrCardDeclined)

	// not a number at all
	err = processor.Charge(1000, Card{
		Number:   "not-a-card",
		ExpMonth: 12,
		ExpYear:  2027,
	})
	require.ErrorIs(t, err, ErrCardDeclined)
}

func TestChargeExpiredCard(t *testing.T) {
	processor := NewProcessor(0, fixedClock)

	err := processor.Charge(1000, Card{
		Number:   "4242424242424242",
		ExpMonth: 2,
		ExpYear:  2025,
	})
	require.ErrorIs(t, err, ErrCardExpired)

	// valid through the end of the expiry month
	err = processor.Charge(1000, Card{
		Number:   "4242424242424242",
		ExpMonth: 3,
		ExpYear:  2025,
	})
	require.NoError(t, err)
}

func TestChargeNonPositiveAmount(t *testing.T) {
	processor := NewProcessor(0, fixedClock)

	err := processor.Charge(0, Card{Number: "4242424242424242", ExpMonth: 12, ExpYear: 2027})
	require.ErrorIs(t, err, ErrCardDeclined)
}

func TestLast4(t *testing.T) {
	card := Card{Number: "4242 4242 4242 4242"}
	require.Equal(t, "4242", card.Last4())
}
