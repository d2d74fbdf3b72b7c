package payment

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/theplant/luhn"

	"github.com/iurnickita/coffeewallet/internal/model"
)

// Card is the card presented for a wallet reload.
type Card struct {
	Number   string
	ExpMonth int
	ExpYear  int
	CVV      string
}

// Last4 returns the trailing digits used in user-facing messages.
func (c Card) Last4() string {
	digits := normalize(c.Number)
	if len(digits) < 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

var (
	ErrCardDeclined = errors.New("card declined")
	ErrCardExpired  = errors.New("card expired")
)

// Processor charges a card. There is no real payment network behind
// it: the simulated processor validates the number and expiry and
// pauses for a fixed feedback delay.
type Processor interface {
	Charge(amount model.Money, card Card) error
}

type processor struct {
	delay time.Duration
	now   func() time.Time
}

func NewProcessor(delay time.Duration, now func() time.Time) Processor {
	return &processor{
		delay: delay,
		now:   now,
	}
}

func (p *processor) Charge(amount model.Money, card Card) error {
	// fixed pause for user feedback, not real I/O
	time.Sleep(p.delay)

	if amount <= 0 {
		return ErrCardDeclined
	}

	// Luhn check on the card number
	digits := normalize(card.Number)
	number, err := strconv.Atoi(digits)
	if err != nil || !luhn.Valid(number) {
		return ErrCardDeclined
	}

	// card is valid through the end of its expiry month
	expiry := time.Date(card.ExpYear, time.Month(card.ExpMonth)+1, 1, 0, 0, 0, 0, time.UTC)
	if !p.now().Before(expiry) {
		return ErrCardExpired
	}

	return nil
}

func normalize(number string) string {
	number = strings.ReplaceAll(number, " ", "")
	return strings.ReplaceAll(number, "-", "")
}
