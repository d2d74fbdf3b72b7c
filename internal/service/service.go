package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/iurnickita/coffeewallet/internal/ledger"
	"github.com/iurnickita/coffeewallet/internal/menu"
	"github.com/iurnickita/coffeewallet/internal/model"
	"github.com/iurnickita/coffeewallet/internal/payment"
	"github.com/iurnickita/coffeewallet/internal/service/config"
	"github.com/iurnickita/coffeewallet/internal/toast"
)

// Service hosts the user-facing flows over the ledger: reloads paid by
// card, gift card purchase and redemption, pickup scheduling and the
// order status lifecycle. It owns no bookkeeping; the ledger does.
type Service interface {
	Reload(amount model.Money, card payment.Card) error
	PurchaseGiftCard(amount model.Money, theme string) (model.GiftCard, error)
	RedeemGiftCard(code string) (model.Money, error)
	SchedulePickup(lines []model.CartLine, when string, location string) (model.PickupOrder, error)
	MarkReady(orderID string) error
	CompleteOrder(orderID string) error
	CancelPickup(orderID string) error
	Balance() model.Money
	GiftCards() []model.GiftCard
	Orders() []model.PickupOrder
	Transactions() []model.Transaction
	Menu() []model.MenuItem
}

var (
	ErrInsufficientData  = errors.New("insufficient data")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidCode       = errors.New("gift card code is invalid or already redeemed")
	ErrNotFound          = errors.New("order not found")
	ErrInvalidTransition = errors.New("illegal order status transition")
	ErrPaymentDeclined   = errors.New("payment declined")
	ErrUnknownLocation   = errors.New("unknown pickup location")
)

// PickupASAP schedules the pickup a short lead time from now instead
// of at a chosen slot.
const PickupASAP = "ASAP"

// Locations maps the four shops to their street addresses.
var Locations = map[string]string{
	"Downtown Cafe":  "123 Main St, Downtown",
	"Westside Shop":  "456 West Ave, Westside",
	"Riverside Cafe": "789 River Rd, Riverside",
	"University Hub": "101 Campus Dr, University Area",
}

type service struct {
	cfg       config.Config
	ledger    ledger.Ledger
	menu      menu.Menu
	processor payment.Processor
	notifier  toast.Notifier
	now       func() time.Time
}

func NewService(cfg config.Config, ledger ledger.Ledger, menu menu.Menu, processor payment.Processor, notifier toast.Notifier, now func() time.Time) Service {
	return &service{
		cfg:       cfg,
		ledger:    ledger,
		menu:      menu,
		processor: processor,
		notifier:  notifier,
		now:       now,
	}
}

// Reload charges the card and credits the wallet.
func (service *service) Reload(amount model.Money, card payment.Card) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	if err := service.processor.Charge(amount, card); err != nil {
		service.notifier.Error("Payment Failed",
			fmt.Sprintf("Card ending in %s was declined", card.Last4()))
		return ErrPaymentDeclined
	}

	if err := service.ledger.Credit(amount); err != nil {
		return err
	}

	service.notifier.Success("Funds Added",
		fmt.Sprintf("$%s has been added to your wallet", amount))
	return nil
}

func (service *service) PurchaseGiftCard(amount model.Money, theme string) (model.GiftCard, error) {
	if amount <= 0 {
		return model.GiftCard{}, ErrInvalidAmount
	}

	expiry := service.now().Add(service.cfg.GiftCardValidity)
	card, err := service.ledger.IssueGiftCard(amount, expiry, theme, "self")
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInsufficientFunds):
			service.notifier.Error("Insufficient Funds",
				"You don't have enough balance for this transaction")
			return model.GiftCard{}, ErrInsufficientFunds
		case errors.Is(err, ledger.ErrInvalidAmount):
			return model.GiftCard{}, ErrInvalidAmount
		default:
			return model.GiftCard{}, err
		}
	}

	service.notifier.Success("Gift Card Added",
		fmt.Sprintf("A new gift card with $%s has been added", card.Balance))
	return card, nil
}

func (service *service) RedeemGiftCard(code string) (model.Money, error) {
	if code == "" {
		return 0, ErrInsufficientData
	}

	amount, err := service.ledger.RedeemGiftCard(code)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidCode):
			service.notifier.Error("Invalid Gift Card",
				"The gift card code is invalid or has already been redeemed")
			return 0, ErrInvalidCode
		default:
			return 0, err
		}
	}

	service.notifier.Success("Gift Card Redeemed",
		fmt.Sprintf("$%s has been added to your wallet", amount))
	return amount, nil
}

// SchedulePickup resolves the requested slot ("ASAP" or a clock time
// like "3:15 PM") against today and submits the order.
func (service *service) SchedulePickup(lines []model.CartLine, when string, location string) (model.PickupOrder, error) {
	if len(lines) == 0 {
		return model.PickupOrder{}, ErrInsufficientData
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return model.PickupOrder{}, ErrInsufficientData
		}
	}
	if _, ok := Locations[location]; !ok {
		return model.PickupOrder{}, ErrUnknownLocation
	}

	pickupTime, err := service.resolvePickupTime(when)
	if err != nil {
		return model.PickupOrder{}, err
	}

	order, err := service.ledger.SchedulePickup(lines, pickupTime, location)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInsufficientFunds):
			service.notifier.Error("Insufficient Funds",
				"You don't have enough balance for this transaction")
			return model.PickupOrder{}, ErrInsufficientFunds
		case errors.Is(err, ledger.ErrInvalidAmount):
			return model.PickupOrder{}, ErrInvalidAmount
		default:
			return model.PickupOrder{}, err
		}
	}

	service.notifier.Success("Pickup Scheduled",
		fmt.Sprintf("Your order is scheduled for %s", order.PickupTime.Format("3:04 PM")))
	return order, nil
}

func (service *service) MarkReady(orderID string) error {
	return service.updateStatus(orderID, model.OrderStatusReady)
}

func (service *service) CompleteOrder(orderID string) error {
	return service.updateStatus(orderID, model.OrderStatusCompleted)
}

func (service *service) updateStatus(orderID string, status string) error {
	if orderID == "" {
		return ErrInsufficientData
	}

	err := service.ledger.UpdateStatus(orderID, status)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrNotFound):
			return ErrNotFound
		case errors.Is(err, ledger.ErrInvalidTransition):
			return ErrInvalidTransition
		default:
			return err
		}
	}

	service.notifier.Success("Order Updated",
		fmt.Sprintf("Your order status has been updated to: %s", status))
	return nil
}

func (service *service) CancelPickup(orderID string) error {
	if orderID == "" {
		return ErrInsufficientData
	}

	refunded, err := service.ledger.CancelPickup(orderID)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrNotFound):
			return ErrNotFound
		case errors.Is(err, ledger.ErrInvalidTransition):
			return ErrInvalidTransition
		default:
			return err
		}
	}

	if refunded > 0 {
		service.notifier.Success("Order Cancelled",
			fmt.Sprintf("Your order has been cancelled and $%s has been refunded to your wallet", refunded))
	} else {
		service.notifier.Error("Order Cancelled",
			"Your order has been cancelled. No refund is available for cancellations less than 30 minutes before pickup")
	}
	return nil
}

func (service *service) resolvePickupTime(when string) (time.Time, error) {
	now := service.now()
	if when == PickupASAP {
		return now.Add(service.cfg.ASAPLead), nil
	}

	slot, err := time.Parse("3:04 PM", when)
	if err != nil {
		return time.Time{}, ErrInsufficientData
	}
	return time.Date(now.Year(), now.Month(), now.Day(),
		slot.Hour(), slot.Minute(), 0, 0, now.Location()), nil
}

func (service *service) Balance() model.Money {
	return service.ledger.Balance()
}

func (service *service) GiftCards() []model.GiftCard {
	return service.ledger.GiftCards()
}

func (service *service) Orders() []model.PickupOrder {
	return service.ledger.Orders()
}

func (service *service) Transactions() []model.Transaction {
	return service.ledger.Transactions()
}

func (service *service) Menu() []model.MenuItem {
	return service.menu.Items()
}
