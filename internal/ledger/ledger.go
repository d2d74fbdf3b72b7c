package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iurnickita/coffeewallet/internal/model"
	"github.com/iurnickita/coffeewallet/internal/store"
)

// Ledger is the single authority over the wallet balance, gift cards,
// pickup orders and the transaction log. All mutations go through its
// operations; every balance change appends exactly one transaction in
// the same step, and every successful mutation writes a full snapshot.
type Ledger interface {
	Balance() model.Money
	Credit(amount model.Money) error
	Debit(amount model.Money, kind string, description string) error
	IssueGiftCard(amount model.Money, expiry time.Time, theme string, purchaser string) (model.GiftCard, error)
	RedeemGiftCard(code string) (model.Money, error)
	SchedulePickup(lines []model.CartLine, pickupTime time.Time, location string) (model.PickupOrder, error)
	UpdateStatus(orderID string, status string) error
	CancelPickup(orderID string) (model.Money, error)
	GiftCards() []model.GiftCard
	Orders() []model.PickupOrder
	Transactions() []model.Transaction
}

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidCode       = errors.New("gift card code is invalid or already redeemed")
	ErrNotFound          = errors.New("order not found")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInvalidTransition = errors.New("illegal order status transition")
)

const (
	defaultUser = "Coffee Lover"

	// Cancellations strictly earlier than this before pickup refund
	// the full total.
	refundWindow = 30 * time.Minute

	// Gift card code alphabet. No 0/O/1/I to keep codes readable.
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	defaultBalance     = model.Money(2500)
	welcomeCardCode    = "WELCOME2023"
	welcomeCardBalance = model.Money(1500)
	welcomeCardTTL     = 90 * 24 * time.Hour
)

type ledger struct {
	store  store.Store
	zaplog *zap.Logger
	now    func() time.Time

	balance      model.Money
	cards        []model.GiftCard
	orders       []model.PickupOrder
	transactions []model.Transaction
	seq          int
}

// NewLedger rehydrates state from the snapshot store. Records that
// were never written fall back to their defaults: the starting
// balance, a single welcome gift card, no orders and the sample
// transaction history. The clock is injected so time-dependent
// behavior stays deterministic under test.
func NewLedger(s store.Store, zaplog *zap.Logger, now func() time.Time) (Ledger, error) {
	l := &ledger{
		store:  s,
		zaplog: zaplog,
		now:    now,
	}
	ctx := context.Background()

	balance, err := s.LoadBalance(ctx)
	switch {
	case errors.Is(err, store.ErrNoRows):
		balance = defaultBalance
	case err != nil:
		return nil, err
	}
	l.balance = balance

	cards, err := s.LoadGiftCards(ctx)
	switch {
	case errors.Is(err, store.ErrNoRows):
		cards = []model.GiftCard{{
			ID:            "g1",
			Code:          welcomeCardCode,
			Balance:       welcomeCardBalance,
			InitialAmount: welcomeCardBalance,
			ExpiryDate:    now().Add(welcomeCardTTL),
			IsActive:      true,
			CreatedAt:     now(),
			Theme:         model.ThemeClassic,
		}}
	case err != nil:
		return nil, err
	}
	l.cards = cards

	orders, err := s.LoadOrders(ctx)
	switch {
	case errors.Is(err, store.ErrNoRows):
		orders = nil
	case err != nil:
		return nil, err
	}
	l.orders = orders

	transactions, err := s.LoadTransactions(ctx)
	switch {
	case errors.Is(err, store.ErrNoRows):
		transactions = sampleTransactions(now())
	case err != nil:
		return nil, err
	}
	l.transactions = transactions

	return l, nil
}

// sampleTransactions seeds a first-run history so the wallet does not
// open on an empty log.
func sampleTransactions(now time.Time) []model.Transaction {
	return []model.Transaction{
		{
			ID:          "t1",
			Amount:      2000,
			Type:        model.TransactionReload,
			Description: "Wallet reload",
			Date:        now.Add(-7 * 24 * time.Hour),
			Status:      model.TransactionStatusCompleted,
		},
		{
			ID:          "t2",
			Amount:      495,
			Type:        model.TransactionPurchase,
			Description: "Signature Latte",
			Date:        now.Add(-5 * 24 * time.Hour),
			Status:      model.TransactionStatusCompleted,
		},
		{
			ID:          "t3",
			Amount:      2500,
			Type:        model.TransactionGift,
			Description: "Gift card purchase",
			Date:        now.Add(-2 * 24 * time.Hour),
			Status:      model.TransactionStatusCompleted,
		},
	}
}

func (l *ledger) Balance() model.Money {
	return l.balance
}

// Credit adds funds and records a reload transaction. A non-positive
// amount is a no-op, not an error.
func (l *ledger) Credit(amount model.Money) error {
	if amount <= 0 {
		return nil
	}

	l.credit(amount, model.TransactionReload, "Added funds to wallet")
	l.persist()
	return nil
}

// Debit removes funds and records one transaction of the given kind.
// The mutation and its record are a single step: a rejected debit
// leaves both the balance and the log untouched.
func (l *ledger) Debit(amount model.Money, kind string, description string) error {
	if err := l.debit(amount, kind, description); err != nil {
		return err
	}
	l.persist()
	return nil
}

func (l *ledger) credit(amount model.Money, kind string, description string) {
	l.balance += amount
	l.append(amount, kind, description)
}

func (l *ledger) debit(amount model.Money, kind string, description string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if l.balance < amount {
		return ErrInsufficientFunds
	}
	l.balance -= amount
	l.append(amount, kind, description)
	return nil
}

// append prepends one completed transaction, newest first.
func (l *ledger) append(amount model.Money, kind string, description string) {
	transaction := model.Transaction{
		ID:          l.newID("tr"),
		Amount:      amount,
		Type:        kind,
		Description: description,
		Date:        l.now(),
		Status:      model.TransactionStatusCompleted,
	}
	l.transactions = append([]model.Transaction{transaction}, l.transactions...)
}

// IssueGiftCard creates a card with a freshly generated unique code.
// When a purchaser is given the card price is debited from the wallet
// and the gift transaction is that debit's record; issuing without a
// purchaser (a received card) touches neither balance nor log.
func (l *ledger) IssueGiftCard(amount model.Money, expiry time.Time, theme string, purchaser string) (model.GiftCard, error) {
	if amount <= 0 {
		return model.GiftCard{}, ErrInvalidAmount
	}

	if purchaser != "" {
		if err := l.debit(amount, model.TransactionGift, "Gift card purchase"); err != nil {
			return model.GiftCard{}, err
		}
	}

	card := model.GiftCard{
		ID:            l.newID("gc"),
		Code:          l.newCode(),
		Balance:       amount,
		InitialAmount: amount,
		ExpiryDate:    expiry,
		IsActive:      true,
		CreatedAt:     l.now(),
		PurchasedBy:   purchaser,
		Theme:         theme,
	}
	l.cards = append([]model.GiftCard{card}, l.cards...)
	l.persist()

	l.zaplog.Info("gift card issued",
		zap.String("id", card.ID),
		zap.String("amount", card.Balance.String()))
	return card, nil
}

// RedeemGiftCard converts a card's full balance into wallet funds.
// The lookup is case-insensitive and only matches active cards with a
// positive balance; clearing the card and crediting the wallet happen
// in the same step, so a code can never be redeemed twice.
func (l *ledger) RedeemGiftCard(code string) (model.Money, error) {
	for i := range l.cards {
		card := &l.cards[i]
		if !card.IsActive || card.Balance <= 0 {
			continue
		}
		if !strings.EqualFold(card.Code, code) {
			continue
		}

		amount := card.Balance
		card.Balance = 0
		card.IsActive = false
		l.credit(amount, model.TransactionRedemption, "Gift card redemption")
		l.persist()

		l.zaplog.Info("gift card redeemed",
			zap.String("id", card.ID),
			zap.String("amount", amount.String()))
		return amount, nil
	}

	return 0, ErrInvalidCode
}

// SchedulePickup charges the order total and creates the order. The
// total is a snapshot of line price times quantity at call time. An
// insufficient balance rejects the whole operation: no order, no
// transaction, no balance change.
func (l *ledger) SchedulePickup(lines []model.CartLine, pickupTime time.Time, location string) (model.PickupOrder, error) {
	var total model.Money
	names := make([]string, 0, len(lines))
	for _, line := range lines {
		total += line.MenuItem.Price * model.Money(line.Quantity)
		names = append(names, line.MenuItem.Name)
	}

	description := "Pickup order - " + strings.Join(names, ", ")
	if err := l.debit(total, model.TransactionPurchase, description); err != nil {
		return model.PickupOrder{}, err
	}

	order := model.PickupOrder{
		ID:             l.newID("pu"),
		UserID:         defaultUser,
		Items:          lines,
		PickupTime:     pickupTime,
		PickupLocation: location,
		Status:         model.OrderStatusScheduled,
		CreatedAt:      l.now(),
		Total:          total,
	}
	l.orders = append([]model.PickupOrder{order}, l.orders...)
	l.persist()

	l.zaplog.Info("pickup scheduled",
		zap.String("id", order.ID),
		zap.String("total", order.Total.String()),
		zap.Time("pickupTime", order.PickupTime))
	return order, nil
}

// Legal status transitions. completed and cancelled are terminal.
var transitions = map[string][]string{
	model.OrderStatusScheduled: {model.OrderStatusReady, model.OrderStatusCancelled},
	model.OrderStatusReady:     {model.OrderStatusCompleted, model.OrderStatusCancelled},
}

func canTransition(from string, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdateStatus moves an order along its lifecycle. Transitions outside
// the table are rejected. No transaction side effect.
func (l *ledger) UpdateStatus(orderID string, status string) error {
	order := l.findOrder(orderID)
	if order == nil {
		return ErrNotFound
	}
	if !canTransition(order.Status, status) {
		return ErrInvalidTransition
	}

	order.Status = status
	l.persist()

	l.zaplog.Info("order status updated",
		zap.String("id", order.ID),
		zap.String("status", order.Status))
	return nil
}

// CancelPickup marks the order cancelled. Iff strictly more than 30
// minutes remain before pickup, the full total is credited back with a
// refund transaction; a late cancellation changes no balance but the
// order is still cancelled. Returns the refunded amount.
func (l *ledger) CancelPickup(orderID string) (model.Money, error) {
	order := l.findOrder(orderID)
	if order == nil {
		return 0, ErrNotFound
	}
	if !canTransition(order.Status, model.OrderStatusCancelled) {
		return 0, ErrInvalidTransition
	}

	order.Status = model.OrderStatusCancelled

	var refunded model.Money
	if order.PickupTime.Sub(l.now()) > refundWindow {
		l.credit(order.Total, model.TransactionRefund, "Pickup cancellation refund")
		refunded = order.Total
	}
	l.persist()

	l.zaplog.Info("pickup cancelled",
		zap.String("id", order.ID),
		zap.String("refunded", refunded.String()))
	return refunded, nil
}

func (l *ledger) findOrder(orderID string) *model.PickupOrder {
	for i := range l.orders {
		if l.orders[i].ID == orderID {
			return &l.orders[i]
		}
	}
	return nil
}

func (l *ledger) GiftCards() []model.GiftCard {
	cards := make([]model.GiftCard, len(l.cards))
	copy(cards, l.cards)
	return cards
}

func (l *ledger) Orders() []model.PickupOrder {
	orders := make([]model.PickupOrder, len(l.orders))
	copy(orders, l.orders)
	return orders
}

func (l *ledger) Transactions() []model.Transaction {
	transactions := make([]model.Transaction, len(l.transactions))
	copy(transactions, l.transactions)
	return transactions
}

// newID builds a record id from the clock plus a process-lifetime
// sequence, so ids stay unique even under a fixed test clock.
func (l *ledger) newID(prefix string) string {
	l.seq++
	return fmt.Sprintf("%s-%d-%d", prefix, l.now().UnixMilli(), l.seq)
}

// newCode draws a XXXX-XXXX-XXXX code and re-draws on collision with
// any existing card, compared case-insensitively.
func (l *ledger) newCode() string {
	for {
		var b strings.Builder
		for i := 0; i < 12; i++ {
			if i > 0 && i%4 == 0 {
				b.WriteByte('-')
			}
			b.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
		}
		code := b.String()
		if !l.codeExists(code) {
			return code
		}
	}
}

func (l *ledger) codeExists(code string) bool {
	for _, card := range l.cards {
		if strings.EqualFold(card.Code, code) {
			return true
		}
	}
	return false
}

// persist writes all four snapshot records. Failures are logged, never
// fatal: the in-memory state stays authoritative for the session.
func (l *ledger) persist() {
	ctx := context.Background()

	if err := l.store.SaveBalance(ctx, l.balance); err != nil {
		l.zaplog.Error("persist wallet balance", zap.Error(err))
	}
	if err := l.store.SaveGiftCards(ctx, l.cards); err != nil {
		l.zaplog.Error("persist gift cards", zap.Error(err))
	}
	if err := l.store.SaveOrders(ctx, l.orders); err != nil {
		l.zaplog.Error("persist pickup orders", zap.Error(err))
	}
	if err := l.store.SaveTransactions(ctx, l.transactions); err != nil {
		l.zaplog.Error("persist transactions", zap.Error(err))
	}
}
