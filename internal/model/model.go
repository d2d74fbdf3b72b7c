package model

import "time"

// Menu catalog

type MenuItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Money  `json:"price"`
	Image       string `json:"image"`
	Category    string `json:"category"`
}

const (
	CategoryCoffee   = "coffee"
	CategoryTea      = "tea"
	CategoryPastry   = "pastry"
	CategorySandwich = "sandwich"
)

// Pickup orders

// CartLine is one menu item in an order: quantity plus an optional
// free-text customization note. The menu item is a value snapshot, so
// later catalog price changes never touch past orders.
type CartLine struct {
	MenuItem       MenuItem `json:"menuItem"`
	Quantity       int      `json:"quantity"`
	Customizations string   `json:"customizations,omitempty"`
}

type PickupOrder struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	Items          []CartLine `json:"items"`
	PickupTime     time.Time  `json:"pickupTime"`
	PickupLocation string     `json:"pickupLocation"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	Total          Money      `json:"total"`
}

const (
	OrderStatusScheduled = "scheduled"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Gift cards

type GiftCard struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Balance       Money     `json:"balance"`
	InitialAmount Money     `json:"initialAmount"`
	ExpiryDate    time.Time `json:"expiryDate"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	PurchasedBy   string    `json:"purchasedBy,omitempty"`
	Theme         string    `json:"theme"`
}

const (
	ThemeClassic  = "classic"
	ThemeBirthday = "birthday"
	ThemeHoliday  = "holiday"
	ThemeThankYou = "thank-you"
)

// Transaction log

// Transaction amounts are always stored positive. The type identifies
// the direction of the balance change.
type Transaction struct {
	ID          string    `json:"id"`
	Amount      Money     `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
}

const (
	TransactionPurchase   = "purchase"
	TransactionReload     = "reload"
	TransactionGift       = "gift"
	TransactionRefund     = "refund"
	TransactionRedemption = "redemption"
)

const (
	TransactionStatusCompleted = "completed"
	TransactionStatusPending   = "pending"
	TransactionStatusFailed    = "failed"
)
