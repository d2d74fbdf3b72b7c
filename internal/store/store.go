package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	_ "github.com/mattn/go-sqlite3"

	"github.com/iurnickita/coffeewallet/internal/model"
	"github.com/iurnickita/coffeewallet/internal/store/config"
)

// Store persists the four wallet records. Each record loads and saves
// independently; a record that was never written reports ErrNoRows so
// the caller can fall back to its default.
type Store interface {
	LoadBalance(ctx context.Context) (model.Money, error)
	SaveBalance(ctx context.Context, balance model.Money) error
	LoadGiftCards(ctx context.Context) ([]model.GiftCard, error)
	SaveGiftCards(ctx context.Context, cards []model.GiftCard) error
	LoadOrders(ctx context.Context) ([]model.PickupOrder, error)
	SaveOrders(ctx context.Context, orders []model.PickupOrder) error
	LoadTransactions(ctx context.Context) ([]model.Transaction, error)
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
}

var ErrNoRows = errors.New("no rows")

// Snapshot keys. One entry per record, same layout the wallet has
// always used.
const (
	KeyBalance      = "coffee-wallet-balance"
	KeyGiftCards    = "coffee-gift-cards"
	KeyOrders       = "coffee-pickups"
	KeyTransactions = "coffee-transactions"
)

type store struct {
	database *sql.DB
}

func NewStore(cfg config.Config) (Store, error) {
	db, err := sql.Open("sqlite3", cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	// Snapshot table. One row per record, overwritten in full on
	// every save.
	_, err = db.Exec(
		"CREATE TABLE IF NOT EXISTS snapshot (" +
			" key TEXT PRIMARY KEY," +
			" value TEXT NOT NULL" +
			" );")
	if err != nil {
		return nil, err
	}

	return &store{
		database: db,
	}, nil
}

func (store *store) get(ctx context.Context, key string) (string, error) {
	row := store.database.QueryRowContext(ctx,
		"SELECT value FROM snapshot"+
			" WHERE key = ?",
		key)
	var value string
	err := row.Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrNoRows
		}
		return "", err
	}
	return value, nil
}

func (store *store) put(ctx context.Context, key string, value string) error {
	_, err := store.database.ExecContext(ctx,
		"INSERT INTO snapshot (key, value)"+
			" VALUES (?, ?)"+
			" ON CONFLICT (key) DO UPDATE SET value = excluded.value",
		key, value)
	return err
}

func (store *store) LoadBalance(ctx context.Context) (model.Money, error) {
	// balance is stored as decimal text
	value, err := store.get(ctx, KeyBalance)
	if err != nil {
		return 0, err
	}
	return model.ParseMoney(value)
}

func (store *store) SaveBalance(ctx context.Context, balance model.Money) error {
	return store.put(ctx, KeyBalance, balance.String())
}

func (store *store) LoadGiftCards(ctx context.Context) ([]model.GiftCard, error) {
	value, err := store.get(ctx, KeyGiftCards)
	if err != nil {
		return nil, err
	}
	var cards []model.GiftCard
	if err := json.Unmarshal([]byte(value), &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (store *store) SaveGiftCards(ctx context.Context, cards []model.GiftCard) error {
	value, err := json.Marshal(cards)
	if err != nil {
		return err
	}
	return store.put(ctx, KeyGiftCards, string(value))
}

func (store *store) LoadOrders(ctx context.Context) ([]model.PickupOrder, error) {
	value, err := store.get(ctx, KeyOrders)
	if err != nil {
		return nil, err
	}
	var orders []model.PickupOrder
	if err := json.Unmarshal([]byte(value), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (store *store) SaveOrders(ctx context.Context, orders []model.PickupOrder) error {
	value, err := json.Marshal(orders)
	if err != nil {
		return err
	}
	return store.put(ctx, KeyOrders, string(value))
}

func (store *store) LoadTransactions(ctx context.Context) ([]model.Transaction, error) {
	value, err := store.get(ctx, KeyTransactions)
	if err != nil {
		return nil, err
	}
	var transactions []model.Transaction
	if err := json.Unmarshal([]byte(value), &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (store *store) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	value, err := json.Marshal(transactions)
	if err != nil {
		return err
	}
	return store.put(ctx, KeyTransactions, string(value))
}
