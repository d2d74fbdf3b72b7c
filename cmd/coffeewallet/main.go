package main

import (
	"fmt"
	"log"
	"time"

	"github.com/iurnickita/coffeewallet/internal/config"
	"github.com/iurnickita/coffeewallet/internal/ledger"
	"github.com/iurnickita/coffeewallet/internal/logger"
	"github.com/iurnickita/coffeewallet/internal/menu"
	"github.com/iurnickita/coffeewallet/internal/model"
	"github.com/iurnickita/coffeewallet/internal/payment"
	"github.com/iurnickita/coffeewallet/internal/service"
	"github.com/iurnickita/coffeewallet/internal/store"
	"github.com/iurnickita/coffeewallet/internal/toast"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.GetConfig()

	zaplog, err := logger.NewZapLog(cfg.Logger)
	if err != nil {
		return err
	}

	store, err := store.NewStore(cfg.Store)
	if err != nil {
		return err
	}

	ledger, err := ledger.NewLedger(store, zaplog, time.Now)
	if err != nil {
		return err
	}

	menu := menu.NewMenu()
	processor := payment.NewProcessor(800*time.Millisecond, time.Now)
	notifier := toast.NewZapNotifier(zaplog)
	service := service.NewService(cfg.Service, ledger, menu, processor, notifier, time.Now)

	printDashboard(service)
	return nil
}

// printDashboard renders the wallet summary page.
func printDashboard(svc service.Service) {
	fmt.Printf("Wallet balance: $%s\n", svc.Balance())

	fmt.Println("\nGift cards:")
	for _, card := range svc.GiftCards() {
		state := "redeemed"
		if card.IsActive {
			state = "active"
		}
		fmt.Printf("  %s  $%s  %s  expires %s\n",
			card.Code, card.Balance, state, card.ExpiryDate.Format("Jan 2, 2006"))
	}

	orders := svc.Orders()
	if len(orders) > 0 {
		fmt.Println("\nPickup orders:")
		for _, order := range orders {
			fmt.Printf("  %s  %s  $%s  %s at %s\n",
				order.ID, order.Status, order.Total,
				order.PickupLocation, order.PickupTime.Format("3:04 PM"))
		}
	}

	fmt.Println("\nRecent transactions:")
	for i, transaction := range svc.Transactions() {
		if i == 5 {
			break
		}
		sign := "-"
		switch transaction.Type {
		case model.TransactionReload, model.TransactionRefund, model.TransactionRedemption:
			sign = "+"
		}
		fmt.Printf("  %s  %s$%s  %s\n",
			transaction.Date.Format("Jan 2"), sign, transaction.Amount, transaction.Description)
	}
}
