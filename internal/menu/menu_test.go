package menu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iurnickita/coffeewallet/internal/model"
)

func TestMenuByID(t *testing.T) {
	menu := NewMenu()

	item, err := menu.ByID("1")
	require.NoError(t, err)
	require.Equal(t, "Signature Latte", item.Name)
	require.Equal(t, model.Money(495), item.Price)

	_, err = menu.ByID("999")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMenuByCategory(t *testing.T) {
	menu := NewMenu()

	require.Len(t, menu.ByCategory(model.CategoryCoffee), 2)
	require.Len(t, menu.ByCategory(model.CategoryTea), 1)
	require.Empty(t, menu.ByCategory("soup"))
}

func TestMenuItemsCopy(t *testing.T) {
	menu := NewMenu()

	// callers get a copy, the catalog itself never mutates
	items := menu.Items()
	items[0].Price = 1

	item, err := menu.ByID(items[0].ID)
	require.NoError(t, err)
	require.Equal(t, model.Money(495), item.Price)
}
