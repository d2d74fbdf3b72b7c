package menu

import (
	"errors"

	"github.com/iurnickita/coffeewallet/internal/model"
)

// Menu is the fixed shop catalog. Items are created once at startup
// and never change during a session.
type Menu interface {
	Items() []model.MenuItem
	ByID(id string) (model.MenuItem, error)
	ByCategory(category string) []model.MenuItem
}

var ErrNotFound = errors.New("menu item not found")

var catalogItems = []model.MenuItem{
	{
		ID:          "1",
		Name:        "Signature Latte",
		Description: "Our signature espresso with steamed milk and a light layer of foam",
		Price:       495,
		Image:       "/placeholder.svg",
		Category:    model.CategoryCoffee,
	},
	{
		ID:          "2",
		Name:        "Cold Brew",
		Description: "Smooth, cold-steeped coffee served over ice",
		Price:       450,
		Image:       "/placeholder.svg",
		Category:    model.CategoryCoffee,
	},
	{
		ID:          "3",
		Name:        "Chai Tea Latte",
		Description: "Black tea infused with cinnamon, clove and other warming spices",
		Price:       475,
		Image:       "/placeholder.svg",
		Category:    model.CategoryTea,
	},
	{
		ID:          "4",
		Name:        "Almond Croissant",
		Description: "Buttery croissant filled with almond cream",
		Price:       395,
		Image:       "/placeholder.svg",
		Category:    model.CategoryPastry,
	},
	{
		ID:          "5",
		Name:        "Avocado Toast",
		Description: "Multigrain toast topped with avocado, sea salt, and red pepper flakes",
		Price:       795,
		Image:       "/placeholder.svg",
		Category:    model.CategorySandwich,
	},
}

type menu struct {
	items []model.MenuItem
}

func NewMenu() Menu {
	return &menu{items: catalogItems}
}

func (menu *menu) Items() []model.MenuItem {
	items := make([]model.MenuItem, len(menu.items))
	copy(items, menu.items)
	return items
}

func (menu *menu) ByID(id string) (model.MenuItem, error) {
	for _, item := range menu.items {
		if item.ID == id {
			return item, nil
		}
	}
	return model.MenuItem{}, ErrNotFound
}

func (menu *menu) ByCategory(category string) []model.MenuItem {
	var items []model.MenuItem
	for _, item := range menu.items {
		if item.Category == category {
			items = append(items, item)
		}
	}
	return items
}
