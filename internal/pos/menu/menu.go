package menu

import "fmt"

// Role is the closed set of account roles. Kasir runs the register,
// pemilik owns the store.
type Role string

const (
	Kasir   Role = "kasir"
	Pemilik Role = "pemilik"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case Kasir, Pemilik:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

type Item struct {
	Title string `json:"title"`
	Path  string `json:"path"`
	Icon  string `json:"icon"`
	Roles []Role `json:"-"`
}

func (it Item) allows(r Role) bool {
	for _, allowed := range it.Roles {
		if allowed == r {
			return true
		}
	}
	return false
}

// Default is the sidebar layout of the POS app.
func Default() []Item {
	return []Item{
		{Title: "Dashboard", Path: "/", Icon: "home", Roles: []Role{Kasir, Pemilik}},
		{Title: "Transaksi", Path: "/transaction", Icon: "shopping-cart", Roles: []Role{Kasir, Pemilik}},
		{Title: "Stok Produk", Path: "/stock", Icon: "package", Roles: []Role{Kasir, Pemilik}},
		{Title: "Analytics", Path: "/analytics", Icon: "bar-chart", Roles: []Role{Pemilik}},
		{Title: "Profil", Path: "/profile", Icon: "user", Roles: []Role{Kasir, Pemilik}},
	}
}

// VisibleItems keeps the items the role may see, in menu order.
func VisibleItems(items []Item, r Role) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.allows(r) {
			out = append(out, it)
		}
	}
	return out
}
