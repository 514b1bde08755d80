package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func TestVisibleItems_Kasir(t *testing.T) {
	t.Parallel()

	got := VisibleItems(Default(), Kasir)
	assert.Equal(t, []string{"Dashboard", "Transaksi", "Stok Produk", "Profil"}, titles(got))
}

func TestVisibleItems_Pemilik(t *testing.T) {
	t.Parallel()

	got := VisibleItems(Default(), Pemilik)
	assert.Equal(t, []string{"Dashboard", "Transaksi", "Stok Produk", "Analytics", "Profil"}, titles(got))
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	r, err := ParseRole("pemilik")
	require.NoError(t, err)
	assert.Equal(t, Pemilik, r)

	_, err = ParseRole("admin")
	require.Error(t, err)
}
