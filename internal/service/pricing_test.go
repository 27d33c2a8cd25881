package service

import (
	"context"
	"testing"

	"github.com/rookgm/cargolabel/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesi(t *testing.T) {
	tests := []struct {
		name   string
		order  models.Order
		want   string
		wantOK bool
	}{
		{
			name:   "10x10x30",
			order:  models.Order{Height: dim("10"), Width: dim("10"), Length: dim("30")},
			want:   "1",
			wantOK: true,
		},
		{
			name:   "fractional",
			order:  models.Order{Height: dim("12.5"), Width: dim("20"), Length: dim("30")},
			want:   "2.5",
			wantOK: true,
		},
		{
			name:  "missing_height",
			order: models.Order{Width: dim("10"), Length: dim("30")},
		},
		{
			name:  "zero_length",
			order: models.Order{Height: dim("10"), Width: dim("10"), Length: dim("0")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Desi(tt.order)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, dec(tt.want).Equal(got), "desi %s", got)
			}
		})
	}
}

func TestLookupRate(t *testing.T) {
	rates := bronzeRates()

	tests := []struct {
		name     string
		desi     string
		wantDesi string
	}{
		{name: "below_first_bracket", desi: "0.4", wantDesi: "1"},
		{name: "exact_bracket", desi: "3", wantDesi: "3"},
		{name: "between_brackets", desi: "3.01", wantDesi: "5"},
		{name: "above_all_brackets", desi: "45", wantDesi: "30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LookupRate(rates, dec(tt.desi))
			require.True(t, ok)
			assert.True(t, dec(tt.wantDesi).Equal(got.Desi), "bracket %s", got.Desi)
		})
	}

	_, ok := LookupRate(nil, dec("1"))
	assert.False(t, ok)
}

func TestPricer_Price(t *testing.T) {
	ctx := context.Background()

	store := newFakeStore()
	store.rates[models.TierGold] = []models.Rate{
		{Tier: models.TierGold, Desi: dec("2"), CityPrice: dec("30"), IntercityPrice: dec("40")},
		{Tier: models.TierGold, Desi: dec("6"), CityPrice: dec("45"), IntercityPrice: dec("60")},
	}
	pricer := NewPricer(store)
	sender := *store.sender

	local := *newOrder("A-1")
	remote := *newOrder("A-2")
	remote.ShippingCity = "Ankara"
	bulky := *newOrder("A-3")
	bulky.Height = dim("500")
	noDims := *newOrder("A-4")
	noDims.Width = decimal.NullDecimal{}

	tests := []struct {
		name  string
		order models.Order
		tier  string
		want  string
	}{
		{name: "bronze_city", order: local, tier: models.TierBronze, want: "42.50"},
		{name: "bronze_intercity", order: remote, tier: models.TierBronze, want: "55.00"},
		{name: "gold_own_table", order: local, tier: models.TierGold, want: "30"},
		{name: "gold_largest_bracket", order: bulky, tier: models.TierGold, want: "45"},
		{name: "silver_falls_back_to_bronze", order: remote, tier: models.TierSilver, want: "55.00"},
		{name: "silver_bulky_falls_back_to_bronze_max", order: bulky, tier: models.TierSilver, want: "165.00"},
		{name: "missing_dimension_is_zero", order: noDims, tier: models.TierBronze, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pricer.Price(ctx, tt.order, sender, tt.tier)
			require.NoError(t, err)
			assert.True(t, dec(tt.want).Equal(got), "price %s", got)
		})
	}
}

func TestPricer_PriceWithoutAnyRates(t *testing.T) {
	store := newFakeStore()
	store.rates = map[string][]models.Rate{}

	got, err := NewPricer(store).Price(context.Background(), *newOrder("A-1"), *store.sender, models.TierPlatinum)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestPricer_ResolveTier(t *testing.T) {
	store := newFakeStore()
	pricer := NewPricer(store)

	store.tier = models.TierGold
	assert.Equal(t, models.TierGold, pricer.ResolveTier(context.Background(), testOperator))

	store.tier = ""
	assert.Equal(t, models.TierBronze, pricer.ResolveTier(context.Background(), testOperator))

	store.tier = models.TierGold
	store.tierErr = models.ErrDataNotFound
	assert.Equal(t, models.TierBronze, pricer.ResolveTier(context.Background(), testOperator))
}
