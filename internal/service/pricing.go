package service

import (
	"context"

	"github.com/rookgm/cargolabel/internal/carrier"
	"github.com/rookgm/cargolabel/internal/models"
	"github.com/shopspring/decimal"
)

var volumetricDivisor = decimal.NewFromInt(3000)

// RateRepository is interface for interacting with rate tables and operator tiers
type RateRepository interface {
	// RatesByTier returns tier rate brackets ordered by desi ascending
	RatesByTier(ctx context.Context, tier string) ([]models.Rate, error)
	// Tier returns operator subscription tier
	Tier(ctx context.Context, operatorID uint64) (string, error)
}

// Pricer resolves the price of a single shipment
type Pricer struct {
	rates RateRepository
}

// NewPricer creates new Pricer instance
func NewPricer(rates RateRepository) *Pricer {
	return &Pricer{rates: rates}
}

// Desi returns volumetric weight (h*w*l)/3000. ok is false when any dimension is missing.
func Desi(order models.Order) (desi decimal.Decimal, ok bool) {
	dims := []decimal.NullDecimal{order.Height, order.Width, order.Length}
	volume := decimal.NewFromInt(1)
	for _, d := range dims {
		if !d.Valid || !d.Decimal.IsPositive() {
			return decimal.Zero, false
		}
		volume = volume.Mul(d.Decimal)
	}

	return volume.Div(volumetricDivisor), true
}

// LookupRate picks the smallest bracket >= desi, or the largest bracket when desi exceeds all of them.
// rates must be sorted by desi ascending.
func LookupRate(rates []models.Rate, desi decimal.Decimal) (models.Rate, bool) {
	if len(rates) == 0 {
		return models.Rate{}, false
	}
	for _, r := range rates {
		if r.Desi.GreaterThanOrEqual(desi) {
			return r, true
		}
	}

	return rates[len(rates)-1], true
}

// ResolveTier returns operator tier, BRONZE when it is unknown or cannot be read
func (p *Pricer) ResolveTier(ctx context.Context, operatorID uint64) string {
	tier, err := p.rates.Tier(ctx, operatorID)
	if err != nil || tier == "" {
		return models.TierBronze
	}

	return tier
}

// Price returns the shipment price of order sent from sender under tier.
// Orders without full dimensions and tiers without any rate rows price at zero.
func (p *Pricer) Price(ctx context.Context, order models.Order, sender models.SenderAddress, tier string) (decimal.Decimal, error) {
	desi, ok := Desi(order)
	if !ok {
		return decimal.Zero, nil
	}

	rate, found, err := p.rate(ctx, tier, desi)
	if err != nil || !found {
		return decimal.Zero, err
	}

	if carrier.SameCity(sender.City, order.ShippingCity) {
		return rate.CityPrice, nil
	}

	return rate.IntercityPrice, nil
}

func (p *Pricer) rate(ctx context.Context, tier string, desi decimal.Decimal) (models.Rate, bool, error) {
	rates, err := p.rates.RatesByTier(ctx, tier)
	if err != nil {
		return models.Rate{}, false, err
	}

	if len(rates) == 0 && tier != models.TierBronze {
		rates, err = p.rates.RatesByTier(ctx, models.TierBronze)
		if err != nil {
			return models.Rate{}, false, err
		}
	}

	rate, found := LookupRate(rates, desi)
	return rate, found, nil
}
