package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// subscription tiers
const (
	TierBronze   = "BRONZE"
	TierSilver   = "SILVER"
	TierGold     = "GOLD"
	TierPlatinum = "PLATINUM"
)

// Operator is the account that owns orders and the prepaid balance
type Operator struct {
	ID           uint64
	Login        string
	PasswordHash string
	Tier         string
	Balance      decimal.Decimal
	CreatedAt    time.Time
}

// Rate is one desi bracket of a tier's rate table
type Rate struct {
	Tier           string
	Desi           decimal.Decimal
	CityPrice      decimal.Decimal
	IntercityPrice decimal.Decimal
}

// SenderAddress is the dispatch origin used for pricing and carrier payloads
type SenderAddress struct {
	ID         uint64
	OperatorID uint64
	Name       string
	Phone      string
	Address    string
	City       string
	District   string
	IsDefault  bool
	CreatedAt  time.Time
}
