package service

import (
	"context"
	"errors"

	"github.com/rookgm/cargolabel/internal/carrier"
	"github.com/rookgm/cargolabel/internal/models"
	"github.com/shopspring/decimal"
)

// Quote is the live price of one order
type Quote struct {
	OrderID   string          `json:"order_id"`
	Tier      string          `json:"tier"`
	Desi      decimal.Decimal `json:"desi"`
	Priceable bool            `json:"priceable"`
	SameCity  bool            `json:"same_city"`
	Price     decimal.Decimal `json:"price"`
	Balance   decimal.Decimal `json:"balance"`
}

// OrderService prices single orders
type OrderService struct {
	orders   OrderRepository
	senders  SenderRepository
	balances BalanceRepository
	pricer   *Pricer
}

// NewOrderService creates new OrderService instance
func NewOrderService(orders OrderRepository, senders SenderRepository, balances BalanceRepository, pricer *Pricer) *OrderService {
	return &OrderService{
		orders:   orders,
		senders:  senders,
		balances: balances,
		pricer:   pricer,
	}
}

// Quote prices order against the operator's default sender address
func (os *OrderService) Quote(ctx context.Context, operatorID uint64, orderID string) (*Quote, error) {
	order, err := os.orders.GetOrder(ctx, operatorID, orderID)
	if err != nil {
		return nil, err
	}

	sender, err := os.senders.DefaultSender(ctx, operatorID)
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return nil, models.ErrNoSenderAddress
		}
		return nil, err
	}

	tier := os.pricer.ResolveTier(ctx, operatorID)
	price, err := os.pricer.Price(ctx, *order, *sender, tier)
	if err != nil {
		return nil, err
	}

	balance, err := os.balances.Balance(ctx, operatorID)
	if err != nil {
		return nil, err
	}

	desi, ok := Desi(*order)
	return &Quote{
		OrderID:   order.ID,
		Tier:      tier,
		Desi:      desi.Round(2),
		Priceable: ok && price.IsPositive(),
		SameCity:  carrier.SameCity(sender.City, order.ShippingCity),
		Price:     price,
		Balance:   balance,
	}, nil
}
