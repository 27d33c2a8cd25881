package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rookgm/cargolabel/internal/carrier"
	"github.com/rookgm/cargolabel/internal/models"
	"github.com/shopspring/decimal"
)

const testOperator uint64 = 1

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dim(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(dec(s))
}

// bronzeRates mirrors the seeded BRONZE table
func bronzeRates() []models.Rate {
	rows := [][3]string{
		{"1", "42.50", "55.00"},
		{"3", "49.90", "64.90"},
		{"5", "58.00", "76.00"},
		{"10", "79.00", "104.00"},
		{"20", "118.00", "156.00"},
		{"30", "165.00", "219.00"},
	}
	rates := make([]models.Rate, 0, len(rows))
	for _, r := range rows {
		rates = append(rates, models.Rate{Tier: models.TierBronze, Desi: dec(r[0]), CityPrice: dec(r[1]), IntercityPrice: dec(r[2])})
	}
	return rates
}

// newOrder returns an Istanbul order of 10x10x30 cm, 1 kg (desi 1.00)
func newOrder(id string) *models.Order {
	return &models.Order{
		ID:               id,
		OperatorID:       testOperator,
		Status:           models.OrderStatusNew,
		Height:           dim("10"),
		Width:            dim("10"),
		Length:           dim("30"),
		Weight:           dim("1"),
		CustomerName:     id,
		CustomerPhone:    "+90 (532) 111 22 33",
		ShippingAddress:  "Moda Cad. 1",
		ShippingCity:     "istanbul",
		ShippingDistrict: "Kadıköy",
	}
}

// fakeStore is an in-memory record store behind every repository interface of the service
type fakeStore struct {
	mu sync.Mutex

	orders  map[string]*models.Order
	labels  []models.ShippingLabel
	balance decimal.Decimal
	tier    string
	tierErr error
	rates   map[string][]models.Rate
	sender  *models.SenderAddress

	recordIssuedErr map[string]error
	issuedLabelErr  error
	adjustErr       error

	balanceReads int
	adjustCalls  int
	reloads      int
	// onReload runs when an order is fetched during submission
	onReload func(o *models.Order)
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:  make(map[string]*models.Order),
		balance: dec("1000"),
		tier:    models.TierBronze,
		rates:   map[string][]models.Rate{models.TierBronze: bronzeRates()},
		sender: &models.SenderAddress{
			ID:         1,
			OperatorID: testOperator,
			Name:       "Depo",
			Phone:      "0216 000 00 00",
			Address:    "Depo Sk. 5",
			City:       "İSTANBUL",
			District:   "ATAŞEHİR",
			IsDefault:  true,
		},
		recordIssuedErr: make(map[string]error),
	}
}

func (s *fakeStore) addOrders(orders ...*models.Order) {
	for _, o := range orders {
		s.orders[o.ID] = o
	}
}

func (s *fakeStore) GetOrdersByIDs(_ context.Context, operatorID uint64, ids []string) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Order
	for _, id := range ids {
		if o, ok := s.orders[id]; ok && o.OperatorID == operatorID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *fakeStore) GetOrder(_ context.Context, operatorID uint64, id string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok || o.OperatorID != operatorID {
		return nil, models.ErrDataNotFound
	}
	s.reloads++
	if s.onReload != nil {
		s.onReload(o)
	}
	cp := *o
	return &cp, nil
}

func (s *fakeStore) RecordIssued(_ context.Context, label models.ShippingLabel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.recordIssuedErr[label.OrderID]; err != nil {
		return err
	}
	o := s.orders[label.OrderID]
	if o == nil || o.TrackingNumber != "" {
		return models.ErrConflictData
	}
	o.Status = models.OrderStatusReady
	o.TrackingNumber = label.TrackingNumber
	s.labels = append(s.labels, label)
	return nil
}

func (s *fakeStore) RecordCanceled(_ context.Context, label models.ShippingLabel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := s.orders[label.OrderID]
	if o == nil || o.TrackingNumber != label.TrackingNumber {
		return models.ErrConflictData
	}
	s.labels = append(s.labels, label)
	o.Status = models.OrderStatusCanceled
	o.TrackingNumber = ""
	return nil
}

func (s *fakeStore) IssuedLabel(_ context.Context, orderID, trackingNumber string) (*models.ShippingLabel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.issuedLabelErr != nil {
		return nil, s.issuedLabelErr
	}
	for i := len(s.labels) - 1; i >= 0; i-- {
		l := s.labels[i]
		if l.OrderID == orderID && l.TrackingNumber == trackingNumber && !l.IsCanceled {
			return &l, nil
		}
	}
	return nil, models.ErrDataNotFound
}

func (s *fakeStore) Balance(_ context.Context, _ uint64) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.balanceReads++
	return s.balance, nil
}

func (s *fakeStore) AdjustBalance(_ context.Context, _ uint64, delta decimal.Decimal) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.adjustCalls++
	if s.adjustErr != nil {
		return decimal.Zero, s.adjustErr
	}
	s.balance = s.balance.Add(delta)
	return s.balance, nil
}

func (s *fakeStore) DefaultSender(_ context.Context, _ uint64) (*models.SenderAddress, error) {
	if s.sender == nil {
		return nil, models.ErrDataNotFound
	}
	cp := *s.sender
	return &cp, nil
}

func (s *fakeStore) RatesByTier(_ context.Context, tier string) ([]models.Rate, error) {
	return s.rates[tier], nil
}

func (s *fakeStore) Tier(_ context.Context, _ uint64) (string, error) {
	return s.tier, s.tierErr
}

func (s *fakeStore) labelsFor(orderID string) []models.ShippingLabel {
	var out []models.ShippingLabel
	for _, l := range s.labels {
		if l.OrderID == orderID {
			out = append(out, l)
		}
	}
	return out
}

// fakeCarrier books every shipment except those addressed to a rejected recipient
type fakeCarrier struct {
	mu        sync.Mutex
	reject    map[string]bool
	submitErr error
	submitted []carrier.Shipment
	canceled  []string
	onSubmit  func(carrier.Shipment)
}

func newFakeCarrier() *fakeCarrier {
	return &fakeCarrier{reject: make(map[string]bool)}
}

func (c *fakeCarrier) SubmitShipment(_ context.Context, shipment carrier.Shipment) (*carrier.SubmitResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.submitted = append(c.submitted, shipment)
	if c.onSubmit != nil {
		c.onSubmit(shipment)
	}
	if c.submitErr != nil {
		return nil, c.submitErr
	}
	if c.reject[shipment.RecipientName] {
		return &carrier.SubmitResult{Success: false, Message: "address rejected"}, nil
	}
	return &carrier.SubmitResult{Success: true, TrackingID: "TRK-" + shipment.ReferenceCode}, nil
}

func (c *fakeCarrier) CancelShipment(_ context.Context, trackingNumber string) (*carrier.CancelResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.canceled = append(c.canceled, trackingNumber)
	if c.reject[trackingNumber] {
		return &carrier.CancelResult{Success: false, Message: "already in transit"}, nil
	}
	return &carrier.CancelResult{Success: true}, nil
}

func (c *fakeCarrier) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.submitted) + len(c.canceled)
}

type countingThrottle struct {
	waits int
}

func (t *countingThrottle) Wait(ctx context.Context) error {
	t.waits++
	return ctx.Err()
}

type recordingNotifier struct {
	balances []decimal.Decimal
	events   []models.ProgressEvent
}

func (n *recordingNotifier) BalanceChanged(_ uint64, balance decimal.Decimal) {
	n.balances = append(n.balances, balance)
}

func (n *recordingNotifier) LabelProgress(_ uint64, event models.ProgressEvent) {
	n.events = append(n.events, event)
}

func approve() Confirmer {
	return ConfirmFunc(func(context.Context, models.BatchSummary) (bool, error) {
		return true, nil
	})
}

func decline(seen *models.BatchSummary) Confirmer {
	return ConfirmFunc(func(_ context.Context, s models.BatchSummary) (bool, error) {
		*seen = s
		return false, nil
	})
}

var errUnreachable = errors.New("connection refused")

type testEnv struct {
	store    *fakeStore
	carrier  *fakeCarrier
	throttle *countingThrottle
	notifier *recordingNotifier
	svc      *LabelService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		store:    newFakeStore(),
		carrier:  newFakeCarrier(),
		throttle: &countingThrottle{},
		notifier: &recordingNotifier{},
	}

	ref := 0
	env.svc = NewLabelService(env.store, env.store, env.store, env.store, NewPricer(env.store),
		env.carrier, env.throttle, "courier",
		WithNotifier(env.notifier),
		WithReferenceGenerator(func() string {
			ref++
			return fmt.Sprintf("REF%d", ref)
		}),
	)
	return env
}
