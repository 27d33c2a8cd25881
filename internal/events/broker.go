package events

import (
	"encoding/json"
	"sync"

	"github.com/rookgm/cargolabel/internal/logger"
	"github.com/rookgm/cargolabel/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// event names as seen by subscribers
const (
	NameBalanceChanged = "balance_changed"
	NameLabelProgress  = "label_progress"
)

const subscriberBuffer = 32

// Event is one message for an operator's subscribers
type Event struct {
	Name string
	Data []byte
}

type balancePayload struct {
	Balance decimal.Decimal `json:"balance"`
}

// Broker fans batch events out to the operator's subscribers.
// Slow subscribers lose events instead of blocking a batch.
type Broker struct {
	mu   sync.RWMutex
	subs map[uint64]map[chan Event]struct{}
}

// NewBroker creates new Broker instance
func NewBroker() *Broker {
	return &Broker{subs: make(map[uint64]map[chan Event]struct{})}
}

// Subscribe registers a subscriber. The returned func must be called to release it.
func (b *Broker) Subscribe(operatorID uint64) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	b.mu.Lock()
	if b.subs[operatorID] == nil {
		b.subs[operatorID] = make(map[chan Event]struct{})
	}
	b.subs[operatorID][ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[operatorID], ch)
			if len(b.subs[operatorID]) == 0 {
				delete(b.subs, operatorID)
			}
			b.mu.Unlock()
			close(ch)
		})
	}
}

// BalanceChanged publishes the new balance
func (b *Broker) BalanceChanged(operatorID uint64, balance decimal.Decimal) {
	b.publish(operatorID, NameBalanceChanged, balancePayload{Balance: balance})
}

// LabelProgress publishes one batch item outcome
func (b *Broker) LabelProgress(operatorID uint64, event models.ProgressEvent) {
	b.publish(operatorID, NameLabelProgress, event)
}

func (b *Broker) publish(operatorID uint64, name string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Log.Error("encode event", zap.String("event", name), zap.Error(err))
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subs[operatorID] {
		select {
		case ch <- Event{Name: name, Data: data}:
		default:
			logger.Log.Debug("subscriber is slow, event dropped",
				zap.Uint64("operator", operatorID), zap.String("event", name))
		}
	}
}
