package events

import (
	"encoding/json"
	"testing"

	"github.com/rookgm/cargolabel/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker_BalanceChanged(t *testing.T) {
	b := NewBroker()
	ch, release := b.Subscribe(1)
	defer release()

	other, releaseOther := b.Subscribe(2)
	defer releaseOther()

	b.BalanceChanged(1, decimal.RequireFromString("57.50"))

	ev := <-ch
	assert.Equal(t, NameBalanceChanged, ev.Name)

	var got balancePayload
	require.NoError(t, json.Unmarshal(ev.Data, &got))
	assert.True(t, decimal.RequireFromString("57.5").Equal(got.Balance))

	assert.Empty(t, other)
}

func TestBroker_LabelProgress(t *testing.T) {
	b := NewBroker()
	ch, release := b.Subscribe(7)
	defer release()

	b.LabelProgress(7, models.ProgressEvent{
		Kind:    models.BatchCreate,
		Index:   2,
		Total:   3,
		OrderID: "A-2",
		Outcome: models.OutcomeFailed,
		Error:   "boom",
	})

	ev := <-ch
	assert.Equal(t, NameLabelProgress, ev.Name)

	var got models.ProgressEvent
	require.NoError(t, json.Unmarshal(ev.Data, &got))
	assert.Equal(t, "A-2", got.OrderID)
	assert.Equal(t, models.OutcomeFailed, got.Outcome)
	assert.Equal(t, 2, got.Index)
}

func TestBroker_SlowSubscriberDoesNotBlock(t *testing.T) {
	b := NewBroker()
	ch, release := b.Subscribe(1)
	defer release()

	for i := 0; i < subscriberBuffer+10; i++ {
		b.BalanceChanged(1, decimal.NewFromInt(int64(i)))
	}

	assert.Len(t, ch, subscriberBuffer)
}

func TestBroker_Release(t *testing.T) {
	b := NewBroker()
	ch, release := b.Subscribe(1)

	release()
	release()

	_, open := <-ch
	assert.False(t, open)

	// no subscribers left, publishing is a no-op
	b.BalanceChanged(1, decimal.Zero)
	assert.Empty(t, b.subs)
}
