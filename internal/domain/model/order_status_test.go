package model_test

import (
	"testing"

	"app/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestNextStatusName_HappyPathChain(t *testing.T) {
	chain := []string{
		model.StatusNew,
		model.StatusConfirmed,
		model.StatusMovedToDelivery,
		model.StatusInDelivery,
		model.StatusDelivered,
	}

	for i := 0; i < len(chain)-1; i++ {
		next, ok := model.NextStatusName(chain[i])
		assert.True(t, ok, "%q must have a forward step", chain[i])
		assert.Equal(t, chain[i+1], next)
	}

	//配達済みから先の前進は受け取り確認（ユーザー操作）だけ
	_, ok := model.NextStatusName(model.StatusDelivered)
	assert.False(t, ok)
}

func TestNextStatusName_NoForwardFromTerminal(t *testing.T) {
	for _, name := range []string{
		model.StatusDeliveryConfirmed,
		model.StatusCancelledByUser,
		model.StatusCancelledByAdmin,
	} {
		_, ok := model.NextStatusName(name)
		assert.False(t, ok, "%q must not move forward", name)
	}
}

func TestIsTerminalStatus(t *testing.T) {
	assert.True(t, model.IsTerminalStatus(model.StatusDeliveryConfirmed))
	assert.True(t, model.IsTerminalStatus(model.StatusCancelledByUser))
	assert.True(t, model.IsTerminalStatus(model.StatusCancelledByAdmin))

	assert.False(t, model.IsTerminalStatus(model.StatusNew))
	assert.False(t, model.IsTerminalStatus(model.StatusInDelivery))
	assert.False(t, model.IsTerminalStatus(model.StatusDelivered))
	assert.False(t, model.IsTerminalStatus("unknown"))
}

func TestOrderStatusNames_CoversAllSeededStatuses(t *testing.T) {
	assert.Len(t, model.OrderStatusNames, 8)

	seen := map[string]struct{}{}
	for _, name := range model.OrderStatusNames {
		seen[name] = struct{}{}
	}
	assert.Len(t, seen, 8, "seed names must be unique")
}
