package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderFullContext_IsFullyPaid(t *testing.T) {
	ctx := OrderFullContext{
		Order: Order{ID: 1, GrandTotal: 1000},
		Payments: []Payment{
			{OrderID: 1, Amount: 600},
			{OrderID: 1, Amount: 400},
		},
	}
	assert.True(t, ctx.IsFullyPaid())

	ctx.Payments = []Payment{{OrderID: 1, Amount: 999.99}}
	assert.False(t, ctx.IsFullyPaid())

	// overpayment still counts as paid
	ctx.Payments = []Payment{{OrderID: 1, Amount: 1200}}
	assert.True(t, ctx.IsFullyPaid())
}

func TestOrderFullContext_AllKotsServed(t *testing.T) {
	ctx := OrderFullContext{Order: Order{ID: 1}}
	assert.True(t, ctx.AllKotsServed(), "vacuously true with no KOTs")

	ctx.KOTs = []KOTUpdate{
		{ID: 1, Status: KOTStatusServed},
		{ID: 2, Status: "PREPARING"},
	}
	assert.False(t, ctx.AllKotsServed())

	ctx.KOTs[1].Status = KOTStatusServed
	assert.True(t, ctx.AllKotsServed())
}
