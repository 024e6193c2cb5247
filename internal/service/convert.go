package service

import (
	"errors"

	"github.com/mmynk/kasir/internal/ledgersync"
	"github.com/mmynk/kasir/internal/models"
	"github.com/mmynk/kasir/pkg/api"
)

func linesFromAPI(in []api.CartLine) []models.CartLine {
	out := make([]models.CartLine, len(in))
	for i, l := range in {
		out[i] = models.CartLine{
			ItemID:    l.ItemID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		}
	}
	return out
}

func linesToAPI(in []models.CartLine) []api.CartLine {
	out := make([]api.CartLine, len(in))
	for i, l := range in {
		out[i] = api.CartLine{
			ItemID:    l.ItemID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal(),
		}
	}
	return out
}

func optionsToAPI(opts models.PaymentOptions) []int64 {
	return opts[:]
}

func transactionToAPI(tx *models.Transaction) *api.Transaction {
	return &api.Transaction{
		ID:           tx.ID,
		Timestamp:    tx.Timestamp,
		Lines:        linesToAPI(tx.Lines),
		Total:        tx.Total,
		AmountPaid:   tx.AmountPaid,
		Change:       tx.Change,
		Options:      optionsToAPI(tx.Options),
		ChosenOption: tx.ChosenOption.String(),
	}
}

// syncStatusToAPI converts a stored status. syncErr is the error of an
// attempt made by the current call, if any.
func syncStatusToAPI(status models.SyncStatus, syncErr error) *api.SyncStatus {
	out := &api.SyncStatus{
		State:  string(status.State),
		Reason: status.Reason,
	}
	if !status.AttemptedAt.IsZero() {
		at := status.AttemptedAt
		out.AttemptedAt = &at
	}
	switch {
	case syncErr == nil:
	case errors.Is(syncErr, ledgersync.ErrConfiguration):
		out.ErrorKind = "configuration"
	default:
		out.ErrorKind = "unavailable"
	}
	return out
}

func menuItemToAPI(item *models.MenuItem) *api.MenuItem {
	return &api.MenuItem{
		ID:        item.ID,
		Name:      item.Name,
		UnitPrice: item.UnitPrice,
	}
}
