// Package services contains stateless domain services for the ordering
// bounded context. They operate purely on domain types: totals here are
// always recomputed from cart lines and catalog prices, never cached.
package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/tabshare/services/ordering/domain"
	"github.com/ghuser/tabshare/services/ordering/domain/models"
)

// BuildCartSnapshot prices one user's cart entries. Entry order is preserved.
func BuildCartSnapshot(sessionID, userID uuid.UUID, entries []models.CartEntry) models.CartSnapshot {
	snap := models.CartSnapshot{
		SessionID: sessionID,
		UserID:    userID,
		Lines:     make([]models.CartSnapshotLine, 0, len(entries)),
		Total:     decimal.Zero,
	}
	for _, e := range entries {
		lineTotal := e.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
		snap.Lines = append(snap.Lines, models.CartSnapshotLine{
			MenuItemID: e.MenuItemID,
			Name:       e.ItemName,
			Price:      e.Price,
			Quantity:   e.Quantity,
			LineTotal:  lineTotal,
		})
		snap.Total = snap.Total.Add(lineTotal)
	}
	return snap
}

// BuildReceipt aggregates a whole session's cart entries into per-member
// shares and a grand total. Entries must already be restricted to current
// members; members without entries simply do not appear. Member order follows
// first appearance in entries (repositories order by name), line order is
// preserved within a member.
//
// Returns domain.ErrReceiptEmpty when there are no entries at all.
func BuildReceipt(session *models.Session, entries []models.CartEntry, now time.Time) (*models.Receipt, error) {
	if len(entries) == 0 {
		return nil, domain.ErrReceiptEmpty
	}

	receipt := &models.Receipt{
		SessionName: session.Name.String(),
		Pin:         session.Pin,
		GeneratedAt: now,
		GrandTotal:  decimal.Zero,
	}

	idx := make(map[uuid.UUID]int)
	for _, e := range entries {
		i, ok := idx[e.UserID]
		if !ok {
			i = len(receipt.Members)
			idx[e.UserID] = i
			receipt.Members = append(receipt.Members, models.MemberShare{
				UserID:   e.UserID,
				Name:     e.UserName,
				Subtotal: decimal.Zero,
			})
		}

		lineTotal := e.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
		receipt.Members[i].Lines = append(receipt.Members[i].Lines, models.ReceiptLine{
			Name:      e.ItemName,
			Price:     e.Price,
			Quantity:  e.Quantity,
			LineTotal: lineTotal,
		})
		receipt.Members[i].Subtotal = receipt.Members[i].Subtotal.Add(lineTotal)
		receipt.GrandTotal = receipt.GrandTotal.Add(lineTotal)
	}

	return receipt, nil
}
