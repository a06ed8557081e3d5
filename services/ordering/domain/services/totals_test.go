package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/tabshare/services/ordering/domain"
	"github.com/ghuser/tabshare/services/ordering/domain/models"
)

func price(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testSession(t *testing.T) *models.Session {
	t.Helper()
	name, err := models.NewSessionName("Hotpot Night")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pin, err := models.NewPin("0427")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return models.NewSession(name, pin, uuid.New())
}

func TestBuildCartSnapshot(t *testing.T) {
	sessionID := uuid.New()
	userID := uuid.New()
	shrimp := uuid.New()

	t.Run("empty cart has zero total", func(t *testing.T) {
		snap := BuildCartSnapshot(sessionID, userID, nil)
		if len(snap.Lines) != 0 {
			t.Fatalf("expected no lines, got %d", len(snap.Lines))
		}
		if !snap.Total.Equal(decimal.Zero) {
			t.Fatalf("expected zero total, got %s", snap.Total)
		}
	})

	t.Run("line totals multiply price by quantity", func(t *testing.T) {
		snap := BuildCartSnapshot(sessionID, userID, []models.CartEntry{
			{MenuItemID: shrimp, ItemName: "Shrimp", Price: price("8.00"), Quantity: 2},
		})
		if len(snap.Lines) != 1 {
			t.Fatalf("expected 1 line, got %d", len(snap.Lines))
		}
		if !snap.Lines[0].LineTotal.Equal(price("16.00")) {
			t.Fatalf("expected line total 16.00, got %s", snap.Lines[0].LineTotal)
		}
		if !snap.Total.Equal(price("16.00")) {
			t.Fatalf("expected cart total 16.00, got %s", snap.Total)
		}
	})

	t.Run("total sums all lines", func(t *testing.T) {
		snap := BuildCartSnapshot(sessionID, userID, []models.CartEntry{
			{MenuItemID: uuid.New(), ItemName: "Shrimp", Price: price("8.00"), Quantity: 3},
			{MenuItemID: uuid.New(), ItemName: "Broccoli", Price: price("4.50"), Quantity: 2},
		})
		if !snap.Total.Equal(price("33.00")) {
			t.Fatalf("expected 33.00, got %s", snap.Total)
		}
	})
}

func TestBuildReceipt(t *testing.T) {
	session := testSession(t)
	now := time.Now().UTC()
	memberA := uuid.New()
	memberB := uuid.New()

	t.Run("no entries yields ErrReceiptEmpty", func(t *testing.T) {
		_, err := BuildReceipt(session, nil, now)
		if !errors.Is(err, domain.ErrReceiptEmpty) {
			t.Fatalf("expected ErrReceiptEmpty, got %v", err)
		}
	})

	t.Run("per-member subtotals and grand total", func(t *testing.T) {
		entries := []models.CartEntry{
			{UserID: memberA, UserName: "Alice", ItemName: "Shrimp", Price: price("8.00"), Quantity: 1},
			{UserID: memberB, UserName: "Bob", ItemName: "Broccoli", Price: price("4.00"), Quantity: 2},
		}
		receipt, err := BuildReceipt(session, entries, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if receipt.SessionName != "Hotpot Night" || receipt.Pin != session.Pin {
			t.Fatalf("receipt header mismatch: %+v", receipt)
		}
		if len(receipt.Members) != 2 {
			t.Fatalf("expected 2 members, got %d", len(receipt.Members))
		}
		if !receipt.Members[0].Subtotal.Equal(price("8.00")) {
			t.Fatalf("member A subtotal: expected 8.00, got %s", receipt.Members[0].Subtotal)
		}
		if !receipt.Members[1].Subtotal.Equal(price("8.00")) {
			t.Fatalf("member B subtotal: expected 8.00, got %s", receipt.Members[1].Subtotal)
		}
		if !receipt.GrandTotal.Equal(price("16.00")) {
			t.Fatalf("grand total: expected 16.00, got %s", receipt.GrandTotal)
		}
	})

	t.Run("grand total equals sum of member subtotals", func(t *testing.T) {
		entries := []models.CartEntry{
			{UserID: memberA, UserName: "Alice", ItemName: "Shrimp", Price: price("8.00"), Quantity: 3},
			{UserID: memberA, UserName: "Alice", ItemName: "Tea", Price: price("2.25"), Quantity: 1},
			{UserID: memberB, UserName: "Bob", ItemName: "Broccoli", Price: price("4.00"), Quantity: 2},
		}
		receipt, err := BuildReceipt(session, entries, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		sum := decimal.Zero
		for _, m := range receipt.Members {
			sum = sum.Add(m.Subtotal)
		}
		if !receipt.GrandTotal.Equal(sum) {
			t.Fatalf("grand total %s != sum of subtotals %s", receipt.GrandTotal, sum)
		}
	})

	t.Run("members without entries are absent", func(t *testing.T) {
		entries := []models.CartEntry{
			{UserID: memberA, UserName: "Alice", ItemName: "Shrimp", Price: price("8.00"), Quantity: 1},
		}
		receipt, err := BuildReceipt(session, entries, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(receipt.Members) != 1 {
			t.Fatalf("expected only members with lines, got %d", len(receipt.Members))
		}
		if receipt.Members[0].UserID != memberA {
			t.Fatalf("unexpected member %v", receipt.Members[0].UserID)
		}
	})

	t.Run("lines group under their member", func(t *testing.T) {
		entries := []models.CartEntry{
			{UserID: memberA, UserName: "Alice", ItemName: "Shrimp", Price: price("8.00"), Quantity: 1},
			{UserID: memberB, UserName: "Bob", ItemName: "Broccoli", Price: price("4.00"), Quantity: 1},
			{UserID: memberA, UserName: "Alice", ItemName: "Tea", Price: price("2.25"), Quantity: 2},
		}
		receipt, err := BuildReceipt(session, entries, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(receipt.Members) != 2 {
			t.Fatalf("expected 2 members, got %d", len(receipt.Members))
		}
		if len(receipt.Members[0].Lines) != 2 || len(receipt.Members[1].Lines) != 1 {
			t.Fatalf("line grouping wrong: %d/%d", len(receipt.Members[0].Lines), len(receipt.Members[1].Lines))
		}
		if !receipt.Members[0].Subtotal.Equal(price("12.50")) {
			t.Fatalf("expected 12.50, got %s", receipt.Members[0].Subtotal)
		}
	})
}
