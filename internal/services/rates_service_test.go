package services

import (
	"context"
	"errors"
	"testing"

	"github.com/oguzcelik/jewelry-backend/internal/schema"
	"github.com/oguzcelik/jewelry-backend/internal/storage/memory"
)

func TestRatesUpdateAndGetNormalizeCurrency(t *testing.T) {
	svc := NewRatesService(memory.NewEmpty())
	ctx := context.Background()

	r, err := svc.Update(ctx, " usd ", schema.UpdateExchangeRate{Rate: "28.50"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if r.Currency != "USD" {
		t.Fatalf("currency stored as %q; want USD", r.Currency)
	}

	got, err := svc.Get(ctx, "usd")
	if err != nil || got.Rate != "28.50" {
		t.Fatalf("Get = (%+v, %v)", got, err)
	}
}

func TestRatesUpdateOverwrites(t *testing.T) {
	svc := NewRatesService(memory.NewEmpty())
	ctx := context.Background()

	if _, err := svc.Update(ctx, "GOLD", schema.UpdateExchangeRate{Rate: "1700.00"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, err := svc.Update(ctx, "GOLD", schema.UpdateExchangeRate{Rate: "1750.00"}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	list, err := svc.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("List = %d items (%v); want 1", len(list), err)
	}
	if list[0].Rate != "1750.00" {
		t.Fatalf("rate = %q; want 1750.00", list[0].Rate)
	}
}

func TestRatesGetMissing(t *testing.T) {
	svc := NewRatesService(memory.NewEmpty())
	if _, err := svc.Get(context.Background(), "JPY"); !errors.Is(err, ErrRateNotFound) {
		t.Fatalf("err = %v; want ErrRateNotFound", err)
	}
}

func TestRatesUpdateRejectsInvalidRate(t *testing.T) {
	svc := NewRatesService(memory.NewEmpty())
	_, err := svc.Update(context.Background(), "USD", schema.UpdateExchangeRate{Rate: "abc"})
	var ve *schema.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v; want *schema.ValidationError", err)
	}
}
