package services

import (
	"context"
	"errors"
	"testing"

	"github.com/oguzcelik/jewelry-backend/internal/domain"
	"github.com/oguzcelik/jewelry-backend/internal/schema"
	"github.com/oguzcelik/jewelry-backend/internal/storage/memory"
)

func TestInboxSubmitAndList(t *testing.T) {
	svc := NewInboxService(memory.NewEmpty())
	ctx := context.Background()

	m, err := svc.Submit(ctx, schema.InsertMessage{
		Name: "Zeynep", Phone: "+90 555 333 33 33", Message: "Is the choker in stock?",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if m.IsRead != domain.FlagFalse {
		t.Fatalf("new message IsRead = %q; want false", m.IsRead)
	}

	list, err := svc.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("List = %d items (%v); want 1", len(list), err)
	}
}

func TestInboxSubmitRejectsInvalidPayload(t *testing.T) {
	svc := NewInboxService(memory.NewEmpty())
	_, err := svc.Submit(context.Background(), schema.InsertMessage{Name: "No Body"})
	var ve *schema.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v; want *schema.ValidationError", err)
	}
}

func TestInboxSetReadStatus(t *testing.T) {
	svc := NewInboxService(memory.NewEmpty())
	ctx := context.Background()

	m, err := svc.Submit(ctx, schema.InsertMessage{
		Name: "Ali", Phone: "+90 555 444 44 44", Message: "Opening hours?",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	upd, err := svc.SetReadStatus(ctx, m.ID, domain.FlagTrue)
	if err != nil || upd.IsRead != domain.FlagTrue {
		t.Fatalf("SetReadStatus = (%+v, %v)", upd, err)
	}

	if _, err := svc.SetReadStatus(ctx, m.ID, "yes"); !errors.Is(err, ErrInvalidFlag) {
		t.Fatalf("err = %v; want ErrInvalidFlag", err)
	}
	if _, err := svc.SetReadStatus(ctx, "missing", domain.FlagTrue); !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("err = %v; want ErrMessageNotFound", err)
	}
}

func TestInboxDelete(t *testing.T) {
	svc := NewInboxService(memory.NewEmpty())
	ctx := context.Background()

	m, err := svc.Submit(ctx, schema.InsertMessage{
		Name: "Ece", Phone: "+90 555 555 55 55", Message: "Thanks!",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := svc.Delete(ctx, m.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, m.ID); !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("second Delete err = %v; want ErrMessageNotFound", err)
	}
}
