package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Gunvolt24/storefront/internal/ports/mocks"
	"github.com/Gunvolt24/storefront/internal/usecase"
	"github.com/Gunvolt24/storefront/pkg/validate"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
)

func TestPublisher_UpsertRoundTripsThroughIngest(t *testing.T) {
	ctrl := gomock.NewController(t)
	pub := mocks.NewMockEventPublisher(ctrl)
	svc := usecase.NewProductPublisher(pub, validate.NewProductValidator(), noopLogger{})

	p := products("skincare", 1)[0]

	var sent []byte
	pub.EXPECT().Publish(gomock.Any(), p.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value []byte) error {
			sent = value
			return nil
		})

	if err := svc.Upsert(context.Background(), &p); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	var ev usecase.ProductEvent
	if err := json.Unmarshal(sent, &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev.Op != usecase.OpUpsert || ev.Product == nil {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if diff := cmp.Diff(p, *ev.Product); diff != "" {
		t.Fatalf("product mismatch (-want +got):\n%s", diff)
	}

	// Сообщение должно приниматься потребителем.
	d := newIngest(t)
	d.repo.EXPECT().GetByID(gomock.Any(), p.ID).Return(nil, nil)
	d.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	d.invalidator.EXPECT().InvalidateProduct(gomock.Any(), p.ID, gomock.Any())
	if err := d.svc.HandleMessage(context.Background(), sent); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
}

func TestPublisher_InvalidProductNotSent(t *testing.T) {
	ctrl := gomock.NewController(t)
	pub := mocks.NewMockEventPublisher(ctrl)
	svc := usecase.NewProductPublisher(pub, validate.NewProductValidator(), noopLogger{})

	p := products("skincare", 1)[0]
	p.Price = 0
	if err := svc.Upsert(context.Background(), &p); !errors.Is(err, validate.ErrInvalidProduct) {
		t.Fatalf("want ErrInvalidProduct, got %v", err)
	}
	if err := svc.Delete(context.Background(), ""); !errors.Is(err, validate.ErrInvalidProduct) {
		t.Fatalf("want ErrInvalidProduct for empty id, got %v", err)
	}
}

func TestPublisher_DeleteAndBrokerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	pub := mocks.NewMockEventPublisher(ctrl)
	svc := usecase.NewProductPublisher(pub, validate.NewProductValidator(), noopLogger{})

	boom := errors.New("broker down")
	pub.EXPECT().Publish(gomock.Any(), "p-1", []byte(`{"op":"delete","id":"p-1"}`)).Return(boom)

	if err := svc.Delete(context.Background(), "p-1"); !errors.Is(err, boom) {
		t.Fatalf("want broker error, got %v", err)
	}
}
