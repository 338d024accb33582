package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/afaeffea/salon-bot-tg/internal/domain/booking"
	"github.com/afaeffea/salon-bot-tg/internal/httperr"
	"github.com/afaeffea/salon-bot-tg/internal/models"
	"github.com/afaeffea/salon-bot-tg/internal/notify"
)

func testStack() (*fakeLedger, *fakeCatalog, *captureNotifier, *notify.Dispatcher) {
	ledger := newFakeLedger()
	cat := &fakeCatalog{
		master:    &models.Master{ID: 1, DisplayName: "Anna"},
		durations: map[uint]int{10: 60},
	}
	sink := newCaptureNotifier()
	return ledger, cat, sink, notify.NewDispatcher(sink)
}

func waitKind(t *testing.T, sink *captureNotifier, want notify.Kind) {
	t.Helper()
	select {
	case got := <-sink.kinds:
		assert.Equal(t, want, got)
	case <-time.After(time.Second):
		t.Fatalf("no %s event dispatched", want)
	}
}

func validInput() CreateInput {
	return CreateInput{
		ClientID:    7,
		MasterID:    1,
		ServiceID:   10,
		Date:        "2026-09-01",
		Start:       "10:00",
		ClientName:  "Ivan Petrov",
		ClientPhone: "+7 999 123-45-67",
	}
}

func TestCreateBooksSlot(t *testing.T) {
	ledger, cat, sink, dispatcher := testStack()
	uc := NewCreate(ledger, cat, dispatcher)

	view, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), view.Status)
	assert.Equal(t, "10:00", view.StartTime)
	assert.Equal(t, "11:00", view.EndTime)
	assert.NotEmpty(t, view.Reference)
	assert.Equal(t, "Ivan Petrov", view.ClientName)

	waitKind(t, sink, notify.KindBookingCreated)
}

func TestCreateRejectsOverlap(t *testing.T) {
	ledger, cat, _, dispatcher := testStack()
	uc := NewCreate(ledger, cat, dispatcher)

	_, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)

	in := validInput()
	in.Start = "10:30"
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
}

func TestCreateAllowsBackToBack(t *testing.T) {
	ledger, cat, _, dispatcher := testStack()
	uc := NewCreate(ledger, cat, dispatcher)

	_, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)

	in := validInput()
	in.Start = "11:00"
	_, err = uc.Execute(context.Background(), in)
	assert.NoError(t, err)
}

func TestCreateConcurrentSameSlotOneWinner(t *testing.T) {
	ledger, cat, _, dispatcher := testStack()
	uc := NewCreate(ledger, cat, dispatcher)

	const workers = 8

	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), validInput())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok, conflicts := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case httperr.IsBusiness(err, "time_conflict"):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, conflicts)
}

func TestCreateValidation(t *testing.T) {
	ledger, cat, _, dispatcher := testStack()
	uc := NewCreate(ledger, cat, dispatcher)

	tests := []struct {
		name   string
		mutate func(*CreateInput)
		code   string
	}{
		{"bad date", func(in *CreateInput) { in.Date = "01.09.2026" }, "invalid_date_or_time"},
		{"bad time", func(in *CreateInput) { in.Start = "25:00" }, "invalid_date_or_time"},
		{"short name", func(in *CreateInput) { in.ClientName = "A" }, "invalid_name"},
		{"bad phone", func(in *CreateInput) { in.ClientPhone = "call me" }, "invalid_phone"},
		{"unknown master", func(in *CreateInput) { in.MasterID = 99 }, "master_not_found"},
		{"unknown service", func(in *CreateInput) { in.ServiceID = 99 }, "service_not_found"},
		{"runs past midnight", func(in *CreateInput) { in.Start = "23:30" }, "invalid_date_or_time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := uc.Execute(context.Background(), in)
			assert.True(t, httperr.IsBusiness(err, tt.code), "got %v", err)
		})
	}
}

func TestCancelAndGuards(t *testing.T) {
	ledger, cat, sink, dispatcher := testStack()
	createUC := NewCreate(ledger, cat, dispatcher)
	cancelUC := NewCancel(ledger, dispatcher)

	view, err := createUC.Execute(context.Background(), validInput())
	require.NoError(t, err)
	waitKind(t, sink, notify.KindBookingCreated)

	cancelled, err := cancelUC.Execute(context.Background(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
	waitKind(t, sink, notify.KindCancelled)

	// Cancelling again is rejected.
	_, err = cancelUC.Execute(context.Background(), view.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	// The slot is free again.
	_, err = createUC.Execute(context.Background(), validInput())
	assert.NoError(t, err)
}

func TestSetStatusConfirmAndDecline(t *testing.T) {
	ledger, cat, _, dispatcher := testStack()
	createUC := NewCreate(ledger, cat, dispatcher)
	setUC := NewSetStatus(ledger, dispatcher)

	view, err := createUC.Execute(context.Background(), validInput())
	require.NoError(t, err)

	confirmed, err := setUC.Execute(context.Background(), view.ID, domain.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), confirmed.Status)

	// A confirmed appointment is no longer pending, so a second
	// decision is rejected.
	_, err = setUC.Execute(context.Background(), view.ID, domain.StatusDeclined)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	// Only confirm and decline are valid decisions.
	_, err = setUC.Execute(context.Background(), view.ID, domain.StatusCancelled)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}
