package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/afaeffea/salon-bot-tg/internal/domain/booking"
	"github.com/afaeffea/salon-bot-tg/internal/httperr"
	"github.com/afaeffea/salon-bot-tg/internal/notify"
)

func offerFor(t *testing.T, ledger *fakeLedger, cat *fakeCatalog, dispatcher *notify.Dispatcher, id uint) *domain.View {
	t.Helper()
	offerUC := NewOfferReschedule(ledger, cat, dispatcher)
	view, err := offerUC.Execute(context.Background(), OfferRescheduleInput{
		AppointmentID: id,
		ProposedDate:  "2026-09-02",
		ProposedStart: "15:00",
	})
	require.NoError(t, err)
	return view
}

func TestOfferReschedule(t *testing.T) {
	ledger, cat, sink, dispatcher := testStack()
	createUC := NewCreate(ledger, cat, dispatcher)

	created, err := createUC.Execute(context.Background(), validInput())
	require.NoError(t, err)
	waitKind(t, sink, notify.KindBookingCreated)

	view := offerFor(t, ledger, cat, dispatcher, created.ID)

	assert.Equal(t, string(domain.StatusRescheduleOffered), view.Status)
	require.NotNil(t, view.ProposedDate)
	assert.Equal(t, "2026-09-02", *view.ProposedDate)
	require.NotNil(t, view.ProposedEndTime)
	assert.Equal(t, "16:00", *view.ProposedEndTime)
	waitKind(t, sink, notify.KindRescheduleOffered)

	// No double offers.
	offerUC := NewOfferReschedule(ledger, cat, dispatcher)
	_, err = offerUC.Execute(context.Background(), OfferRescheduleInput{
		AppointmentID: created.ID,
		ProposedDate:  "2026-09-03",
		ProposedStart: "09:00",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestAcceptReschedule(t *testing.T) {
	ledger, cat, _, dispatcher := testStack()
	createUC := NewCreate(ledger, cat, dispatcher)
	acceptUC := NewAcceptReschedule(ledger, dispatcher)

	created, err := createUC.Execute(context.Background(), validInput())
	require.NoError(t, err)

	offerFor(t, ledger, cat, dispatcher, created.ID)

	moved, err := acceptUC.Execute(context.Background(), created.ID)
	require.NoError(t, err)

	assert.NotEqual(t, created.ID, moved.ID)
	assert.Equal(t, string(domain.StatusConfirmed), moved.Status)
	assert.Equal(t, "2026-09-02", moved.Date)
	assert.Equal(t, "15:00", moved.StartTime)
	assert.Equal(t, "16:00", moved.EndTime)
	assert.Equal(t, created.ClientID, moved.ClientID)

	old, err := ledger.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusRescheduled), old.Status)

	// The original slot no longer occupies the calendar.
	slots, err := ledger.ListActiveOnDate(context.Background(), 1, created.Date)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAcceptRescheduleSlotTakenMeanwhile(t *testing.T) {
	ledger, cat, _, dispatcher := testStack()
	createUC := NewCreate(ledger, cat, dispatcher)
	acceptUC := NewAcceptReschedule(ledger, dispatcher)

	created, err := createUC.Execute(context.Background(), validInput())
	require.NoError(t, err)
	offerFor(t, ledger, cat, dispatcher, created.ID)

	// The proposed slot is not reserved while the offer is open:
	// somebody else books it.
	in := validInput()
	in.Date = "2026-09-02"
	in.Start = "15:00"
	_, err = createUC.Execute(context.Background(), in)
	require.NoError(t, err)

	_, err = acceptUC.Execute(context.Background(), created.ID)
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))

	// The offer stays open and can still be declined.
	view, err := ledger.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusRescheduleOffered), view.Status)
}

func TestDeclineRescheduleRestoresPriorStatus(t *testing.T) {
	ledger, cat, _, dispatcher := testStack()
	createUC := NewCreate(ledger, cat, dispatcher)
	setUC := NewSetStatus(ledger, dispatcher)
	declineUC := NewDeclineReschedule(ledger, dispatcher)

	tests := []struct {
		name    string
		prepare func(id uint)
		want    domain.Status
	}{
		{"pending stays pending", func(uint) {}, domain.StatusPending},
		{
			"confirmed returns to confirmed",
			func(id uint) {
				_, err := setUC.Execute(context.Background(), id, domain.StatusConfirmed)
				require.NoError(t, err)
			},
			domain.StatusConfirmed,
		},
	}

	start := []string{"10:00", "12:00"}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			in.Start = start[i]
			created, err := createUC.Execute(context.Background(), in)
			require.NoError(t, err)

			tt.prepare(created.ID)
			offerFor(t, ledger, cat, dispatcher, created.ID)

			view, err := declineUC.Execute(context.Background(), created.ID)
			require.NoError(t, err)

			assert.Equal(t, string(tt.want), view.Status)
			assert.Nil(t, view.ProposedDate)
			assert.Nil(t, view.ProposedStartTime)
			assert.Nil(t, view.ProposedEndTime)
		})
	}
}

func TestResolveRescheduleRequiresOpenOffer(t *testing.T) {
	ledger, cat, _, dispatcher := testStack()
	createUC := NewCreate(ledger, cat, dispatcher)
	acceptUC := NewAcceptReschedule(ledger, dispatcher)
	declineUC := NewDeclineReschedule(ledger, dispatcher)

	created, err := createUC.Execute(context.Background(), validInput())
	require.NoError(t, err)

	_, err = acceptUC.Execute(context.Background(), created.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = declineUC.Execute(context.Background(), created.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = acceptUC.Execute(context.Background(), 999)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}
