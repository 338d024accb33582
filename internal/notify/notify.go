package notify

import (
	"log"

	"github.com/google/uuid"

	"github.com/afaeffea/salon-bot-tg/internal/domain/booking"
)

type Kind string

const (
	KindBookingCreated     Kind = "booking_created"
	KindConfirmed          Kind = "confirmed"
	KindDeclined           Kind = "declined"
	KindCancelled          Kind = "cancelled"
	KindRescheduleOffered  Kind = "reschedule_offered"
	KindRescheduleAccepted Kind = "reschedule_accepted"
	KindRescheduleDeclined Kind = "reschedule_declined"
)

// Event describes one appointment state change. Replaced carries the
// superseded appointment on reschedule_accepted, nil otherwise.
type Event struct {
	ID          string
	Kind        Kind
	Appointment *booking.View
	Replaced    *booking.View
}

// Notifier is the delivery collaborator. Message formatting and the
// transport (chat messages, etc.) live outside this module.
type Notifier interface {
	Notify(ev Event)
}

// LogNotifier is the default sink when no delivery channel is wired.
type LogNotifier struct{}

func (LogNotifier) Notify(ev Event) {
	log.Printf("notify %s: appointment #%d (%s)", ev.Kind, ev.Appointment.ID, ev.Appointment.Status)
}

// Dispatcher decouples request handling from delivery: events are queued
// and handed to the Notifier from a single worker goroutine. A full
// queue drops the event rather than stalling a request.
type Dispatcher struct {
	notifier Notifier
	queue    chan Event
}

func NewDispatcher(notifier Notifier) *Dispatcher {
	d := &Dispatcher{
		notifier: notifier,
		queue:    make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		d.notifier.Notify(ev)
	}
}

func (d *Dispatcher) Dispatch(kind Kind, ap *booking.View, replaced *booking.View) {
	ev := Event{
		ID:          uuid.NewString(),
		Kind:        kind,
		Appointment: ap,
		Replaced:    replaced,
	}

	select {
	case d.queue <- ev:
	default:
		log.Println("notify queue full, dropping event")
	}
}
