package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"lodge-backend/models"

	"github.com/nats-io/nats.go"
)

const ReservationsSubject = "lodge.reservations"

const (
	EventReservationCreated    = "reservation.created"
	EventReservationConfirmed  = "reservation.confirmed"
	EventReservationCheckedIn  = "reservation.checked_in"
	EventReservationCheckedOut = "reservation.checked_out"
	EventReservationCancelled  = "reservation.cancelled"
	EventReservationPurged     = "reservation.purged"
)

// ReservationEvent is the JSON body published for every lifecycle change.
type ReservationEvent struct {
	EventType     string    `json:"event_type"`
	OccurredAt    time.Time `json:"occurred_at"`
	ReservationID uint      `json:"reservation_id"`
	BookingID     string    `json:"booking_id"`
	Status        string    `json:"status"`
	RoomTypeID    uint      `json:"room_type_id"`
	RoomID        *uint     `json:"room_id,omitempty"`
	CheckInDate   string    `json:"check_in_date"`
	CheckOutDate  string    `json:"check_out_date"`
	TotalAmount   string    `json:"total_amount"`
}

func newReservationEvent(eventType string, r *models.Reservation, at time.Time) ReservationEvent {
	return ReservationEvent{
		EventType:     eventType,
		OccurredAt:    at,
		ReservationID: r.ID,
		BookingID:     r.BookingID,
		Status:        string(r.Status),
		RoomTypeID:    r.RoomTypeID,
		RoomID:        r.RoomID,
		CheckInDate:   r.ArrivalDate().Format("2006-01-02"),
		CheckOutDate:  r.DepartureDate().Format("2006-01-02"),
		TotalAmount:   r.TotalAmount.StringFixed(2),
	}
}

// Publisher sends raw messages to a subject.
type Publisher interface {
	Publish(ctx context.Context, subject string, msg []byte) error
	Close() error
}

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("lodge-backend"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, msg []byte) error {
	return p.conn.Publish(subject, msg)
}

func (p *NATSPublisher) Close() error {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return err
	}
	return nil
}

// NoopPublisher is used when NATS_URL is not set.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, subject string, msg []byte) error { return nil }
func (NoopPublisher) Close() error                                                { return nil }

// EventEmitter publishes reservation events; failures are logged only.
type EventEmitter struct {
	Publisher Publisher
	Subject   string
}

func NewEventEmitter(p Publisher) *EventEmitter {
	if p == nil {
		p = NoopPublisher{}
	}
	return &EventEmitter{Publisher: p, Subject: ReservationsSubject}
}

func (e *EventEmitter) Emit(ctx context.Context, eventType string, r *models.Reservation, at time.Time) {
	if e == nil || e.Publisher == nil {
		return
	}
	body, err := json.Marshal(newReservationEvent(eventType, r, at))
	if err != nil {
		log.Printf("⚠️  event %s for %s: marshal failed: %v", eventType, r.BookingID, err)
		return
	}
	if err := e.Publisher.Publish(ctx, e.Subject, body); err != nil {
		log.Printf("⚠️  event %s for %s: publish failed: %v", eventType, r.BookingID, err)
	}
}
