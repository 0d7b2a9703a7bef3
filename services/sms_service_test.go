package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"lodge-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type smsGateway struct {
	mu       sync.Mutex
	requests []smsRequest
	auth     []string
	status   int
}

func (g *smsGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body smsRequest
	_ = json.NewDecoder(r.Body).Decode(&body)
	g.mu.Lock()
	g.requests = append(g.requests, body)
	g.auth = append(g.auth, r.Header.Get("Authorization"))
	status := g.status
	g.mu.Unlock()
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"ok":true}`))
}

func sampleReservation() *models.Reservation {
	r := &models.Reservation{
		BookingID: "AB12CD",
		Customer:  models.Customer{FullName: "Asha Mushi", PhoneNumber: "0712345678"},
		RoomType:  models.RoomType{Name: "Deluxe"},
	}
	r.SetStay(day(2025, 3, 1), day(2025, 3, 4))
	return r
}

func TestNewBookingMessage(t *testing.T) {
	msg := NewBookingMessage("Kili Lodge", sampleReservation())
	lines := strings.Split(msg, "\n")
	assert.Equal(t, "KILI LODGE", lines[0])
	assert.Contains(t, msg, "Jina: Asha Mushi")
	assert.Contains(t, msg, "Namba ya simu: 0712345678")
	assert.Contains(t, msg, "Chumba: Deluxe")
	assert.Contains(t, msg, "Tarehe ya kuingia: 01/03/2025")
	assert.Contains(t, msg, "Tarehe ya kutoka: 04/03/2025")
	assert.Contains(t, msg, "Nambari ya uhifadhi: AB12CD")
	assert.True(t, strings.HasSuffix(msg, "Asante kwa kuchagua Kili Lodge!"))
}

func TestSMSNotifierSends(t *testing.T) {
	db := newTestDB(t, FixedClock{At: day(2025, 2, 15)})
	gw := &smsGateway{status: http.StatusOK}
	srv := httptest.NewServer(gw)
	defer srv.Close()

	n := NewSMSNotifier(db, SMSConfig{
		APIURL:     srv.URL,
		Token:      "secret",
		SenderID:   "KILI",
		AdminPhone: "255700000000",
		LodgeName:  "Kili Lodge",
		Timeout:    5 * time.Second,
	})
	n.NotifyNewBooking(sampleReservation())
	n.Wait()

	gw.mu.Lock()
	require.Len(t, gw.requests, 1)
	assert.Equal(t, "255700000000", gw.requests[0].Recipient)
	assert.Equal(t, "KILI", gw.requests[0].SenderID)
	assert.Equal(t, "Bearer secret", gw.auth[0])
	gw.mu.Unlock()

	var rec models.SMSNotification
	require.NoError(t, db.Where("booking_id = ?", "AB12CD").First(&rec).Error)
	assert.Equal(t, models.SMSStatusSent, rec.Status)
	assert.NotNil(t, rec.SentAt)
}

func TestSMSNotifierRecordsFailure(t *testing.T) {
	db := newTestDB(t, FixedClock{At: day(2025, 2, 15)})
	gw := &smsGateway{status: http.StatusUnauthorized}
	srv := httptest.NewServer(gw)
	defer srv.Close()

	n := NewSMSNotifier(db, SMSConfig{APIURL: srv.URL, Token: "bad", AdminPhone: "255700000000"})
	n.NotifyNewBooking(sampleReservation())
	n.Wait()

	var rec models.SMSNotification
	require.NoError(t, db.Where("booking_id = ?", "AB12CD").First(&rec).Error)
	assert.Equal(t, models.SMSStatusFailed, rec.Status)
	assert.Contains(t, rec.Error, "401")
}

func TestSMSNotifierWithoutGatewayOnlyLogs(t *testing.T) {
	db := newTestDB(t, FixedClock{At: day(2025, 2, 15)})
	n := NewSMSNotifier(db, SMSConfig{AdminPhone: "255700000000"})
	n.NotifyNewBooking(sampleReservation())
	n.Wait()

	var count int64
	require.NoError(t, db.Model(&models.SMSNotification{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSendUnreachableGateway(t *testing.T) {
	n := NewSMSNotifier(nil, SMSConfig{APIURL: "http://127.0.0.1:1", Token: "t", AdminPhone: "1", Timeout: time.Second})
	err := n.Send(context.Background(), "1", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
}
