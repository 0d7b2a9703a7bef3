package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"lodge-backend/models"

	"gorm.io/gorm"
)

// SMSConfig holds the Webline gateway settings.
type SMSConfig struct {
	APIURL     string
	Token      string
	SenderID   string
	AdminPhone string
	LodgeName  string
	Timeout    time.Duration
}

func (c SMSConfig) configured() bool {
	return c.APIURL != "" && c.Token != "" && c.AdminPhone != ""
}

// SMSNotifier sends the admin "new booking" SMS. Sending is fire-and-forget:
// NotifyNewBooking returns at once and failures end up in the log and in
// the sms_notifications table, never with the caller.
type SMSNotifier struct {
	DB     *gorm.DB
	Config SMSConfig
	Client *http.Client

	wg sync.WaitGroup
}

func NewSMSNotifier(db *gorm.DB, cfg SMSConfig) *SMSNotifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &SMSNotifier{
		DB:     db,
		Config: cfg,
		Client: &http.Client{Timeout: cfg.Timeout},
	}
}

type smsRequest struct {
	Recipient string `json:"recipient"`
	SenderID  string `json:"sender_id"`
	Message   string `json:"message"`
}

// Send posts one SMS to the gateway and waits for the answer.
func (n *SMSNotifier) Send(ctx context.Context, recipient, message string) error {
	body, err := json.Marshal(smsRequest{
		Recipient: recipient,
		SenderID:  n.Config.SenderID,
		Message:   message,
	})
	if err != nil {
		return fmt.Errorf("encode sms: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.Config.APIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.Config.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := n.Client.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms gateway error: %d %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// NewBookingMessage is the Kiswahili admin notice for a new booking.
func NewBookingMessage(lodgeName string, r *models.Reservation) string {
	if lodgeName == "" {
		lodgeName = "Kili Haven Lodge"
	}
	var b strings.Builder
	b.WriteString(strings.ToUpper(lodgeName) + "\n")
	b.WriteString("TAARIFA: Mgeni mpya amefanya uhifadhi wa chumba.\n")
	fmt.Fprintf(&b, "Jina: %s\n", r.Customer.FullName)
	fmt.Fprintf(&b, "Namba ya simu: %s\n", r.Customer.PhoneNumber)
	fmt.Fprintf(&b, "Chumba: %s\n", r.RoomType.Name)
	fmt.Fprintf(&b, "Tarehe ya kuingia: %s\n", r.ArrivalDate().Format("02/01/2006"))
	fmt.Fprintf(&b, "Tarehe ya kutoka: %s\n", r.DepartureDate().Format("02/01/2006"))
	fmt.Fprintf(&b, "Nambari ya uhifadhi: %s\n", r.BookingID)
	fmt.Fprintf(&b, "Asante kwa kuchagua %s!", lodgeName)
	return b.String()
}

// NotifyNewBooking records the SMS and sends it in the background.
// Reservation must have Customer and RoomType loaded.
func (n *SMSNotifier) NotifyNewBooking(r *models.Reservation) {
	if n == nil {
		return
	}
	message := NewBookingMessage(n.Config.LodgeName, r)

	if !n.Config.configured() {
		log.Printf("[MOCK SMS] to:%s booking:%s\n%s", n.Config.AdminPhone, r.BookingID, message)
		return
	}

	record := models.SMSNotification{
		BookingID: r.BookingID,
		Recipient: n.Config.AdminPhone,
		Message:   message,
		Status:    models.SMSStatusPending,
	}
	if err := n.DB.Create(&record).Error; err != nil {
		log.Printf("⚠️  failed to record sms for %s: %v", r.BookingID, err)
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), n.Config.Timeout)
		defer cancel()

		err := n.Send(ctx, record.Recipient, record.Message)
		updates := map[string]interface{}{"status": models.SMSStatusSent}
		if err != nil {
			log.Printf("❌ SMS notification failed for %s: %v", r.BookingID, err)
			updates = map[string]interface{}{"status": models.SMSStatusFailed, "error": err.Error()}
		} else {
			updates["sent_at"] = time.Now().UTC()
			log.Printf("📨 SMS sent to %s (booking %s)", record.Recipient, r.BookingID)
		}
		if record.ID != 0 {
			if uerr := n.DB.Model(&models.SMSNotification{}).Where("id = ?", record.ID).Updates(updates).Error; uerr != nil {
				log.Printf("⚠️  failed to update sms status for %s: %v", r.BookingID, uerr)
			}
		}
	}()
}

// Wait blocks until in-flight sends finish. Used on shutdown and in tests.
func (n *SMSNotifier) Wait() {
	if n != nil {
		n.wg.Wait()
	}
}
