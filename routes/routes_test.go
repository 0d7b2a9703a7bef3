package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lodge-backend/config"
	"lodge-backend/controllers"
	"lodge-backend/middleware"
	"lodge-backend/models"
	"lodge-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type testAPI struct {
	router *gin.Engine
	db     *gorm.DB
	rooms  map[string]uint
	types  map[string]uint
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := services.FixedClock{At: time.Date(2025, 2, 15, 10, 0, 0, 0, time.UTC)}
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc:        func() time.Time { return clock.Now() },
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	require.NoError(t, config.SeedDatabase(db))

	uploads := t.TempDir()
	reservations := services.NewReservationService(db, clock, services.NewPhotoStore(uploads), nil, services.NewEventEmitter(nil))
	roomSvc := services.NewRoomService(db, clock)
	reports, err := services.NewReportService(db, clock)
	require.NoError(t, err)

	router := SetupRouter(Handlers{
		Bookings:     controllers.NewBookingController(reservations, "Kili Lodge"),
		Reservations: controllers.NewReservationController(reservations, roomSvc),
		RoomTypes:    controllers.NewRoomTypeController(services.NewRoomTypeService(db, clock)),
		Rooms:        controllers.NewRoomController(roomSvc),
		Customers:    controllers.NewCustomerController(services.NewCustomerService(db)),
		Reports:      controllers.NewReportController(reports, "Kili Lodge"),
	}, []string{"*"}, uploads)

	api := &testAPI{router: router, db: db, rooms: map[string]uint{}, types: map[string]uint{}}
	var rooms []models.Room
	require.NoError(t, db.Find(&rooms).Error)
	for _, r := range rooms {
		api.rooms[r.RoomName] = r.ID
	}
	var types []models.RoomType
	require.NoError(t, db.Find(&types).Error)
	for _, rt := range types {
		api.types[rt.Name] = rt.ID
	}
	return api
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

type created struct {
	BookingID     string          `json:"booking_id"`
	ReservationID uint            `json:"reservation_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CustomerName  string          `json:"customer_name"`
}

func (a *testAPI) createBooking(t *testing.T, body gin.H) created {
	t.Helper()
	w, env := a.do(t, http.MethodPost, "/api/bookings", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var out created
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func TestHealthAndRequestID(t *testing.T) {
	api := newTestAPI(t)

	w, _ := api.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(middleware.RequestIDHeader))
}

func TestPublicBookingFlow(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.do(t, http.MethodGet, "/api/room-types", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var types []services.RoomTypeView
	require.NoError(t, json.Unmarshal(env.Data, &types))
	assert.Len(t, types, 3)

	b := api.createBooking(t, gin.H{
		"full_name":        "Asha Mushi",
		"email":            "asha@example.com",
		"phone_number":     "0712345678",
		"room_type_id":     api.types["Standard"],
		"check_in_date":    "2025-03-01",
		"check_out_date":   "2025-03-04",
		"number_of_guests": 2,
	})
	assert.Len(t, b.BookingID, 6)
	assert.True(t, b.TotalAmount.Equal(decimal.NewFromInt(150000)), "got %s", b.TotalAmount)
	assert.Equal(t, "Asha Mushi", b.CustomerName)

	w, env = api.do(t, http.MethodGet, "/api/bookings/"+strings.ToLower(b.BookingID)+"/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var status map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.Equal(t, "pending", status["status"])
	assert.Equal(t, models.StatusMessages[models.StatusPending], status["status_message"])
	assert.Equal(t, "2025-03-01", status["check_in_date"])

	w, _ = api.do(t, http.MethodGet, "/api/bookings/"+b.BookingID+"/slip.pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w, env = api.do(t, http.MethodPost, "/api/bookings/"+b.BookingID+"/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, env.Message, "has been cancelled")

	w, env = api.do(t, http.MethodPost, "/api/bookings/"+b.BookingID+"/cancel", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cannot cancel reservation. Current status: cancelled", env.Error)
	assert.False(t, env.Success)
}

func TestLegacyBookingMessage(t *testing.T) {
	api := newTestAPI(t)

	b := api.createBooking(t, gin.H{
		"type":  "booking",
		"name":  "Juma Ali",
		"email": "juma@example.com",
		"phone": "0766000000",
		"message": "Check-in: 2025-03-10\nCheck-out: 2025-03-12\n" +
			"Room Type: Deluxe TZS 80,000/night\nNumber of Guests: 3\nSpecial Requests: none",
	})
	assert.True(t, b.TotalAmount.Equal(decimal.NewFromInt(160000)), "got %s", b.TotalAmount)
	assert.Equal(t, "Juma Ali", b.CustomerName)

	var res models.Reservation
	require.NoError(t, api.db.Where("booking_id = ?", b.BookingID).First(&res).Error)
	assert.Equal(t, 3, res.NumberOfGuests)
	assert.Equal(t, api.types["Deluxe"], res.RoomTypeID)
	assert.Empty(t, res.SpecialRequests)
}

func TestErrorMapping(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		code   int
		errMsg string
	}{
		{"unknown booking", http.MethodGet, "/api/bookings/ZZZZZZ", nil, http.StatusNotFound, "Reservation not found"},
		{"bad id", http.MethodGet, "/api/frontdesk/reservations/abc", nil, http.StatusBadRequest, "invalid id"},
		{"missing email", http.MethodPost, "/api/bookings", gin.H{"full_name": "X"}, http.StatusBadRequest, ""},
		{"bad date", http.MethodPost, "/api/bookings", gin.H{
			"full_name": "X", "email": "x@example.com", "phone_number": "1",
			"room_type_id": 1, "check_in_date": "01-03-2025x", "check_out_date": "2025-03-02",
		}, http.StatusBadRequest, "Invalid check_in_date: expected YYYY-MM-DD"},
		{"reversed dates", http.MethodPost, "/api/bookings", gin.H{
			"full_name": "X", "email": "x@example.com", "phone_number": "1",
			"room_type_id": 1, "check_in_date": "2025-03-05", "check_out_date": "2025-03-02",
		}, http.StatusBadRequest, "check_out_date cannot be before check_in_date"},
		{"confirm without room", http.MethodPost, "/api/frontdesk/reservations/1/confirm", gin.H{}, http.StatusBadRequest, "Room ID is required"},
		{"bad month", http.MethodGet, "/api/manager/reports/sales?month=13&year=2025", nil, http.StatusBadRequest, ""},
		{"unknown room type", http.MethodGet, "/api/manager/room-types/999", nil, http.StatusNotFound, "Room type not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := api.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
			assert.False(t, env.Success)
			if tt.errMsg != "" {
				assert.Equal(t, tt.errMsg, env.Error)
			}
		})
	}
}

func TestFrontDeskFlow(t *testing.T) {
	api := newTestAPI(t)

	b := api.createBooking(t, gin.H{
		"full_name":      "Neema",
		"email":          "neema@example.com",
		"phone_number":   "0755000000",
		"room_type":      "standard",
		"check_in_date":  "2025-02-15",
		"check_out_date": "2025-02-17",
	})
	id := b.ReservationID
	path := fmt.Sprintf("/api/frontdesk/reservations/%d", id)

	w, env := api.do(t, http.MethodGet, path+"/available-rooms", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, string(env.Data), `"S1"`)

	w, env = api.do(t, http.MethodPost, path+"/confirm", gin.H{"room_id": api.rooms["D1"]})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "D1 does not belong to the reserved room type", env.Error)

	w, _ = api.do(t, http.MethodPost, path+"/confirm", gin.H{"room_id": api.rooms["S1"]})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = api.do(t, http.MethodPost, path+"/checkin", gin.H{
		"id_passport_number": "TZ-99",
		"nationality":        "Tanzania",
		"checked_in_by":      "Mary",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env = api.do(t, http.MethodGet, "/api/manager/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dash services.Dashboard
	require.NoError(t, json.Unmarshal(env.Data, &dash))
	assert.EqualValues(t, 1, dash.CurrentCheckedIn)

	w, env = api.do(t, http.MethodPost, "/api/frontdesk/checkout/"+b.BookingID, gin.H{
		"additional_charges": "10000",
		"payment_method":     "mobile_money",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out models.Reservation
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, models.StatusCheckedOut, out.Status)
	require.NotNil(t, out.CheckOutRecord)
	assert.True(t, out.CheckOutRecord.FinalAmount.Equal(decimal.NewFromInt(110000)))

	w, _ = api.do(t, http.MethodGet, "/api/manager/reports/checkins?month=2&year=2025&format=pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))

	w, env = api.do(t, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, string(env.Data), `"customer_deleted":true`)
}

func TestWalkInEndpoint(t *testing.T) {
	api := newTestAPI(t)

	body := gin.H{
		"email":              "walk@example.com",
		"full_name":          "Walk In",
		"phone_number":       "0711000000",
		"nationality":        "Kenya",
		"id_passport_number": "KE-1",
		"room_id":            api.rooms["F1"],
		"check_in_date":      "2025-02-15",
		"check_out_date":     "2025-02-16",
	}
	w, _ := api.do(t, http.MethodPost, "/api/frontdesk/walk-in", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body["email"] = "other@example.com"
	body["id_passport_number"] = "KE-2"
	w, env := api.do(t, http.MethodPost, "/api/frontdesk/walk-in", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "F1 is not available for the selected dates", env.Error)

	w, env = api.do(t, http.MethodGet, fmt.Sprintf("/api/frontdesk/room-types/%d/rooms", api.types["Family"]), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var grouped services.RoomTypeRooms
	require.NoError(t, json.Unmarshal(env.Data, &grouped))
	require.Len(t, grouped.Rooms, 1)
	assert.Equal(t, "F2", grouped.Rooms[0].RoomName)
}

func TestManagerCatalogEndpoints(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.do(t, http.MethodPost, "/api/manager/room-types", gin.H{
		"name": "Suite", "price_per_day": "200000", "total_rooms": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var rt services.RoomTypeView
	require.NoError(t, json.Unmarshal(env.Data, &rt))
	assert.Equal(t, "Suite", rt.Name)

	w, env = api.do(t, http.MethodPost, "/api/manager/rooms", gin.H{"room_type_id": rt.ID, "room_name": "X1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env = api.do(t, http.MethodPost, "/api/manager/rooms", gin.H{"room_type_id": rt.ID, "room_name": "X1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, `Room "X1" already exists for Suite`, env.Error)

	w, _ = api.do(t, http.MethodPatch, fmt.Sprintf("/api/manager/room-types/%d", rt.ID), gin.H{"is_active": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env = api.do(t, http.MethodGet, "/api/room-types", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, string(env.Data), `"Suite"`)

	w, _ = api.do(t, http.MethodDelete, fmt.Sprintf("/api/manager/room-types/%d", rt.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
