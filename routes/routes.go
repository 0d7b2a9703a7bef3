package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"lodge-backend/controllers"
	"lodge-backend/middleware"
)

// Handlers groups the controllers the router needs.
type Handlers struct {
	Bookings     *controllers.BookingController
	Reservations *controllers.ReservationController
	RoomTypes    *controllers.RoomTypeController
	Rooms        *controllers.RoomController
	Customers    *controllers.CustomerController
	Reports      *controllers.ReportController
}

func corsConfig(origins []string) cors.Config {
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}
}

// SetupRouter wires every endpoint. uploadDir is served under /uploads.
func SetupRouter(h Handlers, corsOrigins []string, uploadDir string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())
	r.Use(cors.New(corsConfig(corsOrigins)))
	if uploadDir != "" {
		r.Static("/uploads", uploadDir)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/room-types", h.RoomTypes.PublicList)

		bookings := api.Group("/bookings")
		{
			bookings.POST("", h.Bookings.CreateBooking)
			bookings.GET("/:booking_id", h.Bookings.GetBooking)
			bookings.GET("/:booking_id/status", h.Bookings.GetBookingStatus)
			bookings.GET("/:booking_id/slip.pdf", h.Bookings.Slip)
			bookings.POST("/:booking_id/checkout", h.Bookings.Checkout)
			bookings.POST("/:booking_id/cancel", h.Bookings.Cancel)
		}

		desk := api.Group("/frontdesk")
		{
			desk.GET("/reservations", h.Reservations.List)
			desk.GET("/reservations/:id", h.Reservations.Get)
			desk.DELETE("/reservations/:id", h.Reservations.Purge)
			desk.GET("/reservations/:id/available-rooms", h.Reservations.AvailableRooms)
			desk.POST("/reservations/:id/confirm", h.Reservations.Confirm)
			desk.POST("/reservations/:id/checkin", h.Reservations.CheckIn)
			desk.GET("/bookings/:booking_id", h.Reservations.GetByBookingID)
			desk.POST("/walk-in", h.Reservations.WalkIn)
			desk.POST("/checkout/:booking_id", h.Reservations.Checkout)
			desk.GET("/room-types/:id/rooms", h.Reservations.RoomsForType)
		}

		manager := api.Group("/manager")
		{
			manager.GET("/dashboard", h.Reports.Dashboard)

			roomTypes := manager.Group("/room-types")
			{
				roomTypes.GET("", h.RoomTypes.List)
				roomTypes.GET("/:id", h.RoomTypes.Get)
				roomTypes.POST("", h.RoomTypes.Create)
				roomTypes.PUT("/:id", h.RoomTypes.Update)
				roomTypes.PATCH("/:id", h.RoomTypes.Update)
				roomTypes.DELETE("/:id", h.RoomTypes.Delete)
			}

			rooms := manager.Group("/rooms")
			{
				rooms.GET("", h.Rooms.List)
				rooms.POST("", h.Rooms.Create)
				rooms.PUT("/:id", h.Rooms.Update)
				rooms.PATCH("/:id", h.Rooms.Update)
				rooms.DELETE("/:id", h.Rooms.Delete)
			}

			customers := manager.Group("/customers")
			{
				customers.GET("", h.Customers.List)
				customers.GET("/:id", h.Customers.Get)
			}

			reports := manager.Group("/reports")
			{
				reports.GET("/sales", h.Reports.Sales)
				reports.GET("/checkins", h.Reports.Checkins)
				reports.GET("/reservations", h.Reports.Reservations)
				reports.GET("/completed", h.Reports.Completed)
			}
		}
	}

	return r
}
