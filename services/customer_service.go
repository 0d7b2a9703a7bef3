package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lodge-backend/models"

	"gorm.io/gorm"
)

type CustomerService struct {
	DB *gorm.DB
}

// NewCustomerService is the constructor used for dependency injection.
func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{DB: db}
}

// CustomerSummary is a customer with derived booking counters.
type CustomerSummary struct {
	models.Customer
	TotalReservations int  `json:"total_reservations"`
	IsRegularGuest    bool `json:"is_regular_guest"`
}

// List returns customers, newest first. search matches name, email, phone or ID number.
func (s *CustomerService) List(ctx context.Context, search string) ([]CustomerSummary, error) {
	q := s.DB.WithContext(ctx).Preload("Reservations").Order("created_at DESC")
	if term := strings.TrimSpace(search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR phone_number LIKE ? OR LOWER(id_passport_number) LIKE ?",
			like, like, like, like)
	}
	var customers []models.Customer
	if err := q.Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	out := make([]CustomerSummary, 0, len(customers))
	for i := range customers {
		out = append(out, summarize(customers[i]))
	}
	return out, nil
}

// Get loads one customer with their reservations.
func (s *CustomerService) Get(ctx context.Context, id uint) (CustomerSummary, error) {
	var c models.Customer
	err := s.DB.WithContext(ctx).
		Preload("Reservations", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Reservations.RoomType").
		First(&c, id).Error
	if err != nil {
		return CustomerSummary{}, lookupErr("Customer", err)
	}
	return summarize(c), nil
}

func summarize(c models.Customer) CustomerSummary {
	return CustomerSummary{
		Customer:          c,
		TotalReservations: len(c.Reservations),
		IsRegularGuest:    c.IsRegularGuest(),
	}
}

// upsertCustomerByEmail loads the customer with this email, or starts a new one,
// lets apply fill in fields, and saves. created tells apply which case it is in.
func upsertCustomerByEmail(tx *gorm.DB, email string, apply func(c *models.Customer, created bool)) (models.Customer, error) {
	email = strings.TrimSpace(email)
	var c models.Customer
	err := tx.Where("email = ?", email).First(&c).Error
	created := false
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c = models.Customer{Email: email}
		created = true
	case err != nil:
		return models.Customer{}, fmt.Errorf("failed to load customer: %w", err)
	}

	apply(&c, created)

	if created {
		err = tx.Omit("Reservations").Create(&c).Error
	} else {
		err = tx.Omit("Reservations").Save(&c).Error
	}
	if err != nil {
		if isDuplicateKey(err) {
			return models.Customer{}, guard("A customer with ID/passport number %s already exists", c.IDPassportNumber)
		}
		return models.Customer{}, fmt.Errorf("failed to save customer: %w", err)
	}
	return c, nil
}
