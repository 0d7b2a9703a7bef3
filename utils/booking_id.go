package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

const (
	bookingIDCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	BookingIDLength  = 6
)

// GenerateBookingID returns a random booking reference such as "K7Q2ZD".
// crypto/rand + rand.Int (math/big) keeps every symbol equally likely.
func GenerateBookingID() (string, error) {
	return randomCode(BookingIDLength)
}

func randomCode(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	alphaLen := big.NewInt(int64(len(bookingIDCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(bookingIDCharset[num.Int64()])
	}
	return sb.String(), nil
}

// NormalizeBookingID upper-cases and trims a booking reference typed by a guest.
func NormalizeBookingID(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// IsValidBookingID reports whether s has the booking reference shape.
func IsValidBookingID(s string) bool {
	if len(s) != BookingIDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(bookingIDCharset, rune(s[i])) {
			return false
		}
	}
	return true
}
