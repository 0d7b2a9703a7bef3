package pdf

import (
	"bytes"
	"fmt"
	"time"

	"lodge-backend/utils"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"
)

// SlipData is what a guest sees on the booking slip.
type SlipData struct {
	LodgeName    string
	BookingID    string
	CustomerName string
	PhoneNumber  string
	RoomType     string
	RoomName     string
	CheckIn      time.Time
	CheckOut     time.Time
	Nights       int
	Guests       int
	Status       string
	TotalAmount  decimal.Decimal
}

// QRCodePNG encodes text with medium error correction.
func QRCodePNG(text string, size int) ([]byte, error) {
	qr, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	png, err := qr.PNG(size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR to PNG: %w", err)
	}
	return png, nil
}

// BookingSlip renders an A5 slip with a QR code of the booking id on top.
func BookingSlip(data SlipData) ([]byte, error) {
	qr, err := QRCodePNG(data.BookingID, 256)
	if err != nil {
		return nil, err
	}

	doc := gofpdf.New("P", "mm", "A5", "")
	doc.SetTitle("Booking "+data.BookingID, true)
	doc.AddPage()

	doc.SetFont("Arial", "B", 16)
	doc.CellFormat(0, 10, data.LodgeName, "", 1, "C", false, 0, "")
	doc.SetFont("Arial", "", 10)
	doc.CellFormat(0, 6, "Booking confirmation slip", "", 1, "C", false, 0, "")
	doc.Ln(2)

	imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	imgName := "qr_" + data.BookingID
	doc.RegisterImageOptionsReader(imgName, imgOpts, bytes.NewReader(qr))
	pageW, _ := doc.GetPageSize()
	size := 50.0
	doc.ImageOptions(imgName, (pageW-size)/2, doc.GetY(), size, size, false, imgOpts, 0, "")
	doc.Ln(size + 2)

	doc.SetFont("Arial", "B", 20)
	doc.CellFormat(0, 10, data.BookingID, "", 1, "C", false, 0, "")
	doc.Ln(4)

	room := data.RoomType
	if data.RoomName != "" {
		room = fmt.Sprintf("%s (%s)", data.RoomType, data.RoomName)
	}
	rows := [][2]string{
		{"Guest", data.CustomerName},
		{"Phone", data.PhoneNumber},
		{"Room", room},
		{"Check-in", utils.FormatDate(data.CheckIn)},
		{"Check-out", utils.FormatDate(data.CheckOut)},
		{"Nights", fmt.Sprintf("%d", data.Nights)},
		{"Guests", fmt.Sprintf("%d", data.Guests)},
		{"Status", data.Status},
		{"Total", money(data.TotalAmount)},
	}
	for _, r := range rows {
		doc.SetFont("Arial", "", 11)
		doc.SetX(20)
		doc.CellFormat(35, 7, r[0]+":", "", 0, "L", false, 0, "")
		doc.SetFont("Arial", "B", 11)
		doc.CellFormat(0, 7, r[1], "", 1, "L", false, 0, "")
	}

	doc.Ln(6)
	doc.SetFont("Arial", "I", 9)
	doc.SetTextColor(100, 100, 100)
	doc.MultiCell(0, 5, "Present this slip (printed or on your phone) at the front desk.\nThe QR code carries your booking number.", "", "C", false)

	return output(doc)
}

func output(doc *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2) + " TZS"
}
