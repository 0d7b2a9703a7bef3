package pdf

import (
	"fmt"

	"lodge-backend/services"
	"lodge-backend/utils"

	"github.com/jung-kurt/gofpdf"
)

type column struct {
	title string
	width float64
	align string
}

type report struct {
	doc *gofpdf.Fpdf
}

func newReport(lodgeName, title, subtitle string) *report {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(title, true)
	doc.SetMargins(15, 15, 15)
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()

	doc.SetFont("Arial", "B", 16)
	doc.CellFormat(0, 9, lodgeName, "", 1, "C", false, 0, "")
	doc.SetFont("Arial", "B", 13)
	doc.CellFormat(0, 8, title, "", 1, "C", false, 0, "")
	doc.SetFont("Arial", "", 10)
	doc.CellFormat(0, 6, subtitle, "", 1, "C", false, 0, "")
	doc.Ln(4)
	return &report{doc: doc}
}

func (r *report) heading(text string) {
	r.doc.Ln(3)
	r.doc.SetFont("Arial", "B", 12)
	r.doc.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
}

func (r *report) summary(pairs [][2]string) {
	for _, p := range pairs {
		r.doc.SetFont("Arial", "", 10)
		r.doc.CellFormat(60, 6, p[0], "", 0, "L", false, 0, "")
		r.doc.SetFont("Arial", "B", 10)
		r.doc.CellFormat(0, 6, p[1], "", 1, "L", false, 0, "")
	}
}

func (r *report) table(cols []column, rows [][]string) {
	r.doc.SetFont("Arial", "B", 9)
	r.doc.SetFillColor(230, 230, 230)
	for _, c := range cols {
		r.doc.CellFormat(c.width, 7, c.title, "1", 0, "C", true, 0, "")
	}
	r.doc.Ln(-1)

	r.doc.SetFont("Arial", "", 8)
	if len(rows) == 0 {
		total := 0.0
		for _, c := range cols {
			total += c.width
		}
		r.doc.CellFormat(total, 6, "No records", "1", 1, "C", false, 0, "")
		return
	}
	for _, row := range rows {
		for i, c := range cols {
			r.doc.CellFormat(c.width, 6, row[i], "1", 0, c.align, false, 0, "")
		}
		r.doc.Ln(-1)
	}
}

func (r *report) footer(generated string) {
	r.doc.Ln(6)
	r.doc.SetFont("Arial", "I", 8)
	r.doc.SetTextColor(100, 100, 100)
	r.doc.CellFormat(0, 5, "Generated on "+generated, "", 1, "R", false, 0, "")
}

func stayTable(r *report, rows []services.StayRow) {
	cols := []column{
		{"Booking", 20, "C"}, {"Guest", 40, "L"}, {"Room type", 30, "L"}, {"Room", 20, "C"},
		{"Check-in", 22, "C"}, {"Check-out", 22, "C"}, {"Amount", 26, "R"},
	}
	data := make([][]string, 0, len(rows))
	for _, s := range rows {
		data = append(data, []string{
			s.BookingID, truncate(s.CustomerName, 24), truncate(s.RoomType, 18), s.RoomName,
			utils.FormatDate(s.CheckInDate), utils.FormatDate(s.CheckOutDate), s.TotalAmount.StringFixed(2),
		})
	}
	r.table(cols, data)
}

// SalesReport renders the monthly sales report.
func SalesReport(lodgeName string, rep *services.SalesReport) ([]byte, error) {
	r := newReport(lodgeName, "Sales Report", rep.Label())
	r.summary([][2]string{
		{"Monthly sales", money(rep.MonthlySales)},
		{fmt.Sprintf("Sales for %d", rep.Year), money(rep.YearlySales)},
		{"Bookings", fmt.Sprintf("%d", rep.TotalBookings)},
	})

	r.heading("Revenue by room type")
	rows := make([][]string, 0, len(rep.RoomTypeSales))
	for _, t := range rep.RoomTypeSales {
		rows = append(rows, []string{
			truncate(t.RoomTypeName, 30), t.PricePerDay.StringFixed(2), fmt.Sprintf("%d", t.BookingCount),
			t.TotalRevenue.StringFixed(2), t.AverageRevenue.StringFixed(2),
		})
	}
	r.table([]column{
		{"Room type", 60, "L"}, {"Price/day", 30, "R"}, {"Bookings", 20, "C"},
		{"Revenue", 35, "R"}, {"Average", 35, "R"},
	}, rows)

	r.heading("Top rooms")
	rows = rows[:0]
	for _, t := range rep.TopRooms {
		rows = append(rows, []string{
			t.RoomName, truncate(t.RoomType, 30), fmt.Sprintf("%d", t.Bookings),
			t.Revenue.StringFixed(2), fmt.Sprintf("%.1f%%", t.OccupancyRate),
		})
	}
	r.table([]column{
		{"Room", 30, "C"}, {"Room type", 55, "L"}, {"Bookings", 20, "C"},
		{"Revenue", 40, "R"}, {"Occupancy", 35, "C"},
	}, rows)

	r.heading("Daily breakdown")
	rows = rows[:0]
	for _, d := range rep.DailySales {
		if d.Bookings == 0 {
			continue
		}
		rows = append(rows, []string{d.Date, fmt.Sprintf("%d", d.Bookings), d.Revenue.StringFixed(2), d.AvgPerBooking.StringFixed(2)})
	}
	r.table([]column{{"Date", 45, "C"}, {"Bookings", 30, "C"}, {"Revenue", 50, "R"}, {"Average", 55, "R"}}, rows)

	r.footer(rep.GeneratedDate)
	return output(r.doc)
}

// CheckinReport renders arrivals and departures for the month.
func CheckinReport(lodgeName string, rep *services.CheckinReport) ([]byte, error) {
	r := newReport(lodgeName, "Check-in / Check-out Report", rep.Label())
	r.summary([][2]string{
		{"Check-ins", fmt.Sprintf("%d", rep.TotalCheckins)},
		{"Check-outs", fmt.Sprintf("%d", rep.TotalCheckouts)},
		{"Currently checked in", fmt.Sprintf("%d", rep.CurrentCheckedIn)},
		{"Revenue", money(rep.TotalRevenue)},
	})
	r.heading("Check-ins")
	stayTable(r, rep.Checkins)
	r.heading("Check-outs")
	stayTable(r, rep.Checkouts)
	r.footer(rep.GeneratedDate)
	return output(r.doc)
}

// ReservationsReport renders the monthly reservations report.
func ReservationsReport(lodgeName string, rep *services.ReservationsReport) ([]byte, error) {
	r := newReport(lodgeName, "Reservations Report", rep.Label())
	r.summary([][2]string{
		{"Reservations", fmt.Sprintf("%d", rep.TotalReservations)},
		{"Pending", fmt.Sprintf("%d", rep.PendingCount)},
		{"Confirmed", fmt.Sprintf("%d", rep.ConfirmedCount)},
		{"Cancelled", fmt.Sprintf("%d", rep.CancelledCount)},
	})

	r.heading("By status")
	rows := make([][]string, 0, len(rep.ByStatus))
	for _, s := range rep.ByStatus {
		rows = append(rows, []string{s.Status, fmt.Sprintf("%d", s.Count), s.TotalRevenue.StringFixed(2), fmt.Sprintf("%.1f%%", s.Percentage)})
	}
	r.table([]column{{"Status", 50, "L"}, {"Count", 30, "C"}, {"Amount", 50, "R"}, {"Share", 50, "C"}}, rows)

	r.heading("Weekly trend")
	rows = rows[:0]
	for _, w := range rep.WeeklyTrends {
		rows = append(rows, []string{
			w.WeekLabel, fmt.Sprintf("%d", w.NewReservations), fmt.Sprintf("%d", w.CheckIns),
			fmt.Sprintf("%d", w.CheckOuts), w.WeeklyRevenue.StringFixed(2),
		})
	}
	r.table([]column{{"Week", 55, "L"}, {"New", 25, "C"}, {"Check-ins", 30, "C"}, {"Check-outs", 30, "C"}, {"Revenue", 40, "R"}}, rows)

	r.heading("Reservations")
	stayTable(r, rep.Reservations)
	r.footer(rep.GeneratedDate)
	return output(r.doc)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
