package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"lodge-backend/models"
	"lodge-backend/pricing"
	"lodge-backend/utils"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportService builds read-only projections for the manager screens and PDFs.
// It runs plain SQL through sqlx on the same pool gorm uses. Only portable SQL
// is used (no YEAR()/MONTH()); periods are half-open timestamp ranges.
type ReportService struct {
	DB    *sqlx.DB
	Clock Clock
}

func NewReportService(gdb *gorm.DB, clock Clock) (*ReportService, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("report service: %w", err)
	}
	return &ReportService{DB: sqlx.NewDb(sqlDB, driverName(gdb)), Clock: clock}, nil
}

// driverName maps the gorm dialect to the name sqlx uses to pick a bind style.
func driverName(gdb *gorm.DB) string {
	switch gdb.Dialector.Name() {
	case "postgres":
		return "postgres"
	case "sqlite":
		return "sqlite3"
	default:
		return "mysql"
	}
}

var (
	stayedStatuses = []string{string(models.StatusCheckedIn), string(models.StatusCheckedOut)}
	monthNames     = []string{"", "January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"}
)

// Period is a calendar month.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// CurrentPeriod is this month according to the clock.
func CurrentPeriod(c Clock) Period {
	now := c.Now()
	return Period{Year: now.Year(), Month: int(now.Month())}
}

func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return guard("month must be between 1 and 12")
	}
	if p.Year < 2000 || p.Year > 2100 {
		return guard("year must be between 2000 and 2100")
	}
	return nil
}

func (p Period) Name() string { return monthNames[p.Month] }

func (p Period) Label() string { return fmt.Sprintf("%s %d", p.Name(), p.Year) }

func (p Period) bounds() (time.Time, time.Time) {
	return utils.MonthRange(p.Year, time.Month(p.Month))
}

// ---------------------------------------------------------------------
// Dashboard
// ---------------------------------------------------------------------

type Dashboard struct {
	Year                int    `json:"year"`
	Month               string `json:"month"`
	TotalRoomTypes      int64  `json:"total_room_types"`
	TotalRooms          int64  `json:"total_rooms"`
	TotalReservations   int64  `json:"total_reservations"`
	TotalCheckins       int64  `json:"total_checkins"`
	YearlyReservations  int64  `json:"yearly_reservations"`
	YearlyCheckins      int64  `json:"yearly_checkins"`
	YearlyPending       int64  `json:"yearly_pending"`
	MonthlyReservations int64  `json:"monthly_reservations"`
	MonthlyCheckins     int64  `json:"monthly_checkins"`
	CurrentCheckedIn    int64  `json:"current_checked_in"`
	TotalCustomers      int64  `json:"total_customers"`
}

func (s *ReportService) count(ctx context.Context, query string, args ...interface{}) (int64, error) {
	q, qargs, err := sqlx.In(query, args...)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := s.DB.GetContext(ctx, &n, s.DB.Rebind(q), qargs...); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *ReportService) Dashboard(ctx context.Context) (Dashboard, error) {
	p := CurrentPeriod(s.Clock)
	yStart, yEnd := utils.YearRange(p.Year)
	mStart, mEnd := p.bounds()
	pending := []string{string(models.StatusPending), string(models.StatusWaitingCheckin)}

	d := Dashboard{Year: p.Year, Month: p.Label()}
	queries := []struct {
		dst   *int64
		query string
		args  []interface{}
	}{
		{&d.TotalRoomTypes, `SELECT COUNT(*) FROM room_types`, nil},
		{&d.TotalRooms, `SELECT COUNT(*) FROM rooms`, nil},
		{&d.TotalCustomers, `SELECT COUNT(*) FROM customers`, nil},
		{&d.TotalReservations, `SELECT COUNT(*) FROM reservations`, nil},
		{&d.TotalCheckins, `SELECT COUNT(*) FROM reservations WHERE status IN (?)`, []interface{}{stayedStatuses}},
		{&d.YearlyReservations, `SELECT COUNT(*) FROM reservations WHERE created_at >= ? AND created_at < ?`, []interface{}{yStart, yEnd}},
		{&d.YearlyCheckins, `SELECT COUNT(*) FROM reservations WHERE status IN (?) AND created_at >= ? AND created_at < ?`, []interface{}{stayedStatuses, yStart, yEnd}},
		{&d.YearlyPending, `SELECT COUNT(*) FROM reservations WHERE status IN (?) AND created_at >= ? AND created_at < ?`, []interface{}{pending, yStart, yEnd}},
		{&d.MonthlyReservations, `SELECT COUNT(*) FROM reservations WHERE created_at >= ? AND created_at < ?`, []interface{}{mStart, mEnd}},
		{&d.MonthlyCheckins, `SELECT COUNT(*) FROM reservations WHERE status IN (?) AND created_at >= ? AND created_at < ?`, []interface{}{stayedStatuses, mStart, mEnd}},
		{&d.CurrentCheckedIn, `SELECT COUNT(*) FROM reservations WHERE status = ?`, []interface{}{string(models.StatusCheckedIn)}},
	}
	for _, q := range queries {
		n, err := s.count(ctx, q.query, q.args...)
		if err != nil {
			return Dashboard{}, fmt.Errorf("dashboard: %w", err)
		}
		*q.dst = n
	}
	return d, nil
}

// ---------------------------------------------------------------------
// Shared row shapes
// ---------------------------------------------------------------------

// StayRow is one reservation line in a report.
type StayRow struct {
	ID           uint            `db:"id" json:"id"`
	BookingID    string          `db:"booking_id" json:"booking_id"`
	CustomerName string          `db:"customer_name" json:"customer_name"`
	RoomTypeID   uint            `db:"room_type_id" json:"room_type_id"`
	RoomType     string          `db:"room_type" json:"room_type"`
	RoomName     string          `db:"room_name" json:"room_name"`
	CheckInDate  time.Time       `db:"check_in_date" json:"check_in_date"`
	CheckOutDate time.Time       `db:"check_out_date" json:"check_out_date"`
	Status       string          `db:"status" json:"status"`
	TotalAmount  decimal.Decimal `db:"total_amount" json:"total_amount"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	Duration     int             `db:"-" json:"duration"`
}

const stayRowSelect = `
SELECT r.id, r.booking_id, c.full_name AS customer_name,
       r.room_type_id, rt.name AS room_type, COALESCE(rm.room_name, '') AS room_name,
       r.check_in_date, r.check_out_date, r.status, r.total_amount, r.created_at
FROM reservations r
JOIN customers c ON c.id = r.customer_id
JOIN room_types rt ON rt.id = r.room_type_id
LEFT JOIN rooms rm ON rm.id = r.room_id
`

func (s *ReportService) stayRows(ctx context.Context, where string, args ...interface{}) ([]StayRow, error) {
	q, qargs, err := sqlx.In(stayRowSelect+"WHERE "+where, args...)
	if err != nil {
		return nil, err
	}
	var rows []StayRow
	if err := s.DB.SelectContext(ctx, &rows, s.DB.Rebind(q), qargs...); err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].CheckInDate = utils.DateOnly(rows[i].CheckInDate)
		rows[i].CheckOutDate = utils.DateOnly(rows[i].CheckOutDate)
		rows[i].Duration = pricing.Nights(rows[i].CheckInDate, rows[i].CheckOutDate)
	}
	return rows, nil
}

func sumAmounts(rows []StayRow) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.TotalAmount)
	}
	return total
}

func average(total decimal.Decimal, n int64) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return total.DivRound(decimal.NewFromInt(n), 2)
}

// ---------------------------------------------------------------------
// Sales
// ---------------------------------------------------------------------

type RoomTypeSales struct {
	RoomTypeID     uint            `db:"room_type_id" json:"room_type_id"`
	RoomTypeName   string          `db:"room_type_name" json:"room_type_name"`
	Description    string          `db:"description" json:"description"`
	PricePerDay    decimal.Decimal `db:"price_per_day" json:"price_per_day"`
	TotalRevenue   decimal.Decimal `db:"total_revenue" json:"total_revenue"`
	BookingCount   int64           `db:"booking_count" json:"booking_count"`
	AverageRevenue decimal.Decimal `db:"-" json:"average_revenue"`
}

type DailySales struct {
	Date          string          `json:"date"`
	Bookings      int             `json:"bookings"`
	Revenue       decimal.Decimal `json:"revenue"`
	AvgPerBooking decimal.Decimal `json:"avg_per_booking"`
}

type RoomSales struct {
	RoomName      string          `json:"room_name"`
	RoomType      string          `json:"room_type"`
	Bookings      int             `json:"bookings"`
	Revenue       decimal.Decimal `json:"revenue"`
	OccupancyRate float64         `json:"occupancy_rate"`
}

type SalesReport struct {
	Period
	MonthName      string          `json:"month_name"`
	GeneratedDate  string          `json:"generated_date"`
	MonthlySales   decimal.Decimal `json:"monthly_sales"`
	YearlySales    decimal.Decimal `json:"yearly_sales"`
	TotalBookings  int64           `json:"total_bookings"`
	RoomTypesCount int             `json:"room_types_count"`
	RoomTypeSales  []RoomTypeSales `json:"room_type_profits"`
	DailySales     []DailySales    `json:"daily_sales"`
	TopRooms       []RoomSales     `json:"top_rooms"`
}

// Sales counts checked_in and checked_out reservations by creation date.
func (s *ReportService) Sales(ctx context.Context, p Period) (*SalesReport, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	start, end := p.bounds()
	yStart, yEnd := utils.YearRange(p.Year)

	rows, err := s.stayRows(ctx, "r.status IN (?) AND r.created_at >= ? AND r.created_at < ? ORDER BY r.created_at",
		stayedStatuses, start, end)
	if err != nil {
		return nil, fmt.Errorf("sales report: %w", err)
	}

	var yearly decimal.Decimal
	q, args, err := sqlx.In(`SELECT COALESCE(SUM(total_amount), 0) FROM reservations
WHERE status IN (?) AND created_at >= ? AND created_at < ?`, stayedStatuses, yStart, yEnd)
	if err != nil {
		return nil, fmt.Errorf("sales report: %w", err)
	}
	if err := s.DB.GetContext(ctx, &yearly, s.DB.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("sales report: yearly: %w", err)
	}

	byType, err := s.roomTypeTotals(ctx, stayedStatuses, start, end)
	if err != nil {
		return nil, fmt.Errorf("sales report: %w", err)
	}
	sort.SliceStable(byType, func(i, j int) bool {
		return byType[i].TotalRevenue.GreaterThan(byType[j].TotalRevenue)
	})

	return &SalesReport{
		Period:         p,
		MonthName:      p.Name(),
		GeneratedDate:  utils.FormatDate(s.Clock.Now()),
		MonthlySales:   sumAmounts(rows),
		YearlySales:    yearly,
		TotalBookings:  int64(len(rows)),
		RoomTypesCount: len(byType),
		RoomTypeSales:  byType,
		DailySales:     dailySales(rows, start, end),
		TopRooms:       topRooms(rows, start, end, 10),
	}, nil
}

// roomTypeTotals sums reservations created in [start, end) per room type.
// Every room type is listed, including those without bookings. An empty
// statuses slice means every status.
func (s *ReportService) roomTypeTotals(ctx context.Context, statuses []string, start, end time.Time) ([]RoomTypeSales, error) {
	query := `
SELECT rt.id AS room_type_id, rt.name AS room_type_name, COALESCE(rt.description, '') AS description,
       rt.price_per_day, COALESCE(SUM(r.total_amount), 0) AS total_revenue, COUNT(r.id) AS booking_count
FROM room_types rt
LEFT JOIN reservations r ON r.room_type_id = rt.id AND r.created_at >= ? AND r.created_at < ?`
	args := []interface{}{start, end}
	if len(statuses) > 0 {
		query += ` AND r.status IN (?)`
		args = append(args, statuses)
	}
	query += `
GROUP BY rt.id, rt.name, rt.description, rt.price_per_day
ORDER BY rt.name`

	q, qargs, err := sqlx.In(query, args...)
	if err != nil {
		return nil, err
	}
	var out []RoomTypeSales
	if err := s.DB.SelectContext(ctx, &out, s.DB.Rebind(q), qargs...); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].AverageRevenue = average(out[i].TotalRevenue, out[i].BookingCount)
	}
	return out, nil
}

func dailySales(rows []StayRow, start, end time.Time) []DailySales {
	type bucket struct {
		n   int
		sum decimal.Decimal
	}
	days := map[string]*bucket{}
	for _, r := range rows {
		key := utils.FormatDate(r.CreatedAt)
		b, ok := days[key]
		if !ok {
			b = &bucket{}
			days[key] = b
		}
		b.n++
		b.sum = b.sum.Add(r.TotalAmount)
	}

	var out []DailySales
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		key := utils.FormatDate(d)
		entry := DailySales{Date: key, Revenue: decimal.Zero, AvgPerBooking: decimal.Zero}
		if b, ok := days[key]; ok {
			entry.Bookings = b.n
			entry.Revenue = b.sum
			entry.AvgPerBooking = average(b.sum, int64(b.n))
		}
		out = append(out, entry)
	}
	return out
}

// topRooms ranks rooms by revenue. Occupancy counts the days of each stay
// that fall inside the month, both ends inclusive.
func topRooms(rows []StayRow, start, end time.Time, limit int) []RoomSales {
	lastDay := end.AddDate(0, 0, -1)
	daysInMonth := pricing.Nights(start, end)

	index := map[string]*RoomSales{}
	occupied := map[string]int{}
	var order []string
	for _, r := range rows {
		if r.RoomName == "" {
			continue
		}
		key := r.RoomType + "/" + r.RoomName
		rs, ok := index[key]
		if !ok {
			rs = &RoomSales{RoomName: r.RoomName, RoomType: r.RoomType, Revenue: decimal.Zero}
			index[key] = rs
			order = append(order, key)
		}
		rs.Bookings++
		rs.Revenue = rs.Revenue.Add(r.TotalAmount)

		in, out := r.CheckInDate, r.CheckOutDate
		if in.Before(start) {
			in = start
		}
		if out.After(lastDay) {
			out = lastDay
		}
		if !in.After(lastDay) && !out.Before(start) {
			occupied[key] += pricing.Nights(in, out) + 1
		}
	}

	out := make([]RoomSales, 0, len(order))
	for _, key := range order {
		rs := index[key]
		if daysInMonth > 0 {
			rate := float64(occupied[key]) / float64(daysInMonth) * 100
			rs.OccupancyRate = float64(int(rate*10+0.5)) / 10
		}
		out = append(out, *rs)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue.GreaterThan(out[j].Revenue) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ---------------------------------------------------------------------
// Check-ins / check-outs
// ---------------------------------------------------------------------

type CheckinReport struct {
	Period
	MonthName        string          `json:"month_name"`
	GeneratedDate    string          `json:"generated_date"`
	TotalCheckins    int             `json:"total_checkins"`
	TotalCheckouts   int             `json:"total_checkouts"`
	CurrentCheckedIn int64           `json:"current_checked_in"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	Checkins         []StayRow       `json:"checkins"`
	Checkouts        []StayRow       `json:"checkouts"`
}

// Checkins lists arrivals (check_in_date in the month, checked_in or
// checked_out) and departures (check_out_date in the month, checked_out).
func (s *ReportService) Checkins(ctx context.Context, p Period) (*CheckinReport, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	start, end := p.bounds()
	today := Today(s.Clock)

	arrivals, err := s.stayRows(ctx, "r.status IN (?) AND r.check_in_date >= ? AND r.check_in_date < ? ORDER BY r.check_in_date, r.id",
		stayedStatuses, start, end)
	if err != nil {
		return nil, fmt.Errorf("checkin report: %w", err)
	}
	departures, err := s.stayRows(ctx, "r.status = ? AND r.check_out_date >= ? AND r.check_out_date < ? ORDER BY r.check_out_date, r.id",
		string(models.StatusCheckedOut), start, end)
	if err != nil {
		return nil, fmt.Errorf("checkin report: %w", err)
	}
	current, err := s.count(ctx, `SELECT COUNT(*) FROM reservations WHERE status = ? AND check_in_date <= ? AND check_out_date >= ?`,
		string(models.StatusCheckedIn), today, today)
	if err != nil {
		return nil, fmt.Errorf("checkin report: %w", err)
	}

	return &CheckinReport{
		Period:           p,
		MonthName:        p.Name(),
		GeneratedDate:    utils.FormatDate(s.Clock.Now()),
		TotalCheckins:    len(arrivals),
		TotalCheckouts:   len(departures),
		CurrentCheckedIn: current,
		TotalRevenue:     sumAmounts(arrivals),
		Checkins:         arrivals,
		Checkouts:        departures,
	}, nil
}

// ---------------------------------------------------------------------
// Reservations
// ---------------------------------------------------------------------

type StatusBreakdown struct {
	Status       string          `json:"status"`
	Count        int             `json:"count"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	AvgAmount    decimal.Decimal `json:"avg_amount"`
	Percentage   float64         `json:"percentage"`
}

type RoomTypePerformance struct {
	RoomTypeName     string          `json:"room_type_name"`
	ReservationCount int64           `json:"reservation_count"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	AvgAmount        decimal.Decimal `json:"avg_amount"`
	Popularity       float64         `json:"popularity"`
}

type WeeklyTrend struct {
	WeekLabel       string          `json:"week_label"`
	NewReservations int             `json:"new_reservations"`
	CheckIns        int             `json:"check_ins"`
	CheckOuts       int             `json:"check_outs"`
	WeeklyRevenue   decimal.Decimal `json:"weekly_revenue"`
}

type ReservationsReport struct {
	Period
	MonthName           string                `json:"month_name"`
	GeneratedDate       string                `json:"generated_date"`
	TotalReservations   int                   `json:"total_reservations"`
	PendingCount        int                   `json:"pending_count"`
	ConfirmedCount      int                   `json:"confirmed_count"`
	CancelledCount      int                   `json:"cancelled_count"`
	Reservations        []StayRow             `json:"reservations"`
	ByStatus            []StatusBreakdown     `json:"reservations_by_status"`
	RoomTypePerformance []RoomTypePerformance `json:"room_type_performance"`
	WeeklyTrends        []WeeklyTrend         `json:"monthly_trends"`
}

// Reservations covers every reservation created in the month, whatever its status.
func (s *ReportService) Reservations(ctx context.Context, p Period) (*ReservationsReport, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	start, end := p.bounds()

	rows, err := s.stayRows(ctx, "r.created_at >= ? AND r.created_at < ? ORDER BY r.created_at, r.id", start, end)
	if err != nil {
		return nil, fmt.Errorf("reservations report: %w", err)
	}

	rep := &ReservationsReport{
		Period:            p,
		MonthName:         p.Name(),
		GeneratedDate:     utils.FormatDate(s.Clock.Now()),
		TotalReservations: len(rows),
		Reservations:      rows,
	}

	byStatus := map[string]*StatusBreakdown{}
	for _, r := range rows {
		b, ok := byStatus[r.Status]
		if !ok {
			b = &StatusBreakdown{Status: r.Status, TotalRevenue: decimal.Zero}
			byStatus[r.Status] = b
		}
		b.Count++
		b.TotalRevenue = b.TotalRevenue.Add(r.TotalAmount)
		switch models.ReservationStatus(r.Status) {
		case models.StatusPending:
			rep.PendingCount++
		case models.StatusConfirmed, models.StatusWaitingCheckin:
			rep.ConfirmedCount++
		case models.StatusCancelled:
			rep.CancelledCount++
		}
	}
	for _, b := range byStatus {
		b.AvgAmount = average(b.TotalRevenue, int64(b.Count))
		b.Percentage = percent(int64(b.Count), int64(len(rows)))
		rep.ByStatus = append(rep.ByStatus, *b)
	}
	sort.Slice(rep.ByStatus, func(i, j int) bool { return rep.ByStatus[i].Status < rep.ByStatus[j].Status })

	totals, err := s.roomTypeTotals(ctx, nil, start, end)
	if err != nil {
		return nil, fmt.Errorf("reservations report: %w", err)
	}
	for _, t := range totals {
		rep.RoomTypePerformance = append(rep.RoomTypePerformance, RoomTypePerformance{
			RoomTypeName:     t.RoomTypeName,
			ReservationCount: t.BookingCount,
			TotalRevenue:     t.TotalRevenue,
			AvgAmount:        t.AverageRevenue,
			Popularity:       percent(t.BookingCount, int64(len(rows))),
		})
	}
	sort.SliceStable(rep.RoomTypePerformance, func(i, j int) bool {
		return rep.RoomTypePerformance[i].ReservationCount > rep.RoomTypePerformance[j].ReservationCount
	})

	trends, err := s.weeklyTrends(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("reservations report: %w", err)
	}
	rep.WeeklyTrends = trends
	return rep, nil
}

// weeklyTrends splits the month into 7-day blocks starting on the 1st.
func (s *ReportService) weeklyTrends(ctx context.Context, start, end time.Time) ([]WeeklyTrend, error) {
	created, err := s.stayRows(ctx, "r.created_at >= ? AND r.created_at < ?", start, end)
	if err != nil {
		return nil, err
	}
	arrivals, err := s.stayRows(ctx, "r.status IN (?) AND r.check_in_date >= ? AND r.check_in_date < ?", stayedStatuses, start, end)
	if err != nil {
		return nil, err
	}
	departures, err := s.stayRows(ctx, "r.status = ? AND r.check_out_date >= ? AND r.check_out_date < ?",
		string(models.StatusCheckedOut), start, end)
	if err != nil {
		return nil, err
	}

	inWeek := func(t, from, to time.Time) bool {
		d := utils.DateOnly(t)
		return !d.Before(from) && d.Before(to)
	}

	var out []WeeklyTrend
	for week, from := 1, start; from.Before(end); week, from = week+1, from.AddDate(0, 0, 7) {
		to := from.AddDate(0, 0, 7)
		if to.After(end) {
			to = end
		}
		t := WeeklyTrend{
			WeekLabel:     fmt.Sprintf("Week %d (%s - %s)", week, from.Format("01/02"), to.AddDate(0, 0, -1).Format("01/02")),
			WeeklyRevenue: decimal.Zero,
		}
		for _, r := range created {
			if inWeek(r.CreatedAt, from, to) {
				t.NewReservations++
				t.WeeklyRevenue = t.WeeklyRevenue.Add(r.TotalAmount)
			}
		}
		for _, r := range arrivals {
			if inWeek(r.CheckInDate, from, to) {
				t.CheckIns++
			}
		}
		for _, r := range departures {
			if inWeek(r.CheckOutDate, from, to) {
				t.CheckOuts++
			}
		}
		out = append(out, t)
	}
	return out, nil
}

func percent(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	v := float64(part) / float64(whole) * 100
	return float64(int(v*10+0.5)) / 10
}

// ---------------------------------------------------------------------
// Completed reservations
// ---------------------------------------------------------------------

// Completed lists checked-out stays that went through confirmation,
// newest departure first.
func (s *ReportService) Completed(ctx context.Context) ([]StayRow, error) {
	rows, err := s.stayRows(ctx, "r.status = ? AND r.confirmed_at IS NOT NULL ORDER BY r.check_out_date DESC, r.id DESC",
		string(models.StatusCheckedOut))
	if err != nil {
		return nil, fmt.Errorf("completed reservations: %w", err)
	}
	return rows, nil
}
