package reporting

import (
	"math"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustPeriod(t *testing.T, year, month int) TargetPeriod {
	t.Helper()
	p, err := NewTargetPeriod(year, month)
	if err != nil {
		t.Fatalf("period %d-%d: %v", year, month, err)
	}
	return p
}

func almostEqual(a, b float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	scale := math.Max(math.Abs(a), math.Abs(b))
	return diff <= 1e-6*scale
}

func TestAnalyzeMonth_FullyInsideMonth(t *testing.T) {
	rows := []BookingRow{{
		RoomIdentifier: "A1",
		CheckIn:        day(2025, 8, 10),
		CheckOut:       day(2025, 8, 14),
		Nights:         4,
		Revenue:        400,
		ChannelRaw:     "booking.com",
	}}
	result := AnalyzeMonth(rows, mustPeriod(t, 2025, 8))
	if result.Overall.TotalNights != 4 {
		t.Fatalf("nights: got %v, want 4", result.Overall.TotalNights)
	}
	if result.Overall.TotalRevenue != 400 {
		t.Fatalf("revenue: got %v, want 400", result.Overall.TotalRevenue)
	}
	if result.Overall.AvgADR != 100 {
		t.Fatalf("adr: got %v, want 100", result.Overall.AvgADR)
	}
}

func TestAnalyzeMonth_SpanningBothEnds(t *testing.T) {
	// Jul 20 to Sep 10 clips to all 31 nights of August.
	rows := []BookingRow{{
		RoomIdentifier: "A1",
		CheckIn:        day(2025, 7, 20),
		CheckOut:       day(2025, 9, 10),
		Nights:         52,
		Revenue:        5200,
	}}
	result := AnalyzeMonth(rows, mustPeriod(t, 2025, 8))
	if result.Overall.TotalNights != 31 {
		t.Fatalf("nights: got %v, want 31", result.Overall.TotalNights)
	}
	if !almostEqual(result.Overall.TotalRevenue, 3100) {
		t.Fatalf("revenue: got %v, want 3100", result.Overall.TotalRevenue)
	}
	if !almostEqual(result.Overall.OccupancyRate, 100) {
		t.Fatalf("occupancy: got %v, want 100", result.Overall.OccupancyRate)
	}
}

func TestAnalyzeMonth_CheckoutExclusive(t *testing.T) {
	period := mustPeriod(t, 2025, 8)

	lastNight := []BookingRow{{
		RoomIdentifier: "A1",
		CheckIn:        day(2025, 8, 31),
		CheckOut:       day(2025, 9, 1),
		Nights:         1,
		Revenue:        150,
	}}
	result := AnalyzeMonth(lastNight, period)
	if result.Overall.TotalNights != 1 {
		t.Fatalf("last-night stay: got %v nights, want 1", result.Overall.TotalNights)
	}

	nextMonth := []BookingRow{{
		RoomIdentifier: "A1",
		CheckIn:        day(2025, 9, 1),
		CheckOut:       day(2025, 9, 2),
		Nights:         1,
		Revenue:        150,
	}}
	result = AnalyzeMonth(nextMonth, period)
	if result.Overall.TotalNights != 0 {
		t.Fatalf("next-month stay: got %v nights, want 0", result.Overall.TotalNights)
	}
	if result.SkippedRows != 1 {
		t.Fatalf("next-month stay should be skipped, got %d skipped", result.SkippedRows)
	}
}

func TestAnalyzeMonth_RoomSplitConservation(t *testing.T) {
	rows := []BookingRow{{
		RoomIdentifier: "A 100-102",
		CheckIn:        day(2025, 8, 5),
		CheckOut:       day(2025, 8, 9),
		Nights:         4,
		Revenue:        400,
	}}
	result := AnalyzeMonth(rows, mustPeriod(t, 2025, 8))
	if len(result.RoomStats) != 2 {
		t.Fatalf("expected 2 room units, got %d", len(result.RoomStats))
	}
	for _, room := range result.RoomStats {
		if !almostEqual(room.Revenue, 200) || !almostEqual(room.Nights, 2) || !almostEqual(room.Bookings, 0.5) {
			t.Fatalf("room %s: revenue=%v nights=%v bookings=%v", room.Room, room.Revenue, room.Nights, room.Bookings)
		}
	}
	if !almostEqual(result.Overall.TotalRevenue, 400) {
		t.Fatalf("split must conserve revenue, got %v", result.Overall.TotalRevenue)
	}
	if !almostEqual(result.Overall.TotalBookings, 1) {
		t.Fatalf("split must conserve bookings, got %v", result.Overall.TotalBookings)
	}
	if result.Overall.UniqueRooms != 2 {
		t.Fatalf("unique rooms: got %d, want 2", result.Overall.UniqueRooms)
	}
}

func TestAnalyzeMonth_BreakdownsReconcile(t *testing.T) {
	rows := []BookingRow{
		{RoomIdentifier: "A1", CheckIn: day(2025, 8, 1), CheckOut: day(2025, 8, 5), Nights: 4, Revenue: 440, ChannelRaw: "booking.com", BuildingBlock: "A"},
		{RoomIdentifier: "B 200-204", CheckIn: day(2025, 7, 28), CheckOut: day(2025, 8, 3), Nights: 6, Revenue: 900, ChannelRaw: "airbnb", BuildingBlock: "B"},
		{RoomIdentifier: "C7", CheckIn: day(2025, 8, 30), CheckOut: day(2025, 9, 4), Nights: 5, Revenue: 777.5, ChannelRaw: "direct", BuildingBlock: ""},
	}
	result := AnalyzeMonth(rows, mustPeriod(t, 2025, 8))

	var roomSum, channelSum, buildingSum float64
	for _, r := range result.RoomStats {
		roomSum += r.Revenue
	}
	for _, c := range result.ChannelStats {
		channelSum += c.Revenue
	}
	for _, b := range result.BuildingStats {
		buildingSum += b.Revenue
	}
	total := result.Overall.TotalRevenue
	if !almostEqual(roomSum, total) || !almostEqual(channelSum, total) || !almostEqual(buildingSum, total) {
		t.Fatalf("breakdowns do not reconcile: rooms=%v channels=%v buildings=%v total=%v", roomSum, channelSum, buildingSum, total)
	}

	for i := 1; i < len(result.RoomStats); i++ {
		if result.RoomStats[i].Revenue > result.RoomStats[i-1].Revenue {
			t.Fatal("room stats not sorted by revenue descending")
		}
	}
}

func TestAnalyzeMonth_EmptyInput(t *testing.T) {
	result := AnalyzeMonth(nil, mustPeriod(t, 2025, 8))
	o := result.Overall
	if o.TotalRevenue != 0 || o.TotalNights != 0 || o.TotalBookings != 0 {
		t.Fatalf("expected zero totals, got %+v", o)
	}
	if o.OccupancyRate != 0 || o.RevPAR != 0 || o.AvgADR != 0 {
		t.Fatalf("expected zero rates, got %+v", o)
	}
	if len(result.MonthlyStats) != 1 {
		t.Fatalf("expected singleton monthly stats, got %d", len(result.MonthlyStats))
	}
}

func TestAnalyzeMonth_SkipsInvalidRows(t *testing.T) {
	rows := []BookingRow{
		{RoomIdentifier: "", CheckIn: day(2025, 8, 1), CheckOut: day(2025, 8, 2), Nights: 1, Revenue: 100},
		{RoomIdentifier: "A1", Nights: 1, Revenue: 100},
		{RoomIdentifier: "A1", CheckIn: day(2025, 8, 1), CheckOut: day(2025, 8, 2), Nights: 0, Revenue: 100},
		{RoomIdentifier: "A1", CheckIn: day(2025, 8, 1), CheckOut: day(2025, 8, 2), Nights: 1, Revenue: 0},
		{RoomIdentifier: "A1", CheckIn: day(2025, 8, 1), CheckOut: day(2025, 8, 2), Nights: 1, Revenue: 100},
	}
	result := AnalyzeMonth(rows, mustPeriod(t, 2025, 8))
	if result.SkippedRows != 4 {
		t.Fatalf("skipped: got %d, want 4", result.SkippedRows)
	}
	if result.Overall.TotalRevenue != 100 {
		t.Fatalf("revenue: got %v, want 100", result.Overall.TotalRevenue)
	}
}

func TestAnalyzeMonth_MonthBoundaryProration(t *testing.T) {
	row := BookingRow{
		RoomIdentifier: "A1",
		CheckIn:        day(2025, 8, 30),
		CheckOut:       day(2025, 9, 2),
		Nights:         3,
		Revenue:        300,
		ChannelRaw:     "booking.com",
	}

	august := AnalyzeMonth([]BookingRow{row}, mustPeriod(t, 2025, 8))
	if august.Overall.TotalNights != 2 {
		t.Fatalf("august nights: got %v, want 2", august.Overall.TotalNights)
	}
	if !almostEqual(august.Overall.TotalRevenue, 200) {
		t.Fatalf("august revenue: got %v, want 200", august.Overall.TotalRevenue)
	}
	if len(august.RoomStats) != 1 || august.RoomStats[0].Room != "A1" {
		t.Fatalf("unexpected room stats: %+v", august.RoomStats)
	}

	september := AnalyzeMonth([]BookingRow{row}, mustPeriod(t, 2025, 9))
	if september.Overall.TotalNights != 1 {
		t.Fatalf("september nights: got %v, want 1", september.Overall.TotalNights)
	}
	if !almostEqual(september.Overall.TotalRevenue, 100) {
		t.Fatalf("september revenue: got %v, want 100", september.Overall.TotalRevenue)
	}
}

func TestAnalyzeMonth_AuditRows(t *testing.T) {
	rows := []BookingRow{{
		RoomIdentifier: "A 100-102",
		CheckIn:        day(2025, 8, 30),
		CheckOut:       day(2025, 9, 2),
		Nights:         3,
		Revenue:        300,
		ChannelRaw:     "agoda",
	}}
	result := AnalyzeMonth(rows, mustPeriod(t, 2025, 8))
	if len(result.FilteredData) != 1 {
		t.Fatalf("expected 1 audit row, got %d", len(result.FilteredData))
	}
	audit := result.FilteredData[0]
	if audit.CheckIn != "30.08.2025" || audit.CheckOut != "02.09.2025" {
		t.Fatalf("unexpected audit dates: %s / %s", audit.CheckIn, audit.CheckOut)
	}
	if audit.NightsInMonth != 2 {
		t.Fatalf("audit nights in month: got %d, want 2", audit.NightsInMonth)
	}
	// Audit revenue is the whole reservation's in-month share, not per unit.
	if !almostEqual(audit.RevenueInMonth, 200) {
		t.Fatalf("audit revenue: got %v, want 200", audit.RevenueInMonth)
	}
	if audit.Channel != "Agoda" {
		t.Fatalf("audit channel: got %q", audit.Channel)
	}
	if audit.Building != "Unknown" {
		t.Fatalf("audit building: got %q", audit.Building)
	}
}
