package reporting

import (
	"sort"
	"time"
)

// auditDateLayout matches the day-first format used in the exported sheets.
const auditDateLayout = "02.01.2006"

// MonthlyStats summarizes one reporting month.
type MonthlyStats struct {
	Month         string
	TotalRevenue  float64
	TotalNights   float64
	TotalBookings float64
	AvgADR        float64
	RoomCount     int
	OccupancyRate float64
}

// RoomStats aggregates revenue per physical room unit.
type RoomStats struct {
	Room     string
	Revenue  float64
	Nights   float64
	Bookings float64
	ADR      float64
}

// ChannelStats aggregates revenue per normalized booking channel.
type ChannelStats struct {
	Channel  string
	Revenue  float64
	Nights   float64
	Bookings float64
	ADR      float64
}

// BuildingStats aggregates revenue per building block.
type BuildingStats struct {
	Building string
	Revenue  float64
	Nights   float64
	Bookings float64
	ADR      float64
}

// OverallStats holds the grand totals for the analyzed month.
type OverallStats struct {
	TotalRevenue  float64
	TotalNights   float64
	TotalBookings float64
	AvgADR        float64
	UniqueRooms   int
	OccupancyRate float64
	RevPAR        float64
}

// FilteredBooking is an audit row: one contributing reservation annotated
// with its in-month share. RevenueInMonth is the whole reservation's share,
// before any split across room units.
type FilteredBooking struct {
	Room           string
	CheckIn        string
	CheckOut       string
	Nights         int
	NightsInMonth  int
	RevenueInMonth float64
	Channel        string
	Building       string
}

// AnalysisResult is the full output of one month analysis.
type AnalysisResult struct {
	MonthlyStats  []MonthlyStats
	RoomStats     []RoomStats
	ChannelStats  []ChannelStats
	BuildingStats []BuildingStats
	Overall       OverallStats
	FilteredData  []FilteredBooking
	SkippedRows   int
}

type bucket struct {
	revenue  float64
	nights   float64
	bookings float64
}

// AnalyzeMonth computes per-room, per-channel, per-building and overall
// revenue statistics for the nights of each reservation that fall inside
// the target month. Reservations spanning the month boundary are clipped to
// it; a night belongs to the date it begins on. Combined-room reservations
// are split evenly across their derived units. Rows missing required fields
// or not touching the month are counted in SkippedRows and otherwise
// ignored.
func AnalyzeMonth(rows []BookingRow, period TargetPeriod) AnalysisResult {
	monthStart := period.MonthStart()
	monthEnd := period.MonthEnd()

	roomMap := make(map[string]*bucket)
	channelMap := make(map[string]*bucket)
	buildingMap := make(map[string]*bucket)
	uniqueRooms := make(map[string]struct{})

	var totalRevenue, totalNights, totalBookings float64
	var filtered []FilteredBooking
	skipped := 0

	for _, row := range rows {
		if !row.valid() {
			skipped++
			continue
		}
		if !row.CheckOut.After(monthStart) || !row.CheckIn.Before(monthEnd) {
			skipped++
			continue
		}

		nightsInMonth := clippedNights(row.CheckIn, row.CheckOut, monthStart, monthEnd)
		if nightsInMonth <= 0 {
			skipped++
			continue
		}

		channel := NormalizeChannel(row.ChannelRaw)
		building := row.BuildingBlock
		if building == "" {
			building = "Unknown"
		}

		units := SplitRoomUnits(row.RoomIdentifier)
		unitCount := float64(len(units))
		// Implied nightly rate, rescaled to the clipped night count.
		// Assumes uniform pricing across the stay.
		revenuePerUnit := row.Revenue / float64(row.Nights) * float64(nightsInMonth) / unitCount
		nightsPerUnit := float64(nightsInMonth) / unitCount
		bookingShare := 1 / unitCount

		for _, unit := range units {
			uniqueRooms[unit] = struct{}{}
			totalRevenue += revenuePerUnit
			totalNights += nightsPerUnit
			totalBookings += bookingShare

			accumulate(roomMap, unit, revenuePerUnit, nightsPerUnit, bookingShare)
			accumulate(channelMap, channel, revenuePerUnit, nightsPerUnit, bookingShare)
			accumulate(buildingMap, building, revenuePerUnit, nightsPerUnit, bookingShare)
		}

		filtered = append(filtered, FilteredBooking{
			Room:           row.RoomIdentifier,
			CheckIn:        row.CheckIn.Format(auditDateLayout),
			CheckOut:       row.CheckOut.Format(auditDateLayout),
			Nights:         row.Nights,
			NightsInMonth:  nightsInMonth,
			RevenueInMonth: row.Revenue * float64(nightsInMonth) / float64(row.Nights),
			Channel:        channel,
			Building:       building,
		})
	}

	availableNights := float64(len(uniqueRooms) * period.DaysInMonth())
	occupancyRate := 0.0
	revPAR := 0.0
	if availableNights > 0 {
		occupancyRate = totalNights / availableNights * 100
		revPAR = totalRevenue / availableNights
	}
	avgADR := 0.0
	if totalNights > 0 {
		avgADR = totalRevenue / totalNights
	}

	roomStats := make([]RoomStats, 0, len(roomMap))
	for room, b := range roomMap {
		roomStats = append(roomStats, RoomStats{Room: room, Revenue: b.revenue, Nights: b.nights, Bookings: b.bookings, ADR: adr(b)})
	}
	sort.Slice(roomStats, func(i, j int) bool { return roomStats[i].Revenue > roomStats[j].Revenue })

	channelStats := make([]ChannelStats, 0, len(channelMap))
	for channel, b := range channelMap {
		channelStats = append(channelStats, ChannelStats{Channel: channel, Revenue: b.revenue, Nights: b.nights, Bookings: b.bookings, ADR: adr(b)})
	}
	sort.Slice(channelStats, func(i, j int) bool { return channelStats[i].Revenue > channelStats[j].Revenue })

	buildingStats := make([]BuildingStats, 0, len(buildingMap))
	for building, b := range buildingMap {
		buildingStats = append(buildingStats, BuildingStats{Building: building, Revenue: b.revenue, Nights: b.nights, Bookings: b.bookings, ADR: adr(b)})
	}
	sort.Slice(buildingStats, func(i, j int) bool { return buildingStats[i].Revenue > buildingStats[j].Revenue })

	return AnalysisResult{
		MonthlyStats: []MonthlyStats{{
			Month:         period.Key(),
			TotalRevenue:  totalRevenue,
			TotalNights:   totalNights,
			TotalBookings: totalBookings,
			AvgADR:        avgADR,
			RoomCount:     len(uniqueRooms),
			OccupancyRate: occupancyRate,
		}},
		RoomStats:     roomStats,
		ChannelStats:  channelStats,
		BuildingStats: buildingStats,
		Overall: OverallStats{
			TotalRevenue:  totalRevenue,
			TotalNights:   totalNights,
			TotalBookings: totalBookings,
			AvgADR:        avgADR,
			UniqueRooms:   len(uniqueRooms),
			OccupancyRate: occupancyRate,
			RevPAR:        revPAR,
		},
		FilteredData: filtered,
		SkippedRows:  skipped,
	}
}

// clippedNights counts the whole nights of [checkIn, checkOut) that fall
// inside [monthStart, monthEnd).
func clippedNights(checkIn, checkOut, monthStart, monthEnd time.Time) int {
	effectiveStart := checkIn
	if monthStart.After(effectiveStart) {
		effectiveStart = monthStart
	}
	effectiveEnd := checkOut
	if monthEnd.Before(effectiveEnd) {
		effectiveEnd = monthEnd
	}
	if !effectiveEnd.After(effectiveStart) {
		return 0
	}
	return int(effectiveEnd.Sub(effectiveStart) / (24 * time.Hour))
}

func accumulate(m map[string]*bucket, key string, revenue, nights, bookings float64) {
	b := m[key]
	if b == nil {
		b = &bucket{}
		m[key] = b
	}
	b.revenue += revenue
	b.nights += nights
	b.bookings += bookings
}

func adr(b *bucket) float64 {
	if b.nights <= 0 {
		return 0
	}
	return b.revenue / b.nights
}
