package reporting

import "time"

// BookingRow is one reservation record from a booking export.
// CheckIn/CheckOut form a half-open interval: the checkout night is not
// occupied. Nights and Revenue cover the whole stay, not a single night.
type BookingRow struct {
	RoomIdentifier string
	CheckIn        time.Time
	CheckOut       time.Time
	Nights         int
	Revenue        float64
	ChannelRaw     string
	BuildingBlock  string
}

// valid reports whether the row carries enough data to be counted.
// Dirty export rows are expected; invalid rows are skipped, not errors.
func (b BookingRow) valid() bool {
	if b.RoomIdentifier == "" || b.CheckIn.IsZero() {
		return false
	}
	return b.Nights > 0 && b.Revenue > 0
}
