package reporting

import "strings"

// ChannelUnknown is the label for bookings with no recognizable source.
const ChannelUnknown = "Unknown"

// socialKeywords collapse direct and ad-driven traffic into one bucket.
// Georgian "პირდაპირი" means direct.
var socialKeywords = []string{"direct", "პირდაპირ", "google", "facebook", "instagram", "social"}

var otaChannels = []struct {
	keyword string
	label   string
}{
	{"booking", "Booking.com"},
	{"agoda", "Agoda"},
	{"expedia", "Expedia"},
	{"airbnb", "Airbnb"},
	{"ostrovok", "Ostrovok"},
}

// NormalizeChannel maps a free-text booking source to a canonical label.
// Unrecognized labels pass through unchanged, so the function is idempotent.
func NormalizeChannel(channel string) string {
	trimmed := strings.TrimSpace(channel)
	if trimmed == "" {
		return ChannelUnknown
	}
	lower := strings.ToLower(trimmed)
	for _, kw := range socialKeywords {
		if strings.Contains(lower, kw) {
			return "Social Media"
		}
	}
	for _, ota := range otaChannels {
		if strings.Contains(lower, ota.keyword) {
			return ota.label
		}
	}
	return trimmed
}
