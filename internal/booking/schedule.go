package booking

import (
	"time"

	"github.com/BenedictUkwenya/lifekitbackend/internal/catalog"
)

const (
	dayLayout  = "2006-01-02"
	hourLayout = "15:04"
)

// deriveBlockedSlots turns active bookings into calendar intervals. Hourly
// services block scheduled_time .. scheduled_time+duration on their day;
// fixed-price services block the whole day. A fully blocked day swallows
// any hourly intervals that fall on it.
func deriveBlockedSlots(entries []ScheduleEntry) []BlockedSlot {
	fullyBlocked := make(map[string]bool)
	for _, e := range entries {
		if e.PriceType != catalog.PriceTypeHourly {
			fullyBlocked[e.ScheduledTime.Format(dayLayout)] = true
		}
	}

	slots := make([]BlockedSlot, 0, len(entries))
	seenDays := make(map[string]bool)

	for _, e := range entries {
		day := e.ScheduledTime.Format(dayLayout)

		if fullyBlocked[day] {
			if !seenDays[day] {
				seenDays[day] = true
				slots = append(slots, BlockedSlot{Day: day, FullyBlocked: true})
			}
			continue
		}

		duration := e.DurationHours
		if duration <= 0 {
			duration = 1
		}
		start := e.ScheduledTime.Format(hourLayout)
		endTime := e.ScheduledTime.Add(time.Duration(duration) * time.Hour)
		end := endTime.Format(hourLayout)
		// An interval that runs past midnight is clamped to the end of its
		// day so it never reads as inverted.
		if endTime.Format(dayLayout) != day {
			end = "24:00"
		}
		slots = append(slots, BlockedSlot{Day: day, Start: &start, End: &end})
	}

	return slots
}
