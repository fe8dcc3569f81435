package utils

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate converts a yyyy-mm-dd formatted string into a time.Time.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", dateStr)
	}
	return t, nil
}

// BookingDays returns the rental duration in days for a date range. Both the
// start and the end date are included, so a booking from the 2nd to the 4th
// spans 3 days. The minimum duration is 1 day (start == end).
func BookingDays(startDate, endDate string) (int32, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return 0, fmt.Errorf("invalid start date: %v", err)
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return 0, fmt.Errorf("invalid end date: %v", err)
	}

	diff := int32(end.Sub(start).Hours() / 24)
	if diff < 0 {
		return 0, fmt.Errorf("end date must be on or after start date")
	}
	return diff + 1, nil
}

// BookingAmount returns the total price in cents for a duration at a daily
// rate.
func BookingAmount(totalDays, dailyRateCents int32) int32 {
	return totalDays * dailyRateCents
}
