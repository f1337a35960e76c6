package domain

import "time"

// TimelineWindowDays is the fixed trailing window of the submission activity
// series.
const TimelineWindowDays = 30

const timelineDateLayout = "2006-01-02"

// TimelinePoint is one day of the dense submission activity series.
type TimelinePoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// BuildTimeline buckets submission timestamps into a dense daily series over
// the trailing window anchored at now. Bucketing truncates to the calendar
// day in loc; the series always has exactly TimelineWindowDays points in
// ascending date order, zero-count days included.
func BuildTimeline(now time.Time, loc *time.Location, timestamps []time.Time) []TimelinePoint {
	if loc == nil {
		loc = time.UTC
	}

	counts := make(map[string]int, len(timestamps))
	for _, ts := range timestamps {
		counts[ts.In(loc).Format(timelineDateLayout)]++
	}

	points := make([]TimelinePoint, 0, TimelineWindowDays)
	anchor := now.In(loc)
	for i := TimelineWindowDays - 1; i >= 0; i-- {
		date := anchor.AddDate(0, 0, -i).Format(timelineDateLayout)
		points = append(points, TimelinePoint{Date: date, Count: counts[date]})
	}
	return points
}
