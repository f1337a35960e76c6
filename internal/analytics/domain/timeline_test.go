package domain

import (
	"testing"
	"time"
)

func TestBuildTimeline(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, loc)
	timestamps := []time.Time{
		time.Date(2026, 3, 15, 0, 0, 1, 0, loc),
		time.Date(2026, 3, 15, 23, 59, 59, 0, loc),
		time.Date(2026, 3, 10, 12, 0, 0, 0, loc),
		// 31日前: ウィンドウ外なのでどのバケツにも入らない
		time.Date(2026, 2, 12, 12, 0, 0, 0, loc),
	}

	points := BuildTimeline(now, loc, timestamps)
	if len(points) != TimelineWindowDays {
		t.Fatalf("expected %d points, got %d", TimelineWindowDays, len(points))
	}
	if points[0].Date != "2026-02-14" || points[len(points)-1].Date != "2026-03-15" {
		t.Fatalf("unexpected window bounds: %s .. %s", points[0].Date, points[len(points)-1].Date)
	}
	byDate := make(map[string]int, len(points))
	total := 0
	for i, point := range points {
		byDate[point.Date] = point.Count
		total += point.Count
		if i > 0 && points[i-1].Date >= point.Date {
			t.Fatalf("dates not strictly ascending at %d: %s >= %s", i, points[i-1].Date, point.Date)
		}
	}
	if byDate["2026-03-15"] != 2 || byDate["2026-03-10"] != 1 {
		t.Fatalf("unexpected bucket counts: %+v", byDate)
	}
	if total != 3 {
		t.Fatalf("out-of-window timestamp leaked into the series: total %d", total)
	}
}

func TestBuildTimelineLocationBoundary(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, tokyo)
	// UTC 15:30 の前日は JST では当日 00:30。
	ts := time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)

	points := BuildTimeline(now, tokyo, []time.Time{ts})
	last := points[len(points)-1]
	if last.Date != "2026-03-15" || last.Count != 1 {
		t.Fatalf("timestamp should bucket by JST calendar day: %+v", last)
	}
}

func TestBuildTimelineNilLocationDefaultsToUTC(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	points := BuildTimeline(now, nil, nil)
	if len(points) != TimelineWindowDays {
		t.Fatalf("expected dense series, got %d points", len(points))
	}
	for _, point := range points {
		if point.Count != 0 {
			t.Fatalf("empty input must produce zero counts: %+v", point)
		}
	}
}
