package domain

import "testing"

func TestPercentChange(t *testing.T) {
	cases := []struct {
		cur, prev, want int
	}{
		{0, 0, 0},
		{5, 0, 100},
		{150, 100, 50},
		{50, 100, -50},
		{1, 3, -67},
		{100, 100, 0},
	}
	for _, tc := range cases {
		if got := PercentChange(tc.cur, tc.prev); got != tc.want {
			t.Errorf("PercentChange(%d, %d) = %d, want %d", tc.cur, tc.prev, got, tc.want)
		}
	}
}

func TestEngagementRate(t *testing.T) {
	if got := EngagementRate(5, 0); got != 0 {
		t.Fatalf("expected 0 without views, got %d", got)
	}
	if got := EngagementRate(1, 3); got != 33 {
		t.Fatalf("expected 33, got %d", got)
	}
}

func TestMonthOverMonth(t *testing.T) {
	series := []MonthlyAnalytics{
		{Month: "Jan", Views: 100, Comments: 10, Articles: 2},
		{Month: "Feb", Views: 200, Comments: 10, Articles: 2},
	}
	tr := MonthOverMonth(series)

	if tr.Views != 100 || tr.Comments != 0 || tr.Articles != 0 {
		t.Fatalf("unexpected trend %+v", tr)
	}
	// engagement 10% -> 5%
	if tr.Engagement != -50 {
		t.Fatalf("expected engagement -50, got %d", tr.Engagement)
	}
}

func TestMonthOverMonth_ShortSeries(t *testing.T) {
	if tr := MonthOverMonth(nil); tr != (Trend{}) {
		t.Fatalf("expected zero trend, got %+v", tr)
	}
	tr := MonthOverMonth([]MonthlyAnalytics{{Views: 3}})
	if tr.Views != 100 {
		t.Fatalf("expected 100 against empty baseline, got %d", tr.Views)
	}
}
