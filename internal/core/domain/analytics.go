package domain

import "math"

// MonthlyAnalytics is one month of a journalist's aggregates.
type MonthlyAnalytics struct {
	Month    string `json:"month"`
	Comments int    `json:"comments"`
	Views    int    `json:"views"`
	Articles int    `json:"articles"`
}

// JournalistAnalytics is the precomputed yearly aggregate from the backend.
type JournalistAnalytics struct {
	MonthlyAnalytics []MonthlyAnalytics `json:"monthlyAnalytics"`
	TotalViews       int                `json:"totalViews"`
	TotalComments    int                `json:"totalComments"`
	TotalArticles    int                `json:"totalArticles"`
}

// PerformanceMetrics is the per-journalist summary shown to Admins.
type PerformanceMetrics struct {
	TotalArticles      int     `json:"totalArticles"`
	TotalViews         int     `json:"totalViews"`
	TotalComments      int     `json:"totalComments"`
	CommentsPerArticle float64 `json:"commentsPerArticle"`
	ViewsPerArticle    float64 `json:"viewsPerArticle"`
}

// TopArticle is an entry of a month's most-read list.
type TopArticle struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Views int    `json:"views"`
}

// PercentChange is the rounded relative change from prev to current.
// A zero baseline yields 0 when nothing changed and 100 otherwise.
func PercentChange(current, prev int) int {
	if prev == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return int(math.Round(float64(current-prev) / float64(prev) * 100))
}

// EngagementRate is comments per hundred views, rounded; 0 without views.
func EngagementRate(comments, views int) int {
	if views == 0 {
		return 0
	}
	return int(math.Round(float64(comments) / float64(views) * 100))
}

// Trend compares the last two months of a series.
type Trend struct {
	Views      int `json:"views"`
	Comments   int `json:"comments"`
	Articles   int `json:"articles"`
	Engagement int `json:"engagement"`
}

// MonthOverMonth computes the trend of the latest month against the one
// before it. Missing months count as zero.
func MonthOverMonth(series []MonthlyAnalytics) Trend {
	var cur, prev MonthlyAnalytics
	if n := len(series); n > 0 {
		cur = series[n-1]
		if n > 1 {
			prev = series[n-2]
		}
	}
	return Trend{
		Views:    PercentChange(cur.Views, prev.Views),
		Comments: PercentChange(cur.Comments, prev.Comments),
		Articles: PercentChange(cur.Articles, prev.Articles),
		Engagement: PercentChange(
			EngagementRate(cur.Comments, cur.Views),
			EngagementRate(prev.Comments, prev.Views),
		),
	}
}
