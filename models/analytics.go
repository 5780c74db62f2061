package models

// ActivityPeriod is the aggregation window of one activity signal.
type ActivityPeriod string

const (
	PeriodToday     ActivityPeriod = "today"
	PeriodThisWeek  ActivityPeriod = "this-week"
	PeriodThisMonth ActivityPeriod = "this-month"
)

// Activity tags emitted by the sync use case after a successful save.
const (
	ActivityEditingItems        = "editing-items"
	ActivityEmailUnbackedUpData = "email-unbacked-up-data"
)

// Activity is a single fire-and-forget analytics signal.
type Activity struct {
	Tags        []string
	AnalyticsID int64
	Periods     []ActivityPeriod
}
