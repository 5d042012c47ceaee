package domain

import "time"

// UnknownTrade buckets persisted tasks that carry no trade.
const UnknownTrade = "Unknown"

// TradeDaySummary aggregates one trade's tasks on one day.
type TradeDaySummary struct {
	Trade           string
	TaskCount       int
	TotalLaborHours float64
}

// DaySummary aggregates the tasks active on one calendar day.
type DaySummary struct {
	Date            time.Time
	TaskCount       int
	TotalLaborHours float64
	Trades          []TradeDaySummary
	Tasks           []ScheduleTask
}
