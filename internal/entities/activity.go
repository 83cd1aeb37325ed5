package entities

import "time"

// Activity - запланированная активность (встреча, созвон, выезд).
type Activity struct {
	ID            string    `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	ScheduledDate time.Time `json:"scheduled_date" db:"scheduled_date"`
}
