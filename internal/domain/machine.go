package domain

import "time"

type Machine struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	OwnerID     string    `gorm:"index" json:"owner_id"`
	Name        string    `json:"name"`
	Category    string    `gorm:"index" json:"category"` // tractor, harvester, seeder, ...
	Description string    `json:"description,omitempty"`
	DailyRate   int64     `json:"daily_rate"` // smallest currency unit per day
	Location    string    `gorm:"index" json:"location"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
