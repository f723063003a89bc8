package domain

import "time"

// Event is a photo shoot; photos and download selections hang off it.
type Event struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	ClientID  int64     `gorm:"index;not null" json:"client_id"`
	BookingID *int64    `gorm:"index" json:"booking_id,omitempty"`
	Country   Country   `gorm:"type:varchar(2);not null" json:"country"`
	Title     string    `gorm:"not null" json:"title"`
	ShotAt    time.Time `json:"shot_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Event) TableName() string { return "events" }

type Photo struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	EventID   int64     `gorm:"index;not null" json:"event_id"`
	FileKey   string    `gorm:"not null" json:"file_key"`
	Caption   string    `json:"caption,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Photo) TableName() string { return "photos" }
