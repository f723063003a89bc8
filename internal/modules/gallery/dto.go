package gallery

import "time"

type CreateEventRequest struct {
	ClientID  int64     `json:"client_id" binding:"required"`
	BookingID *int64    `json:"booking_id"`
	Title     string    `json:"title" binding:"required"`
	ShotAt    time.Time `json:"shot_at" binding:"required"`
}

type AddPhotosRequest struct {
	Photos []PhotoInput `json:"photos" binding:"required,min=1,dive"`
}

type PhotoInput struct {
	FileKey string `json:"file_key" binding:"required"`
	Caption string `json:"caption"`
}
