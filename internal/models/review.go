package models

import (
	"time"
)

type Review struct {
	ID          int       `json:"id"`
	ApartmentID int       `json:"apartment_id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Review      string    `json:"review"`
	Date        time.Time `json:"date"`
	Days        int       `json:"days"`
}

type ReviewInput struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Review   string `json:"review" validate:"required,min=3"`
	Days     int    `json:"days" validate:"min=1,max=4294967295"`
}
