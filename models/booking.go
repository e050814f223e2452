// models/booking.go - Court, Booking and Game collaborator models
package models

import (
	"time"
)

// Court represents a bookable court or training venue.
type Court struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null;size:100" json:"name"`
	Address      string    `gorm:"not null" json:"address"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	PricePerHour float64   `gorm:"not null" json:"price_per_hour"`
	Available    bool      `gorm:"default:true" json:"available"`
	OwnerID      *uint     `gorm:"index" json:"owner_id,omitempty"`
	Owner        *User     `gorm:"foreignKey:OwnerID" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Booking is a training session reservation. Booking counts feed the
// achievement evaluator.
type Booking struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Reference  string    `gorm:"uniqueIndex;size:36" json:"reference"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID" json:"-"`
	TrainerID  *uint     `gorm:"index" json:"trainer_id,omitempty"`
	CourtID    uint      `gorm:"not null;index" json:"court_id"`
	Court      *Court    `gorm:"foreignKey:CourtID" json:"court,omitempty"`
	Date       time.Time `gorm:"not null" json:"date"`
	StartTime  time.Time `gorm:"not null" json:"start_time"`
	EndTime    time.Time `gorm:"not null" json:"end_time"`
	TotalPrice float64   `gorm:"not null" json:"total_price"`
	Status     string    `gorm:"default:'pending';size:20" json:"status"` // pending, confirmed, cancelled, completed
	CreatedAt  time.Time `json:"created_at"`
}

// Game is a recorded pickup/training game. A score of 100 counts as a
// perfect game for achievement purposes.
type Game struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	User            *User     `gorm:"foreignKey:UserID" json:"-"`
	CourtID         *uint     `gorm:"index" json:"court_id,omitempty"`
	Score           int       `gorm:"not null" json:"score"`
	DurationMinutes int       `json:"duration_minutes"`
	GameType        string    `gorm:"size:30" json:"game_type"` // pickup, training, tournament
	CreatedAt       time.Time `json:"created_at"`
}

// PerfectScore is the game score that qualifies as perfect.
const PerfectScore = 100

func (Court) TableName() string {
	return "courts"
}

func (Booking) TableName() string {
	return "bookings"
}

func (Game) TableName() string {
	return "games"
}
