// models/wearable.go - Synced device metrics and wearable connections
package models

import "time"

// HealthMetrics is one snapshot of device metrics. Every field is optional;
// absent fields simply do not contribute to derived scores.
type HealthMetrics struct {
	HeartRate      *int     `json:"heart_rate,omitempty"`
	Steps          *int     `json:"steps,omitempty"`
	ActiveCalories *int     `json:"active_calories,omitempty"`
	VO2Max         *float64 `json:"vo2_max,omitempty"`
	SleepHours     *float64 `json:"sleep_hours,omitempty"`
}

// HealthSample is a persisted HealthMetrics snapshot from one sync call.
type HealthSample struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     uint   `gorm:"not null;index" json:"user_id"`
	User       *User  `gorm:"foreignKey:UserID" json:"-"`
	DeviceType string `gorm:"size:50" json:"device_type"`

	HeartRate      *int     `json:"heart_rate,omitempty"`
	Steps          *int     `json:"steps,omitempty"`
	ActiveCalories *int     `json:"active_calories,omitempty"`
	VO2Max         *float64 `json:"vo2_max,omitempty"`
	SleepHours     *float64 `json:"sleep_hours,omitempty"`

	RecordedAt time.Time `gorm:"index" json:"recorded_at"`
}

// Metrics extracts the snapshot fields for scoring.
func (s HealthSample) Metrics() HealthMetrics {
	return HealthMetrics{
		HeartRate:      s.HeartRate,
		Steps:          s.Steps,
		ActiveCalories: s.ActiveCalories,
		VO2Max:         s.VO2Max,
		SleepHours:     s.SleepHours,
	}
}

// WearableConnection links a user account to a wearable device. Vendor API
// transport lives outside this service; only the connection record is kept.
type WearableConnection struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	User        *User      `gorm:"foreignKey:UserID" json:"-"`
	DeviceType  string     `gorm:"not null;size:50" json:"device_type"` // apple_watch, whoop, fitbit, garmin
	AuthToken   string     `gorm:"type:text" json:"-"`
	Status      string     `gorm:"default:'connected';size:20" json:"status"` // connected, disconnected, error
	ConnectedAt time.Time  `json:"connected_at"`
	LastSync    *time.Time `json:"last_sync,omitempty"`
}

func (HealthSample) TableName() string {
	return "health_samples"
}

func (WearableConnection) TableName() string {
	return "wearable_connections"
}
