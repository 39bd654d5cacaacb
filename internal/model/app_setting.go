package model

import "time"

// SettingRoundingStrategy is the app_settings key holding the price-ending token.
const SettingRoundingStrategy = "rounding_strategy"

// AppSetting is a plain key/value row.
type AppSetting struct {
	Key       string `gorm:"primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}
