package model

import (
	"time"

	"gorm.io/datatypes"
)

// Known site setting keys. Each key's value shape is fixed by convention only.
const (
	SettingContact = "contact"
	SettingSocial  = "social"
	SettingSEO     = "seo"
)

// SettingKeys lists the keys the site reads.
var SettingKeys = []string{SettingContact, SettingSocial, SettingSEO}

// IsSettingKey reports whether key is one of the known setting keys.
func IsSettingKey(key string) bool {
	for _, k := range SettingKeys {
		if k == key {
			return true
		}
	}
	return false
}

// SiteSetting is a row of the key/value settings table.
type SiteSetting struct {
	Key       string         `json:"key" gorm:"primaryKey;size:50"`
	Value     datatypes.JSON `json:"value" gorm:"type:json;not null"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TableName specifies the table name for SiteSetting.
func (SiteSetting) TableName() string {
	return "site_settings"
}
