package model

import "time"

// Well-known site setting keys.  Settings are free-form key/value pairs so
// admins can add new ones without a schema change; these constants cover the
// keys the application itself reads.
const (
	SettingUPIID            = "upi_id"
	SettingStorePhone       = "store_phone"
	SettingDeliveryPincodes = "delivery_pincodes"
)

// Setting is a site-wide configuration row keyed by a natural string key.
// Upserts on the key are idempotent.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
