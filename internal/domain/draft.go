// Package domain defines the core types shared across the agent service.
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Draft lifecycle states. A draft starts in DiscoveryMode and ends in
// exactly one of the terminal states.
const (
	DraftStateDiscovery = "DISCOVERY_MODE"
	DraftStateCancelled = "CANCELLED"
	DraftStatePublished = "PUBLISHED"
)

// RequiredFields gate publish eligibility, checked in this fixed order.
var RequiredFields = []string{
	FieldTitle,
	FieldCategory,
	FieldPrice,
	FieldLocation,
}

// Stable listing_data field vocabulary.
const (
	FieldTitle              = "title"
	FieldCategory           = "category"
	FieldPrice              = "price"
	FieldLocation           = "location"
	FieldCondition          = "condition"
	FieldDescription        = "description"
	FieldDescriptionNotes   = "description_notes"
	FieldDescriptionPending = "description_pending"
	FieldAttributes         = "attributes"
)

// Known attribute keys inside listing_data.attributes.
const (
	AttrYear         = "year"
	AttrKM           = "km"
	AttrFuel         = "fuel"
	AttrTransmission = "transmission"
	AttrTramer       = "tramer"
	AttrEngine       = "engine"
	AttrStorage      = "storage"
	AttrRAM          = "ram"
	AttrBattery      = "battery"
	AttrWarranty     = "warranty"
	AttrSize         = "size"
	AttrMaterial     = "material"
	AttrColor        = "color"
	AttrBrand        = "brand"
	AttrModel        = "model"
	AttrUsage        = "usage"
	AttrFeatures     = "features"
	AttrDimensions   = "dimensions"
)

// JSONMap maps a JSONB column to a loosely structured object.
type JSONMap map[string]any

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(src any) error {
	if src == nil {
		*m = JSONMap{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported JSONB source type %T", src)
	}
	if len(data) == 0 {
		*m = JSONMap{}
		return nil
	}
	return json.Unmarshal(data, m)
}

// String returns the string value under key, or "" when absent or not a string.
func (m JSONMap) String(key string) string {
	if m == nil {
		return ""
	}
	if s, ok := m[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// Bool returns the boolean value under key, false when absent.
func (m JSONMap) Bool(key string) bool {
	if m == nil {
		return false
	}
	b, _ := m[key].(bool)
	return b
}

// Text renders the value under key as a trimmed string regardless of its
// stored type. Prices, for example, arrive both as float64 and as string.
func (m JSONMap) Text(key string) string {
	if m == nil {
		return ""
	}
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}

// Map returns the nested object under key, nil-safe.
func (m JSONMap) Map(key string) JSONMap {
	if m == nil {
		return JSONMap{}
	}
	switch v := m[key].(type) {
	case JSONMap:
		return v
	case map[string]any:
		return JSONMap(v)
	default:
		return JSONMap{}
	}
}

// Draft is one user's in-progress listing. At most one non-terminal draft
// exists per user at a time.
type Draft struct {
	ID          string    `db:"id"           json:"id"`
	UserID      string    `db:"user_id"      json:"user_id"`
	State       string    `db:"state"        json:"state"`
	ListingData JSONMap   `db:"listing_data" json:"listing_data"`
	Images      JSONMap   `db:"images"       json:"images"`
	Vision      JSONMap   `db:"vision"       json:"vision"`
	CreatedAt   time.Time `db:"created_at"   json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"   json:"updated_at"`
}

// MediaURLs returns the ordered, deduplicated media references of the draft.
func (d *Draft) MediaURLs() []string {
	raw, ok := d.Images["urls"].([]any)
	if !ok {
		if typed, tok := d.Images["urls"].([]string); tok {
			return typed
		}
		return nil
	}
	urls := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, sok := v.(string); sok && s != "" {
			urls = append(urls, s)
		}
	}
	return urls
}

// Attributes returns the nested attribute map of the draft's listing data.
func (d *Draft) Attributes() JSONMap {
	return d.ListingData.Map(FieldAttributes)
}
