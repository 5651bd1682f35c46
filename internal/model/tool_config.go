package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// ToolImportantDates is the config key holding a user's dated-item list.
const ToolImportantDates = "important_dates"

// ToolConfig is one configurable journaling tool owned by a user, keyed by
// tool name. The payload shape depends on the tool.
type ToolConfig struct {
	ID        uint           `gorm:"primaryKey"`
	UserID    string         `gorm:"index:idx_user_tool_key,unique"`
	Key       string         `gorm:"index:idx_user_tool_key,unique"`
	Data      datatypes.JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DatedItem is one entry of the important-dates tool. Year may be a
// placeholder; matching ignores it. Subtitle is optional.
type DatedItem struct {
	Date     string `json:"date"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

// Items decodes the important-dates payload. A missing or malformed payload
// yields an empty list, never an error.
func (c *ToolConfig) Items() []DatedItem {
	if c == nil || len(c.Data) == 0 {
		return nil
	}
	var payload struct {
		Items []DatedItem `json:"items"`
	}
	if err := json.Unmarshal(c.Data, &payload); err != nil {
		return nil
	}
	return payload.Items
}
