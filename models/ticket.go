package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
)

func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return true
	}
	return false
}

type TicketStatus string

const (
	TicketStatusPending    TicketStatus = "PENDING"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusCompleted  TicketStatus = "COMPLETED"
)

// Hours is an estimate in hours. It persists as a numeric column but keeps
// the historical wire format: a JSON string like "4.5". Decoding accepts a
// bare number as well.
type Hours float64

const MaxEstimateHours = 1000

func ParseHours(s string) (Hours, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("estimated_hours must be numeric: %q", s)
	}
	if v <= 0 || v > MaxEstimateHours {
		return 0, fmt.Errorf("estimated_hours out of range (0, %d]: %v", MaxEstimateHours, v)
	}
	return Hours(v), nil
}

func (h Hours) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatFloat(float64(h), 'f', -1, 64))
}

// UnmarshalJSON accepts any numeric value. Range checks belong to the input
// paths (PATCH, ingestion) via ParseHours; the server legitimately serves
// "0" for tickets whose estimate was discarded, and those documents must
// still decode.
func (h *Hours) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, perr := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if perr != nil {
			return fmt.Errorf("estimated_hours must be numeric: %q", s)
		}
		*h = Hours(v)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*h = Hours(f)
	return nil
}

type Ticket struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	DocumentID     uint           `gorm:"not null;index" json:"-"`
	Title          string         `gorm:"size:200;not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Priority       TicketPriority `gorm:"size:10;default:'MEDIUM';not null" json:"priority"`
	Status         TicketStatus   `gorm:"size:20;default:'PENDING';not null" json:"status"`
	EstimatedHours Hours          `gorm:"type:numeric" json:"estimated_hours"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}
