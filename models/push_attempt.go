package models

import (
	"time"

	"gorm.io/datatypes"
)

type PushState string

const (
	PushStatePending   PushState = "pending"
	PushStateJiraDone  PushState = "jira_done"
	PushStateCompleted PushState = "completed"
	PushStateFailed    PushState = "failed"
)

// PushAttempt is the persisted progress marker for one two-destination push.
// State advances pending -> jira_done -> completed; any failure lands on
// failed with Detail recording which half was already written.
type PushAttempt struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	DocumentID uint `gorm:"not null;index" json:"document_id"`
	// IdempotencyKey stays NULL for keyless pushes so the unique index only
	// bites when a client actually supplied a key.
	IdempotencyKey  *string        `gorm:"size:64;uniqueIndex" json:"idempotency_key,omitempty"`
	JiraProjectKey  string         `gorm:"size:100;not null" json:"project_key"`
	GitLabProjectID string         `gorm:"size:100;not null" json:"gitlab_project_id"`
	State           PushState      `gorm:"size:20;default:'pending';not null" json:"state"`
	Detail          datatypes.JSON `json:"detail"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// PushDetail is what gets serialized into PushAttempt.Detail.
type PushDetail struct {
	JiraIssues   []string `json:"jira_issues,omitempty"`
	GitLabIssues []int    `json:"gitlab_issues,omitempty"`
	Error        string   `json:"error,omitempty"`
}
