package models

import "time"

type DocumentStatus string

const (
	DocumentStatusUnprocessed DocumentStatus = "UNPROCESSED"
	DocumentStatusProcessed   DocumentStatus = "PROCESSED"
	DocumentStatusPushed      DocumentStatus = "PUSHED"
	DocumentStatusFailed      DocumentStatus = "FAILED"
	DocumentStatusError       DocumentStatus = "ERROR"
)

func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentStatusUnprocessed, DocumentStatusProcessed,
		DocumentStatusPushed, DocumentStatusFailed, DocumentStatusError:
		return true
	}
	return false
}

// Terminal reports whether no further transition exists for the status.
func (s DocumentStatus) Terminal() bool {
	switch s {
	case DocumentStatusPushed, DocumentStatusFailed, DocumentStatusError:
		return true
	}
	return false
}

// CanTransition enumerates the only legal moves: UNPROCESSED -> PROCESSED|ERROR
// after ingestion, PROCESSED -> PUSHED|FAILED after a push attempt.
func (s DocumentStatus) CanTransition(to DocumentStatus) bool {
	switch s {
	case DocumentStatusUnprocessed:
		return to == DocumentStatusProcessed || to == DocumentStatusError
	case DocumentStatusProcessed:
		return to == DocumentStatusPushed || to == DocumentStatusFailed
	}
	return false
}

type Document struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	FileName            string         `gorm:"size:255;not null" json:"file_name"`
	ObjectKey           string         `gorm:"size:255;not null" json:"-"`
	ContentType         string         `gorm:"size:100" json:"-"`
	Content             string         `gorm:"type:text" json:"-"`
	JiraStatus          DocumentStatus `gorm:"size:20;default:'UNPROCESSED';not null" json:"jira_status"`
	ScopeSummary        string         `gorm:"type:text" json:"scope_summary"`
	ClarifyingQuestions string         `gorm:"type:text" json:"clarifying_questions"`
	Tickets             []Ticket       `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE" json:"tickets"`
	UploadedAt          time.Time      `gorm:"autoCreateTime" json:"uploaded_at"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime" json:"-"`
}
