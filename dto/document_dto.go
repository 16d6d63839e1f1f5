package dto

// PushDTO is the body of POST /documents/:id/push-to-jira/.
// IdempotencyKey is optional; clients that supply one get replay protection
// for retried submissions.
type PushDTO struct {
	ProjectKey      string `json:"project_key" binding:"required"`
	GitLabProjectID string `json:"gitlab_project_id" binding:"required"`
	IdempotencyKey  string `json:"idempotency_key"`
}
