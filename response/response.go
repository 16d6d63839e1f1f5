package response

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	Token    string `json:"token"`
	UID      uint   `json:"user_id"`
	Username string `json:"username"`
}

type UploadResponse struct {
	ID         uint   `json:"id"`
	Message    string `json:"message"`
	JiraStatus string `json:"jira_status"`
}

type PushResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ProjectOption is one selector entry for the Jira/GitLab project dropdowns.
type ProjectOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
