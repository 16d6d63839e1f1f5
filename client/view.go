package client

import (
	"context"
	"sync"

	"github.com/ticketflowai/ticketflow/models"
	"github.com/ticketflowai/ticketflow/response"
)

// DocumentView is the detail-view session for one document: the loaded
// aggregate, the project selector options, and the edit/push flows bound to
// it. All state it holds is a cache of the last full server fetch; every
// write is followed by a re-fetch rather than a local merge.
type DocumentView struct {
	client *Client
	id     uint

	mu             sync.Mutex
	doc            *models.Document
	jiraProjects   []response.ProjectOption
	gitlabProjects []response.ProjectOption
	pushing        bool
	generation     uint64
}

// ProjectSelection pairs the two independently chosen destination projects.
// Valid only until the push for which it was assembled completes.
type ProjectSelection struct {
	ProjectKey      string
	GitLabProjectID string
}

func (s ProjectSelection) Complete() bool {
	return s.ProjectKey != "" && s.GitLabProjectID != ""
}

func NewDocumentView(c *Client, documentID uint) *DocumentView {
	return &DocumentView{client: c, id: documentID}
}

// Load fetches the document and both project selector lists. Like the
// browser, a newer Load supersedes an older one.
func (v *DocumentView) Load(ctx context.Context) error {
	v.mu.Lock()
	v.generation++
	gen := v.generation
	v.mu.Unlock()

	doc, err := v.client.GetDocument(ctx, v.id)
	if err != nil {
		return &LoadFailure{Err: err}
	}
	jiraProjects, err := v.client.JiraProjects(ctx)
	if err != nil {
		return &LoadFailure{Err: err}
	}
	gitlabProjects, err := v.client.GitLabProjects(ctx)
	if err != nil {
		return &LoadFailure{Err: err}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.generation {
		return nil
	}
	v.doc = doc
	v.jiraProjects = jiraProjects
	v.gitlabProjects = gitlabProjects
	return nil
}

// Document returns the last-fetched aggregate, or nil before Load.
func (v *DocumentView) Document() *models.Document {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.doc
}

// Actions reports the affordances for the current lifecycle state.
func (v *DocumentView) Actions() Actions {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.doc == nil {
		return Actions{}
	}
	return AllowedActions(v.doc.JiraStatus)
}

func (v *DocumentView) JiraProjects() []response.ProjectOption {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.jiraProjects
}

func (v *DocumentView) GitLabProjects() []response.ProjectOption {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.gitlabProjects
}

// refresh re-fetches the aggregate and installs it unless the view has been
// superseded. Fetch errors leave the previous state in place.
func (v *DocumentView) refresh(ctx context.Context) error {
	v.mu.Lock()
	gen := v.generation
	v.mu.Unlock()

	doc, err := v.client.GetDocument(ctx, v.id)
	if err != nil {
		return &LoadFailure{Err: err}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen == v.generation {
		v.doc = doc
	}
	return nil
}
