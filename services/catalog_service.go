package services

import (
	"context"
	"strconv"

	"github.com/ticketflowai/ticketflow/response"
)

// CatalogService maps external project listings into the {value,label}
// selector options the detail view binds its dropdowns to.
type CatalogService struct {
	jira   JiraGateway
	gitlab GitLabGateway
}

func NewCatalogService(jiraGW JiraGateway, gitlabGW GitLabGateway) *CatalogService {
	return &CatalogService{jira: jiraGW, gitlab: gitlabGW}
}

func (s *CatalogService) JiraProjects(ctx context.Context) ([]response.ProjectOption, error) {
	projects, err := s.jira.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	options := make([]response.ProjectOption, 0, len(projects))
	for _, p := range projects {
		options = append(options, response.ProjectOption{Value: p.Key, Label: p.Name})
	}
	return options, nil
}

func (s *CatalogService) GitLabProjects(ctx context.Context) ([]response.ProjectOption, error) {
	projects, err := s.gitlab.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	options := make([]response.ProjectOption, 0, len(projects))
	for _, p := range projects {
		options = append(options, response.ProjectOption{Value: strconv.Itoa(p.ID), Label: p.PathWithNamespace})
	}
	return options, nil
}
