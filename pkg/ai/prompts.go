package ai

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Prompts holds the system prompts for the three generation passes. A YAML
// file can override any of them, so prompt tuning does not need a rebuild.
type Prompts struct {
	Tickets   string `yaml:"tickets"`
	Summary   string `yaml:"summary"`
	Questions string `yaml:"questions"`
}

func DefaultPrompts() Prompts {
	return Prompts{
		Tickets: "You are a technical project manager. Break the following project document " +
			"into engineering tickets. Respond with a JSON array; each element has keys " +
			"title, description, priority (LOW, MEDIUM or HIGH) and estimated_hours (a number). " +
			"Respond with JSON only, no prose.",
		Summary: "You are a technical project manager. Write a short scope summary of the " +
			"following project document: what is being built, for whom, and the main deliverables.",
		Questions: "You are a technical project manager. List the clarifying questions you would " +
			"ask the document's author before starting work, one per line.",
	}
}

// LoadPrompts returns the defaults merged with overrides from path, if set.
func LoadPrompts(path string) (Prompts, error) {
	p := DefaultPrompts()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	var override Prompts
	if err := yaml.Unmarshal(data, &override); err != nil {
		return p, err
	}
	if override.Tickets != "" {
		p.Tickets = override.Tickets
	}
	if override.Summary != "" {
		p.Summary = override.Summary
	}
	if override.Questions != "" {
		p.Questions = override.Questions
	}
	return p, nil
}
