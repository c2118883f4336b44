package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveID matches user input against a set of entity IDs: exact match
// first, then unique prefix.
func resolveID(kind, input string, ids []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}

	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func (a *App) resolveLeadID(ctx context.Context, input string) (string, error) {
	leads, err := a.Leads.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(leads))
	for _, l := range leads {
		ids = append(ids, l.ID)
	}
	return resolveID("lead", input, ids)
}

func (a *App) resolveDealID(ctx context.Context, input string) (string, error) {
	deals, err := a.Deals.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(deals))
	for _, d := range deals {
		ids = append(ids, d.ID)
	}
	return resolveID("deal", input, ids)
}

func (a *App) resolveProjectID(ctx context.Context, input string) (string, error) {
	projects, err := a.Projects.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	return resolveID("project", input, ids)
}
