// Package matcher associates meeting text with a tracked project.
package matcher

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
	"github.com/johnquangdev/meeting-intelligence/internal/domain/repositories"
)

// Matcher resolves free text to at most one project. A nil project with a nil
// error means no match.
type Matcher struct {
	projects repositories.ProjectRepository
	keywords []string
	logger   *zap.Logger
}

// NewMatcher creates a Matcher. When keywords is empty the names of all known
// projects are used instead.
func NewMatcher(projects repositories.ProjectRepository, keywords []string, logger *zap.Logger) *Matcher {
	cleaned := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			cleaned = append(cleaned, k)
		}
	}
	return &Matcher{projects: projects, keywords: cleaned, logger: logger}
}

// Match finds the first keyword contained in text (case-insensitive) and
// returns the most recently updated project whose name contains it
func (m *Matcher) Match(ctx context.Context, text string) (*entities.Project, error) {
	haystack := strings.ToLower(text)
	if strings.TrimSpace(haystack) == "" {
		return nil, nil
	}

	keywords := m.keywords
	if len(keywords) == 0 {
		projects, err := m.projects.ListForMatching(ctx)
		if err != nil {
			return nil, err
		}
		keywords = make([]string, 0, len(projects))
		for _, p := range projects {
			keywords = append(keywords, p.Name)
		}
	}

	for _, kw := range keywords {
		if kw == "" || !strings.Contains(haystack, strings.ToLower(kw)) {
			continue
		}
		project, err := m.projects.FindByNameLike(ctx, kw)
		if err != nil {
			return nil, err
		}
		if project != nil && m.logger != nil {
			m.logger.Debug("🔗 Matched project by keyword",
				zap.String("keyword", kw),
				zap.String("project_id", project.ID),
			)
		}
		// only the first keyword hit is looked up
		return project, nil
	}
	return nil, nil
}

// MatchTitle matches a meeting title against every project name and alias,
// most recently updated project first, then falls back to Match
func (m *Matcher) MatchTitle(ctx context.Context, title string) (*entities.Project, error) {
	haystack := strings.ToLower(title)
	if strings.TrimSpace(haystack) == "" {
		return nil, nil
	}

	projects, err := m.projects.ListForMatching(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		for _, candidate := range append([]string{p.Name}, p.AliasList()...) {
			candidate = strings.ToLower(strings.TrimSpace(candidate))
			if candidate != "" && strings.Contains(haystack, candidate) {
				return p, nil
			}
		}
	}

	return m.Match(ctx, title)
}
