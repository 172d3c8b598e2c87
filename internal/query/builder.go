// Package query turns listing filters into storage predicates for projects.
package query

import (
	"strings"
	"time"

	"github.com/yukikurage/club-projects-api/internal/models"
	"gorm.io/gorm"
)

// Filter holds the optional listing filters. Zero values impose no constraint.
type Filter struct {
	Category   string
	Search     string
	Tags       []string
	Technology string
	StartDate  *time.Time
	EndDate    *time.Time
}

// Predicate is a fully resolved selection over projects. Status is always set.
type Predicate struct {
	Status      models.ProjectStatus
	Category    string
	SearchTerms []string
	Tags        []string
	Technology  string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// Public builds the predicate for anonymous listings. It is pinned to approved
// projects whatever the filter says.
func Public(f Filter) Predicate {
	return build(models.ProjectStatusApproved, f)
}

// Moderation builds the predicate for moderation queues, pinned to status.
// Callers are responsible for the admin check.
func Moderation(status models.ProjectStatus, f Filter) Predicate {
	return build(status, f)
}

func build(status models.ProjectStatus, f Filter) Predicate {
	p := Predicate{
		Status:      status,
		Category:    strings.TrimSpace(f.Category),
		SearchTerms: strings.Fields(strings.ToLower(f.Search)),
		Technology:  strings.ToLower(strings.TrimSpace(f.Technology)),
		CreatedFrom: f.StartDate,
		CreatedTo:   f.EndDate,
	}

	seen := make(map[string]struct{}, len(f.Tags))
	for _, tag := range f.Tags {
		for _, t := range strings.Split(tag, ",") {
			t = strings.ToLower(strings.TrimSpace(t))
			if t == "" {
				continue
			}
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			p.Tags = append(p.Tags, t)
		}
	}

	return p
}

// Matches evaluates the predicate against an in-memory project. It mirrors
// Scope and is used where projects are already loaded.
func (p Predicate) Matches(project models.Project) bool {
	if project.Status != p.Status {
		return false
	}
	if p.Category != "" && project.Category != p.Category {
		return false
	}
	tags := project.TagNames()
	if len(p.SearchTerms) > 0 {
		haystack := strings.ToLower(project.Title + " " + project.Description + " " + strings.Join(tags, " "))
		found := false
		for _, term := range p.SearchTerms {
			if strings.Contains(haystack, term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(p.Tags) > 0 && !anyIn(tags, p.Tags) {
		return false
	}
	if p.Technology != "" && !strings.Contains(strings.ToLower(project.Technologies), p.Technology) {
		return false
	}
	if p.CreatedFrom != nil && project.CreatedAt.Before(*p.CreatedFrom) {
		return false
	}
	if p.CreatedTo != nil && project.CreatedAt.After(*p.CreatedTo) {
		return false
	}
	return true
}

// Scope applies the predicate to a query over the projects table.
func (p Predicate) Scope() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("projects.status = ?", p.Status)

		if p.Category != "" {
			db = db.Where("projects.category = ?", p.Category)
		}
		if len(p.SearchTerms) > 0 {
			sql, args := searchClause(p.SearchTerms)
			db = db.Where(sql, args...)
		}
		if len(p.Tags) > 0 {
			db = db.Where("EXISTS (SELECT 1 FROM project_tags WHERE project_tags.project_id = projects.id AND project_tags.name IN ?)", p.Tags)
		}
		if p.Technology != "" {
			db = db.Where("LOWER(projects.technologies) LIKE ? ESCAPE '!'", containsPattern(p.Technology))
		}
		if p.CreatedFrom != nil {
			db = db.Where("projects.created_at >= ?", *p.CreatedFrom)
		}
		if p.CreatedTo != nil {
			db = db.Where("projects.created_at <= ?", *p.CreatedTo)
		}
		return db
	}
}

// searchClause matches any term against title, description or a tag.
func searchClause(terms []string) (string, []interface{}) {
	const termExpr = "LOWER(projects.title) LIKE ? ESCAPE '!' OR LOWER(projects.description) LIKE ? ESCAPE '!' OR " +
		"EXISTS (SELECT 1 FROM project_tags WHERE project_tags.project_id = projects.id AND project_tags.name LIKE ? ESCAPE '!')"

	exprs := make([]string, len(terms))
	args := make([]interface{}, 0, 3*len(terms))
	for i, term := range terms {
		pattern := containsPattern(term)
		exprs[i] = termExpr
		args = append(args, pattern, pattern, pattern)
	}
	return strings.Join(exprs, " OR "), args
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func anyIn(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
