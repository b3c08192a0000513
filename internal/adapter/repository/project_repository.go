package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	appErrors "github.com/johnquangdev/meeting-intelligence/errors"
	"github.com/johnquangdev/meeting-intelligence/internal/domain/entities"
	repo "github.com/johnquangdev/meeting-intelligence/internal/domain/repositories"
)

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository backed by GORM
func NewProjectRepository(db *gorm.DB) repo.ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) FindByID(ctx context.Context, id string) (*entities.Project, error) {
	var project entities.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrProjectNotFound
		}
		return nil, appErrors.ErrDBQueryFailed("find_project", err)
	}
	return &project, nil
}

// likeEscaper makes LIKE wildcards in a keyword match literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *projectRepository) FindByNameLike(ctx context.Context, keyword string) (*entities.Project, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, nil
	}

	var projects []*entities.Project
	if err := r.db.WithContext(ctx).
		Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(keyword))+"%").
		Order("updated_at DESC").
		Limit(1).
		Find(&projects).Error; err != nil {
		return nil, appErrors.ErrDBQueryFailed("find_project_by_name", err)
	}
	if len(projects) == 0 {
		return nil, nil
	}
	return projects[0], nil
}

func (r *projectRepository) ListForMatching(ctx context.Context) ([]*entities.Project, error) {
	projects := []*entities.Project{}
	if err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&projects).Error; err != nil {
		return nil, appErrors.ErrDBQueryFailed("list_projects_for_matching", err)
	}
	return projects, nil
}

func (r *projectRepository) List(ctx context.Context, filter entities.ProjectFilter) ([]*entities.Project, error) {
	projects := []*entities.Project{}
	q := r.db.WithContext(ctx)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ClientID != "" {
		q = q.Where("client_id = ?", filter.ClientID)
	}
	if err := q.Order("updated_at DESC").Find(&projects).Error; err != nil {
		return nil, appErrors.ErrDBQueryFailed("list_projects", err)
	}
	return projects, nil
}

func (r *projectRepository) Dashboard(ctx context.Context, id string) (*entities.ProjectDashboard, error) {
	var row entities.ProjectDashboard
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrProjectNotFound
		}
		return nil, appErrors.ErrDBQueryFailed("read_project_dashboard", err)
	}
	return &row, nil
}
