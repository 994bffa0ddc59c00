package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lorencia/portal/internal/logger"
	"github.com/lorencia/portal/internal/siteconfig"
	"github.com/lorencia/portal/internal/store"
	"github.com/lorencia/portal/models"
)

// adminService backs the admin area: dashboard stats, news management,
// account management and the site configuration forms.
type adminService struct {
	userRepository  store.UserRepository
	newsRepository  store.NewsRepository
	adminRepository store.AdminRepository

	db     *store.DB
	site   *siteconfig.Store
	logger *logger.Logger
}

func NewAdminService(users store.UserRepository, news store.NewsRepository, admin store.AdminRepository, db *store.DB, site *siteconfig.Store, logger *logger.Logger) AdminService {
	return &adminService{
		userRepository:  users,
		newsRepository:  news,
		adminRepository: admin,
		db:              db,
		site:            site,
		logger:          logger,
	}
}

func (a *adminService) Stats(ctx context.Context) (store.AdminStats, error) {
	stats, err := a.adminRepository.GetStats(ctx)
	if err != nil {
		return store.AdminStats{}, fmt.Errorf("stats query failed: %w", err)
	}
	return stats, nil
}

func (a *adminService) ListNews(ctx context.Context) ([]models.News, error) {
	news, err := a.newsRepository.ListNews(ctx)
	if err != nil {
		return nil, fmt.Errorf("news listing failed: %w", err)
	}
	return news, nil
}

func (a *adminService) CreateNews(ctx context.Context, news models.News) (models.News, error) {
	if err := validateNews(news); err != nil {
		return models.News{}, err
	}

	created, err := a.newsRepository.CreateNews(ctx, news)
	if err != nil {
		return models.News{}, fmt.Errorf("news creation failed: %w", err)
	}
	return created, nil
}

func (a *adminService) UpdateNews(ctx context.Context, news models.News) error {
	if err := validateNews(news); err != nil {
		return err
	}

	if err := a.newsRepository.UpdateNews(ctx, news); err != nil {
		return fmt.Errorf("news update failed: %w", err)
	}
	return nil
}

func (a *adminService) DeleteNews(ctx context.Context, id int64) error {
	if err := a.newsRepository.DeleteNews(ctx, id); err != nil {
		return fmt.Errorf("news deletion failed: %w", err)
	}
	return nil
}

func validateNews(news models.News) error {
	fields := map[string]string{}
	if news.Title == "" {
		fields["title"] = "title is required"
	}
	if news.Content == "" {
		fields["content"] = "content is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (a *adminService) ListUsers(ctx context.Context, page, perPage int, search string) (store.UserPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	users, err := a.adminRepository.ListUsers(ctx, page, perPage, search)
	if err != nil {
		return store.UserPage{}, fmt.Errorf("user listing failed: %w", err)
	}
	return users, nil
}

// UpdateUser applies a partial account update and returns the updated row.
func (a *adminService) UpdateUser(ctx context.Context, update store.UserUpdate) (models.User, error) {
	fields := map[string]string{}
	if update.Email != nil && !emailRe.MatchString(*update.Email) {
		fields["email"] = "invalid email address"
	}
	if update.Role != nil && *update.Role != models.RoleUser && *update.Role != models.RoleAdmin {
		fields["role"] = "role must be user or admin"
	}
	if update.Credits != nil && *update.Credits < 0 {
		fields["credits"] = "credits must not be negative"
	}
	if len(fields) > 0 {
		return models.User{}, &ValidationError{Fields: fields}
	}

	if err := a.adminRepository.UpdateUser(ctx, update); err != nil {
		return models.User{}, fmt.Errorf("user update failed: %w", err)
	}

	user, err := a.userRepository.FindUserByID(ctx, update.ID)
	if err != nil {
		return models.User{}, fmt.Errorf("updated user lookup failed: %w", err)
	}
	return user, nil
}

func (a *adminService) SiteConfig(ctx context.Context) (siteconfig.Config, error) {
	return a.site.Snapshot(), nil
}

// SaveSiteConfig replaces one section of the site configuration document
// and returns the resulting document.
func (a *adminService) SaveSiteConfig(ctx context.Context, section string, raw json.RawMessage) (siteconfig.Config, error) {
	log := logger.FromContext(ctx)

	if err := a.site.SaveSection(section, raw); err != nil {
		log.Err(err).Str("section", section).Msg("site config save failed")
		return siteconfig.Config{}, err
	}

	log.Info().Str("section", section).Msg("site config section saved")
	return a.site.Snapshot(), nil
}

// InitDB applies the embedded schema migrations. Safe to call repeatedly:
// already-applied migrations are skipped.
func (a *adminService) InitDB(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if err := a.db.Migrate(); err != nil {
		log.Err(err).Msg("schema migration failed")
		return fmt.Errorf("schema migration failed: %w", err)
	}

	log.Info().Msg("schema migrations applied")
	return nil
}
