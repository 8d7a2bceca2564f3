package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/passgate/passgate/internal/admin/domain"
	"github.com/passgate/passgate/internal/auth/password"
	"github.com/passgate/passgate/internal/clock"
	"github.com/passgate/passgate/internal/permission"
	"github.com/passgate/passgate/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minPasswordLength = 8

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("admin.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateAdminRequest) (domain.Admin, error) {
	fullName := strings.TrimSpace(req.FullName)
	if len(fullName) < 2 {
		return domain.Admin{}, domain.ErrInvalidName
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return domain.Admin{}, err
	}
	if len(req.Password) < minPasswordLength {
		return domain.Admin{}, domain.ErrWeakPassword
	}

	perms, err := s.resolvePermissions(ctx, req.Permissions)
	if err != nil {
		return domain.Admin{}, err
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return domain.Admin{}, err
	}

	now := s.clock.Now()
	admin := domain.Admin{
		ID:           s.genID.Generate(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		Permissions:  perms,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Insert(ctx, s.db, &admin); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Admin{}, domain.ErrEmailTaken
		}
		return domain.Admin{}, err
	}

	s.log.Info("admin created",
		zap.String("admin_id", admin.ID.String()),
		zap.String("email", admin.Email),
		zap.Strings("permissions", admin.PermissionNames()),
	)
	return admin, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateAdminRequest) (domain.Admin, error) {
	adminID, err := s.parseID(id)
	if err != nil {
		return domain.Admin{}, err
	}

	admin, err := s.repo.FindByID(ctx, s.db, adminID)
	if err != nil {
		return domain.Admin{}, err
	}
	if admin == nil {
		return domain.Admin{}, domain.ErrNotFound
	}

	if req.FullName != nil {
		fullName := strings.TrimSpace(*req.FullName)
		if len(fullName) < 2 {
			return domain.Admin{}, domain.ErrInvalidName
		}
		admin.FullName = fullName
	}
	if req.Email != nil {
		email, err := normalizeEmail(*req.Email)
		if err != nil {
			return domain.Admin{}, err
		}
		admin.Email = email
	}
	if req.Password != nil {
		if len(*req.Password) < minPasswordLength {
			return domain.Admin{}, domain.ErrWeakPassword
		}
		hash, err := password.Hash(*req.Password)
		if err != nil {
			return domain.Admin{}, err
		}
		admin.PasswordHash = hash
	}

	var perms []domain.Permission
	if req.Permissions != nil {
		perms, err = s.resolvePermissions(ctx, *req.Permissions)
		if err != nil {
			return domain.Admin{}, err
		}
	}
	admin.UpdatedAt = s.clock.Now()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Update(ctx, tx, admin); err != nil {
			return err
		}
		if req.Permissions != nil {
			if err := s.repo.ReplacePermissions(ctx, tx, admin, perms); err != nil {
				return err
			}
			admin.Permissions = perms
		}
		return nil
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Admin{}, domain.ErrEmailTaken
		}
		return domain.Admin{}, err
	}
	return *admin, nil
}

func (s *Service) Delete(ctx context.Context, id string, actorID string) error {
	adminID, err := s.parseID(id)
	if err != nil {
		return err
	}
	if id == actorID {
		return domain.ErrSelfDelete
	}

	admin, err := s.repo.FindByID(ctx, s.db, adminID)
	if err != nil {
		return err
	}
	if admin == nil {
		return domain.ErrNotFound
	}

	if err := s.repo.Delete(ctx, s.db, adminID); err != nil {
		return err
	}
	s.log.Info("admin deleted",
		zap.String("admin_id", id),
		zap.String("actor_id", actorID),
	)
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Admin, error) {
	adminID, err := s.parseID(id)
	if err != nil {
		return domain.Admin{}, err
	}
	admin, err := s.repo.FindByID(ctx, s.db, adminID)
	if err != nil {
		return domain.Admin{}, err
	}
	if admin == nil {
		return domain.Admin{}, domain.ErrNotFound
	}
	return *admin, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (domain.Admin, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return domain.Admin{}, err
	}
	admin, err := s.repo.FindByEmail(ctx, s.db, normalized)
	if err != nil {
		return domain.Admin{}, err
	}
	if admin == nil {
		return domain.Admin{}, domain.ErrNotFound
	}
	return *admin, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Admin, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) ListPermissions(ctx context.Context) ([]domain.Permission, error) {
	return s.repo.ListPermissions(ctx, s.db)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, s.db)
}

// resolvePermissions maps requested names to seeded permission rows,
// rejecting names outside the fixed vocabulary.
func (s *Service) resolvePermissions(ctx context.Context, names []string) ([]domain.Permission, error) {
	if len(names) == 0 {
		return nil, nil
	}
	for _, name := range names {
		if !permission.Valid(name) {
			return nil, domain.ErrUnknownPermission
		}
	}
	perms, err := s.repo.FindPermissionsByNames(ctx, s.db, names)
	if err != nil {
		return nil, err
	}
	if len(perms) != len(names) {
		return nil, domain.ErrUnknownPermission
	}
	return perms, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return "", domain.ErrInvalidEmail
	}
	return email, nil
}
