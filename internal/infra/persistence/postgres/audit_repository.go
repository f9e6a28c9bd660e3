package postgres

import (
	"context"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// auditRepository implements the repository.AuditRepository interface.
type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository is the constructor for auditRepository.
func NewAuditRepository(db *gorm.DB) repository.AuditRepository {
	return &auditRepository{
		db: db,
	}
}

// Create appends an admin action record.
func (repo *auditRepository) Create(ctx context.Context, record *entity.AuditRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	actionM := &model.AdminActionModel{
		ID:          record.ID,
		ActorID:     record.ActorID,
		ActionType:  string(record.Action),
		TargetID:    record.TargetID,
		Description: record.Description,
		CreatedAt:   record.CreatedAt,
	}

	if err := repo.db.WithContext(ctx).Create(actionM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to record admin action")
	}

	record.CreatedAt = actionM.CreatedAt

	return nil
}

// List returns a page of admin actions, newest first.
func (repo *auditRepository) List(ctx context.Context, opts repository.ListOptions) ([]*entity.AuditRecord, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.AdminActionModel{}).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count admin actions")
	}

	var actionModels []*model.AdminActionModel
	if err := paginate(query, opts).
		Order("created_at DESC").
		Find(&actionModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list admin actions")
	}

	records := make([]*entity.AuditRecord, 0, len(actionModels))
	for _, actionM := range actionModels {
		records = append(records, toAuditDomain(actionM))
	}

	return records, total, nil
}
