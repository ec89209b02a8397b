package database

import (
	"context"

	"github.com/xavierca1/lead-intake/internal/entity"
)

// MultiLeadRecordRepository saves each record to every backend in order and
// stops at the first failure.
type MultiLeadRecordRepository struct {
	repos []entity.LeadRecordRepository
}

func NewMultiLeadRecordRepository(repos ...entity.LeadRecordRepository) *MultiLeadRecordRepository {
	return &MultiLeadRecordRepository{repos: repos}
}

func (m *MultiLeadRecordRepository) Save(ctx context.Context, record *entity.LeadRecord) error {
	for _, repo := range m.repos {
		if err := repo.Save(ctx, record); err != nil {
			return err
		}
	}
	return nil
}
