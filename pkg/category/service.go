package category

import (
	"context"

	"github.com/klokku/clarity/internal/apperr"
	"github.com/klokku/clarity/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id int) (Category, error)
	UpdateCategory(ctx context.Context, id int, patch Patch) (Category, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) ListCategories(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

func (s *ServiceImpl) GetCategory(ctx context.Context, id int) (Category, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) UpdateCategory(ctx context.Context, id int, patch Patch) (Category, error) {
	if patch.IsEmpty() {
		return Category{}, apperr.Invalid("category", "nothing to update")
	}
	if err := patch.Validate(); err != nil {
		return Category{}, err
	}

	updated, err := s.repo.Update(ctx, id, patch.Normalize())
	if err != nil {
		return Category{}, err
	}

	// The change is already stored: publish even if the request was cancelled meanwhile.
	// A failing subscriber is logged, not reported to the caller.
	err = s.eventBus.Publish(event_bus.NewEvent(context.WithoutCancel(ctx), event_bus.CategoryUpdatedType, event_bus.CategoryUpdated{
		Id:           updated.Id,
		Name:         updated.Name,
		MonthlyLimit: updated.MonthlyLimit,
	}))
	if err != nil {
		log.Errorf("failed to publish category update event: %v", err)
	}
	return updated, nil
}
