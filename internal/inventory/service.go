package inventory

import (
	"context"

	"github.com/nazeru/contractforge-go/internal/catalog"
	"github.com/nazeru/contractforge-go/pkg/apperrors"
	"github.com/nazeru/contractforge-go/pkg/contracts"
)

const ServiceName = "inventory-service"

type Service struct {
	repo   catalog.Repository[Product]
	events contracts.Publisher
}

func NewService(repo catalog.Repository[Product], events contracts.Publisher) *Service {
	if events == nil {
		events = contracts.Discard
	}
	return &Service{repo: repo, events: events}
}

// NewStore builds the product store seeded with products.
func NewStore(seed []Product) *catalog.Store[Product] {
	return catalog.NewStore("Product", ProductKey, seed)
}

func (s *Service) List() []Product {
	return s.repo.List()
}

// Find reports absence with ok=false rather than an error.
func (s *Service) Find(id string) (Product, bool) {
	return s.repo.Find(id)
}

func (s *Service) Get(id string) (Product, error) {
	p, ok := s.repo.Find(id)
	if !ok {
		return Product{}, apperrors.NotFound(apperrors.CodeNotFound, "Product with id '"+id+"' not found")
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Product, error) {
	p, err := in.product()
	if err != nil {
		return Product{}, err
	}
	created, err := s.repo.Create(p, func(rec Product) {
		catalog.Notify(ctx, s.events, ServiceName, contracts.EventProductCreated, rec.ID, rec)
	})
	if err != nil {
		return Product{}, err
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Product, error) {
	updated, err := s.repo.Update(id, in.apply, func(rec Product) {
		catalog.Notify(ctx, s.events, ServiceName, contracts.EventProductUpdated, rec.ID, rec)
	})
	if err != nil {
		return Product{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.repo.Delete(id, func(rec Product) {
		catalog.Notify(ctx, s.events, ServiceName, contracts.EventProductDeleted, rec.ID, nil)
	})
	return err
}

func (s *Service) Reset() { s.repo.Reset() }
