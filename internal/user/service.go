package user

import (
	"context"

	"github.com/nazeru/contractforge-go/internal/catalog"
	"github.com/nazeru/contractforge-go/pkg/apperrors"
	"github.com/nazeru/contractforge-go/pkg/contracts"
)

const ServiceName = "user-service"

type Service struct {
	repo   catalog.Repository[User]
	events contracts.Publisher
}

func NewService(repo catalog.Repository[User], events contracts.Publisher) *Service {
	if events == nil {
		events = contracts.Discard
	}
	return &Service{repo: repo, events: events}
}

func NewStore(seed []User) *catalog.Store[User] {
	return catalog.NewStore("User", UserKey, seed)
}

func (s *Service) List() []User { return s.repo.List() }

func (s *Service) Find(id string) (User, bool) { return s.repo.Find(id) }

func (s *Service) Get(id string) (User, error) {
	u, ok := s.repo.Find(id)
	if !ok {
		return User{}, apperrors.NotFound(apperrors.CodeNotFound, "User with id '"+id+"' not found")
	}
	return u, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	u, err := in.user()
	if err != nil {
		return User{}, err
	}
	created, err := s.repo.Create(u, func(rec User) {
		catalog.Notify(ctx, s.events, ServiceName, contracts.EventUserCreated, rec.ID, rec)
	})
	if err != nil {
		return User{}, err
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (User, error) {
	updated, err := s.repo.Update(id, in.apply, func(rec User) {
		catalog.Notify(ctx, s.events, ServiceName, contracts.EventUserUpdated, rec.ID, rec)
	})
	if err != nil {
		return User{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.repo.Delete(id, func(rec User) {
		catalog.Notify(ctx, s.events, ServiceName, contracts.EventUserDeleted, rec.ID, nil)
	})
	return err
}

func (s *Service) Reset() { s.repo.Reset() }
