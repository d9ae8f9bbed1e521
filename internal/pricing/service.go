package pricing

import (
	"context"

	"github.com/nazeru/contractforge-go/internal/catalog"
	"github.com/nazeru/contractforge-go/pkg/apperrors"
	"github.com/nazeru/contractforge-go/pkg/contracts"
)

const ServiceName = "pricing-service"

type Service struct {
	repo     catalog.Repository[DiscountRule]
	resolver *Resolver
	events   contracts.Publisher
}

func NewService(repo catalog.Repository[DiscountRule], events contracts.Publisher) *Service {
	if events == nil {
		events = contracts.Discard
	}
	return &Service{repo: repo, resolver: NewResolver(repo), events: events}
}

func NewStore(seed []DiscountRule) *catalog.Store[DiscountRule] {
	return catalog.NewStore("Discount rule", RuleKey, seed)
}

func (s *Service) Quote(productID, userID string, basePrice float64, tier string) Quote {
	return s.resolver.CalculateQuote(productID, userID, basePrice, tier)
}

func (s *Service) ListRules() []DiscountRule { return s.repo.List() }

func (s *Service) FindRule(id string) (DiscountRule, bool) { return s.repo.Find(id) }

func (s *Service) GetRule(id string) (DiscountRule, error) {
	r, ok := s.repo.Find(id)
	if !ok {
		return DiscountRule{}, apperrors.NotFound(apperrors.CodeNotFound, "Discount rule with id '"+id+"' not found")
	}
	return r, nil
}

func (s *Service) CreateRule(ctx context.Context, in CreateRuleInput) (DiscountRule, error) {
	rule, err := in.rule()
	if err != nil {
		return DiscountRule{}, err
	}
	created, err := s.repo.Create(rule, func(rec DiscountRule) {
		catalog.Notify(ctx, s.events, ServiceName, contracts.EventRuleCreated, rec.ID, rec)
	})
	if err != nil {
		return DiscountRule{}, err
	}
	return created, nil
}

func (s *Service) UpdateRule(ctx context.Context, id string, in UpdateRuleInput) (DiscountRule, error) {
	updated, err := s.repo.Update(id, in.apply, func(rec DiscountRule) {
		catalog.Notify(ctx, s.events, ServiceName, contracts.EventRuleUpdated, rec.ID, rec)
	})
	if err != nil {
		return DiscountRule{}, err
	}
	return updated, nil
}

func (s *Service) DeleteRule(ctx context.Context, id string) error {
	_, err := s.repo.Delete(id, func(rec DiscountRule) {
		catalog.Notify(ctx, s.events, ServiceName, contracts.EventRuleDeleted, rec.ID, nil)
	})
	return err
}

func (s *Service) Reset() { s.repo.Reset() }
