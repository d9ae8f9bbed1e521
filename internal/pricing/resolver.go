package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/nazeru/contractforge-go/internal/loyalty"
)

const Currency = "GBP"

type Quote struct {
	ProductID     string  `json:"productId"`
	UserID        string  `json:"userId"`
	BasePrice     float64 `json:"basePrice"`
	Discount      float64 `json:"discount"`
	FinalPrice    float64 `json:"finalPrice"`
	Currency      string  `json:"currency"`
	DiscountRate  float64 `json:"discountRate"`
	AppliedRuleID string  `json:"appliedRuleId,omitempty"`
}

// RuleSource lists rules in insertion order.
type RuleSource interface {
	List() []DiscountRule
}

type Resolver struct {
	rules RuleSource
}

func NewResolver(rules RuleSource) *Resolver {
	return &Resolver{rules: rules}
}

// Match returns the first active rule for tier in insertion order.
func (r *Resolver) Match(tier string) (DiscountRule, bool) {
	t := loyalty.Normalize(tier)
	for _, rule := range r.rules.List() {
		if rule.LoyaltyTier == t && rule.Active {
			return rule, true
		}
	}
	return DiscountRule{}, false
}

// CalculateQuote prices basePrice for a user of tier. The discount is
// rounded to a whole currency unit, halves away from zero. A tier with no
// active rule gets no discount.
func (r *Resolver) CalculateQuote(productID, userID string, basePrice float64, tier string) Quote {
	q := Quote{
		ProductID:  productID,
		UserID:     userID,
		BasePrice:  basePrice,
		FinalPrice: basePrice,
		Currency:   Currency,
	}
	rule, ok := r.Match(tier)
	if !ok {
		return q
	}
	base := decimal.NewFromFloat(basePrice)
	discount := base.Mul(decimal.NewFromFloat(rule.Rate)).Round(0)
	q.Discount = discount.InexactFloat64()
	q.FinalPrice = base.Sub(discount).InexactFloat64()
	q.DiscountRate = rule.Rate
	q.AppliedRuleID = rule.ID
	return q
}
