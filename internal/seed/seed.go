// Package seed loads the initial catalog every store starts from and
// returns to on Reset.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nazeru/contractforge-go/internal/inventory"
	"github.com/nazeru/contractforge-go/internal/loyalty"
	"github.com/nazeru/contractforge-go/internal/pricing"
	"github.com/nazeru/contractforge-go/internal/user"
)

//go:embed seed.yaml
var defaultSeed []byte

type Data struct {
	Products []inventory.Product
	Users    []user.User
	Rules    []pricing.DiscountRule
}

type file struct {
	Products []inventory.Product `yaml:"products"`
	Users    []userEntry         `yaml:"users"`
	Rules    []ruleEntry         `yaml:"rules"`
}

type userEntry struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	LoyaltyTier string `yaml:"loyaltyTier"`
}

type ruleEntry struct {
	ID          string  `yaml:"id"`
	LoyaltyTier string  `yaml:"loyaltyTier"`
	Rate        float64 `yaml:"rate"`
	Description string  `yaml:"description"`
	Active      *bool   `yaml:"active"`
}

// Load reads path, or the embedded default when path is empty.
func Load(path string) (Data, error) {
	if strings.TrimSpace(path) == "" {
		return Parse(defaultSeed)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("read seed %s: %w", path, err)
	}
	d, err := Parse(raw)
	if err != nil {
		return Data{}, fmt.Errorf("seed %s: %w", path, err)
	}
	return d, nil
}

func Default() Data {
	d, err := Parse(defaultSeed)
	if err != nil {
		panic(err)
	}
	return d
}

func Parse(raw []byte) (Data, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Data{}, fmt.Errorf("decode yaml: %w", err)
	}

	var d Data
	seen := map[string]bool{}
	for _, p := range f.Products {
		if err := checkID("product", p.ID, seen); err != nil {
			return Data{}, err
		}
		if p.Stock < 0 || !(p.Price > 0) {
			return Data{}, fmt.Errorf("product %s: stock must be >= 0 and price > 0", p.ID)
		}
		d.Products = append(d.Products, p)
	}

	seen = map[string]bool{}
	for _, e := range f.Users {
		if err := checkID("user", e.ID, seen); err != nil {
			return Data{}, err
		}
		tier, ok := loyalty.Parse(e.LoyaltyTier)
		if !ok {
			return Data{}, fmt.Errorf("user %s: unknown loyalty tier %q", e.ID, e.LoyaltyTier)
		}
		d.Users = append(d.Users, user.User{ID: e.ID, Name: e.Name, LoyaltyTier: tier})
	}

	seen = map[string]bool{}
	for _, e := range f.Rules {
		if err := checkID("rule", e.ID, seen); err != nil {
			return Data{}, err
		}
		tier, ok := loyalty.Parse(e.LoyaltyTier)
		if !ok {
			return Data{}, fmt.Errorf("rule %s: unknown loyalty tier %q", e.ID, e.LoyaltyTier)
		}
		if e.Rate < 0 || e.Rate > 1 {
			return Data{}, fmt.Errorf("rule %s: rate must be between 0 and 1", e.ID)
		}
		active := true
		if e.Active != nil {
			active = *e.Active
		}
		d.Rules = append(d.Rules, pricing.DiscountRule{
			ID:          e.ID,
			LoyaltyTier: tier,
			Rate:        e.Rate,
			Description: e.Description,
			Active:      active,
		})
	}
	return d, nil
}

func checkID(kind, id string, seen map[string]bool) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s without id", kind)
	}
	if seen[id] {
		return fmt.Errorf("duplicate %s id %q", kind, id)
	}
	seen[id] = true
	return nil
}
