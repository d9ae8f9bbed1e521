package loyalty

import "strings"

// Tier is a user's loyalty classification.
type Tier string

const (
	Bronze Tier = "BRONZE"
	Silver Tier = "SILVER"
	Gold   Tier = "GOLD"
)

var Tiers = []Tier{Bronze, Silver, Gold}

// Normalize upper-cases and trims s without validating it.
func Normalize(s string) Tier {
	return Tier(strings.ToUpper(strings.TrimSpace(s)))
}

// Parse normalizes s and reports whether it names a known tier.
func Parse(s string) (Tier, bool) {
	t := Normalize(s)
	return t, t.Valid()
}

func (t Tier) Valid() bool {
	switch t {
	case Bronze, Silver, Gold:
		return true
	}
	return false
}

func (t Tier) String() string { return string(t) }
