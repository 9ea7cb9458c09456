// Package layers decides which overlay layers render at a given zoom.
package layers

import (
	"errors"
	"fmt"
)

// ErrThresholdOrder is returned when tier thresholds are not strictly ascending.
var ErrThresholdOrder = errors.New("tier thresholds must be strictly ascending")

// Tier is a discrete detail level derived from the zoom factor.
type Tier int

const (
	Overview Tier = iota
	Regional
	Detailed
	Precise
	Maximum
)

var tierNames = [...]string{"overview", "regional", "detailed", "precise", "maximum"}

func (t Tier) String() string {
	if t < Overview || t > Maximum {
		return fmt.Sprintf("tier(%d)", int(t))
	}
	return tierNames[t]
}

// Tiers lists every tier in ascending order.
func Tiers() []Tier { return []Tier{Overview, Regional, Detailed, Precise, Maximum} }

// Kind identifies an overlay layer.
type Kind int

const (
	Parks Kind = iota
	Zones
	Animals
	Drones
	AnimalDetail
	Sensors
	Labels
)

var kindNames = [...]string{"parks", "zones", "animals", "drones", "animal-detail", "sensors", "labels"}

func (k Kind) String() string {
	if k < Parks || k > Labels {
		return fmt.Sprintf("layer(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds lists every layer in draw order.
func Kinds() []Kind { return []Kind{Parks, Zones, Animals, Drones, AnimalDetail, Sensors, Labels} }

// Thresholds holds the minimum zoom of each tier.
type Thresholds struct {
	Overview float64 `mapstructure:"overview"`
	Regional float64 `mapstructure:"regional"`
	Detailed float64 `mapstructure:"detailed"`
	Precise  float64 `mapstructure:"precise"`
	Maximum  float64 `mapstructure:"maximum"`
}

// DefaultThresholds matches the zoom-control steps of the map.
var DefaultThresholds = Thresholds{Overview: 0.75, Regional: 1.0, Detailed: 1.25, Precise: 1.5, Maximum: 2.0}

func (th Thresholds) ascending() [5]float64 {
	return [5]float64{th.Overview, th.Regional, th.Detailed, th.Precise, th.Maximum}
}

// Validate checks that every threshold is positive and strictly ascending.
func (th Thresholds) Validate() error {
	vals := th.ascending()
	if !(vals[0] > 0) {
		return fmt.Errorf("%w: overview threshold %v must be positive", ErrThresholdOrder, vals[0])
	}
	for i := 1; i < len(vals); i++ {
		if !(vals[i] > vals[i-1]) {
			return fmt.Errorf("%w: %s %v <= %s %v", ErrThresholdOrder, Tier(i), vals[i], Tier(i-1), vals[i-1])
		}
	}
	return nil
}

// DefaultRules is the minimum tier each layer needs.
var DefaultRules = map[Kind]Tier{
	Parks:        Overview,
	Zones:        Overview,
	Animals:      Overview,
	Drones:       Regional,
	AnimalDetail: Detailed,
	Sensors:      Precise,
	Labels:       Maximum,
}

// Policy maps zoom factors to tiers and tiers to layer visibility. It holds no
// mutable state and is safe to share.
type Policy struct {
	thresholds [5]float64
	rules      map[Kind]Tier
}

// NewPolicy builds a policy. Layers missing from rules never render.
func NewPolicy(th Thresholds, rules map[Kind]Tier) (*Policy, error) {
	if err := th.Validate(); err != nil {
		return nil, err
	}
	p := &Policy{thresholds: th.ascending(), rules: make(map[Kind]Tier, len(rules))}
	for k, t := range rules {
		p.rules[k] = t
	}
	return p, nil
}

// Default returns the stock policy.
func Default() *Policy {
	p, err := NewPolicy(DefaultThresholds, DefaultRules)
	if err != nil {
		panic(err)
	}
	return p
}

// TierFor returns the highest tier whose threshold is <= zoom, or Overview below the lowest.
func (p *Policy) TierFor(zoom float64) Tier {
	tier := Overview
	for _, t := range Tiers() {
		if zoom >= p.thresholds[t] {
			tier = t
		}
	}
	return tier
}

// Visible reports whether a layer renders at zoom.
func (p *Policy) Visible(kind Kind, zoom float64) bool {
	min, ok := p.rules[kind]
	if !ok {
		return false
	}
	return p.TierFor(zoom) >= min
}

// MinTier returns the tier a layer needs, if it has a rule.
func (p *Policy) MinTier(kind Kind) (Tier, bool) {
	t, ok := p.rules[kind]
	return t, ok
}

// Flags evaluates every layer at zoom.
func (p *Policy) Flags(zoom float64) map[Kind]bool {
	out := make(map[Kind]bool, len(kindNames))
	for _, k := range Kinds() {
		out[k] = p.Visible(k, zoom)
	}
	return out
}

// InverseScale is the factor that keeps a glyph at constant screen size while the
// basemap is scaled by zoom.
func InverseScale(zoom float64) float64 {
	if !(zoom > 0) {
		return 0
	}
	return 1 / zoom
}
