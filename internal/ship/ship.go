package ship

// State is the dynamic half of a vessel: hull, fuel and the two-stage
// hull-alert flags. The static half lives in the catalog's ShipSpec.
type State struct {
	SpecID    string  `json:"spec_id"`
	Health    float64 `json:"health"`
	MaxHealth int     `json:"max_health"`
	Fuel      int     `json:"fuel"`
	MaxFuel   int     `json:"max_fuel"`

	AlertHalf    bool `json:"alert_half"`
	AlertQuarter bool `json:"alert_quarter"`
}

// New returns a fresh ship at full hull and full tanks.
func New(specID string, maxHealth, maxFuel int) *State {
	return &State{
		SpecID:    specID,
		Health:    float64(maxHealth),
		MaxHealth: maxHealth,
		Fuel:      maxFuel,
		MaxFuel:   maxFuel,
	}
}

// Damage reduces hull integrity and flips the alert flags as the hull
// crosses the 50% and 25% marks. Health never goes below zero.
func (s *State) Damage(amount float64) {
	if amount <= 0 {
		return
	}
	s.Health -= amount
	if s.Health < 0 {
		s.Health = 0
	}
	s.refreshAlerts()
}

// Repair restores hull integrity, capped at max, and clears alert flags the
// hull has climbed back above.
func (s *State) Repair(amount float64) {
	if amount <= 0 {
		return
	}
	s.Health += amount
	if s.Health > float64(s.MaxHealth) {
		s.Health = float64(s.MaxHealth)
	}
	s.refreshAlerts()
}

func (s *State) refreshAlerts() {
	max := float64(s.MaxHealth)
	s.AlertHalf = s.Health <= max*0.5
	s.AlertQuarter = s.Health <= max*0.25
}

// Destroyed reports whether the hull has failed.
func (s *State) Destroyed() bool {
	return s.Health <= 0
}

// AddFuel adds fuel, clamped to [0, MaxFuel]. Negative amounts drain.
func (s *State) AddFuel(amount int) {
	s.Fuel += amount
	if s.Fuel < 0 {
		s.Fuel = 0
	}
	if s.Fuel > s.MaxFuel {
		s.Fuel = s.MaxFuel
	}
}
