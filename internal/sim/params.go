package sim

import (
	"fmt"

	"github.com/agnivade/levenshtein"
)

// Species identifies one of the two animal kinds living on the island.
type Species int

const (
	SpeciesHerbivore Species = iota
	SpeciesCarnivore
)

func (s Species) String() string {
	switch s {
	case SpeciesHerbivore:
		return "Herbivore"
	case SpeciesCarnivore:
		return "Carnivore"
	default:
		return fmt.Sprintf("Species(%d)", int(s))
	}
}

// ParseSpecies resolves a population-record species tag.
func ParseSpecies(tag string) (Species, error) {
	switch tag {
	case "Herbivore":
		return SpeciesHerbivore, nil
	case "Carnivore":
		return SpeciesCarnivore, nil
	}
	msg := fmt.Sprintf("unknown species %q; valid species are Herbivore and Carnivore", tag)
	if hint, ok := nearestName(tag, []string{"Herbivore", "Carnivore"}); ok {
		msg += fmt.Sprintf(" (did you mean %q?)", hint)
	}
	return 0, fmt.Errorf("%s", msg)
}

// SpeciesParams holds the behavioral coefficients shared by every animal of one
// species. Animals keep a handle to their species' entry in a Registry, so a
// successful update applies to all of them from that point on.
type SpeciesParams struct {
	WBirth     float64
	SigmaBirth float64
	Beta       float64
	Eta        float64
	AHalf      float64
	PhiAge     float64
	WHalf      float64
	PhiWeight  float64
	Mu         float64
	Gamma      float64
	Zeta       float64
	Xi         float64
	Omega      float64
	F          float64

	// DeltaPhiMax caps the fitness-gap-to-kill-probability conversion and is
	// meaningful for carnivores only.
	DeltaPhiMax float64
}

func defaultHerbivoreParams() SpeciesParams {
	return SpeciesParams{
		WBirth: 8.0, SigmaBirth: 1.5,
		Beta: 0.9, Eta: 0.05,
		AHalf: 40.0, PhiAge: 0.6,
		WHalf: 10.0, PhiWeight: 0.1,
		Mu: 0.25, Gamma: 0.2,
		Zeta: 3.5, Xi: 1.2,
		Omega: 0.4, F: 10.0,
	}
}

func defaultCarnivoreParams() SpeciesParams {
	return SpeciesParams{
		WBirth: 6.0, SigmaBirth: 1.0,
		Beta: 0.75, Eta: 0.125,
		AHalf: 40.0, PhiAge: 0.3,
		WHalf: 4.0, PhiWeight: 0.4,
		Mu: 0.4, Gamma: 0.8,
		Zeta: 3.5, Xi: 1.1,
		Omega: 0.8, F: 50.0,
		DeltaPhiMax: 10.0,
	}
}

var speciesParamNames = []string{
	"w_birth", "sigma_birth", "beta", "eta", "a_half", "phi_age",
	"w_half", "phi_weight", "mu", "gamma", "zeta", "xi", "omega", "F",
	"DeltaPhiMax",
}

// Registry owns the mutable parameter tables for both species and the fodder
// capacities per terrain kind. Each Island has its own Registry, so overrides
// in one simulation never leak into another.
type Registry struct {
	herbivore SpeciesParams
	carnivore SpeciesParams
	fodderMax [terrainCount]float64
}

func NewRegistry() *Registry {
	r := &Registry{
		herbivore: defaultHerbivoreParams(),
		carnivore: defaultCarnivoreParams(),
	}
	r.fodderMax[TerrainLowland] = 800
	r.fodderMax[TerrainHighland] = 300
	r.fodderMax[TerrainDesert] = 0
	r.fodderMax[TerrainWater] = 0
	return r
}

// Params returns the live parameter handle for a species.
func (r *Registry) Params(s Species) *SpeciesParams {
	if s == SpeciesCarnivore {
		return &r.carnivore
	}
	return &r.herbivore
}

// FodderMax reports the regrowth capacity for a terrain kind.
func (r *Registry) FodderMax(t Terrain) float64 {
	return r.fodderMax[t]
}

// SetSpeciesParams validates and applies a parameter update for one species.
// The update is all-or-nothing: any invalid name or value rejects the whole
// call and leaves the previous parameters in place.
func (r *Registry) SetSpeciesParams(s Species, updates map[string]float64) error {
	for name, value := range updates {
		if err := validateSpeciesParam(s, name, value); err != nil {
			return err
		}
	}
	p := r.Params(s)
	for name, value := range updates {
		applySpeciesParam(p, name, value)
	}
	return nil
}

func validateSpeciesParam(s Species, name string, value float64) error {
	known := false
	for _, candidate := range speciesParamNames {
		if candidate == name {
			known = true
			break
		}
	}
	if !known {
		msg := fmt.Sprintf("unknown parameter %q for %s", name, s)
		if hint, ok := nearestName(name, speciesParamNames); ok {
			msg += fmt.Sprintf(" (did you mean %q?)", hint)
		}
		return fmt.Errorf("%s", msg)
	}

	switch name {
	case "DeltaPhiMax":
		if s != SpeciesCarnivore {
			return fmt.Errorf("parameter DeltaPhiMax does not apply to %s", s)
		}
		if value <= 0 {
			return fmt.Errorf("parameter DeltaPhiMax must be strictly positive, got %v", value)
		}
	case "eta":
		if value < 0 {
			return fmt.Errorf("parameter eta must be non-negative, got %v", value)
		}
		if value > 1 {
			return fmt.Errorf("parameter eta must be <= 1, got %v", value)
		}
	default:
		if value < 0 {
			return fmt.Errorf("parameter %s must be non-negative, got %v", name, value)
		}
	}
	return nil
}

func applySpeciesParam(p *SpeciesParams, name string, value float64) {
	switch name {
	case "w_birth":
		p.WBirth = value
	case "sigma_birth":
		p.SigmaBirth = value
	case "beta":
		p.Beta = value
	case "eta":
		p.Eta = value
	case "a_half":
		p.AHalf = value
	case "phi_age":
		p.PhiAge = value
	case "w_half":
		p.WHalf = value
	case "phi_weight":
		p.PhiWeight = value
	case "mu":
		p.Mu = value
	case "gamma":
		p.Gamma = value
	case "zeta":
		p.Zeta = value
	case "xi":
		p.Xi = value
	case "omega":
		p.Omega = value
	case "F":
		p.F = value
	case "DeltaPhiMax":
		p.DeltaPhiMax = value
	}
}

// SetTerrainParams validates and applies a terrain parameter update. Fodder
// capacity is only consulted on Lowland and Highland, so updates on Desert and
// Water are rejected rather than silently accepted.
func (r *Registry) SetTerrainParams(t Terrain, updates map[string]float64) error {
	for name, value := range updates {
		if name != "f_max" {
			msg := fmt.Sprintf("unknown parameter %q for %s", name, t)
			if hint, ok := nearestName(name, []string{"f_max"}); ok {
				msg += fmt.Sprintf(" (did you mean %q?)", hint)
			}
			return fmt.Errorf("%s", msg)
		}
		if t == TerrainDesert || t == TerrainWater {
			return fmt.Errorf("f_max cannot be changed for %s: only Lowland and Highland grow fodder", t)
		}
		if value < 0 {
			return fmt.Errorf("parameter f_max must be non-negative, got %v", value)
		}
	}
	for _, value := range updates {
		r.fodderMax[t] = value
	}
	return nil
}

// nearestName suggests the closest known name for a mistyped key.
func nearestName(token string, candidates []string) (string, bool) {
	best := ""
	bestDist := -1
	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(token, cand)
		if dist > nameDistanceLimit(len(cand)) {
			continue
		}
		if bestDist == -1 || dist < bestDist {
			best = cand
			bestDist = dist
		}
	}
	return best, bestDist != -1
}

func nameDistanceLimit(n int) int {
	if n <= 4 {
		return 1
	}
	if n <= 8 {
		return 2
	}
	return 3
}
