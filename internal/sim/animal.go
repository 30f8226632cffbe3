package sim

import (
	"math"
	"math/rand/v2"
)

// Animal is one individual. Exactly one cell's population owns it at any time;
// migration hands the pointer over, never copies it.
type Animal struct {
	Species Species
	Age     int
	Weight  float64
	Fitness float64

	appetite float64
	params   *SpeciesParams
}

// newAnimal creates an individual of the given species. A zero weight requests
// the default Gaussian draw from the species' birth-weight distribution.
func newAnimal(species Species, params *SpeciesParams, age int, weight float64, rng *rand.Rand) *Animal {
	if weight == 0 {
		weight = params.WBirth + params.SigmaBirth*rng.NormFloat64()
	}
	a := &Animal{
		Species:  species,
		Age:      age,
		Weight:   weight,
		params:   params,
		appetite: params.F,
	}
	a.computeFitness()
	return a
}

// computeFitness derives fitness from age and weight:
//
//	fitness = qpos(age, a_half, phi_age) * qneg(weight, w_half, phi_weight)
//
// with q±(x, x½, φ) = 1/(1+e^{±φ(x−x½)}). Both factors lie in (0,1), so the
// product needs no clamping. A non-positive weight forces fitness to zero.
func (a *Animal) computeFitness() {
	if a.Weight <= 0 {
		a.Fitness = 0
		return
	}
	p := a.params
	qPos := 1 / (1 + math.Exp(p.PhiAge*(float64(a.Age)-p.AHalf)))
	qNeg := 1 / (1 + math.Exp(-p.PhiWeight*(a.Weight-p.WHalf)))
	a.Fitness = qPos * qNeg
}

// RegainAppetite resets the remaining intake capacity to F. Called once per
// individual at the start of each feeding phase.
func (a *Animal) RegainAppetite() {
	a.appetite = a.params.F
}

// Appetite reports the remaining intake capacity for the current feeding phase.
func (a *Animal) Appetite() float64 {
	return a.appetite
}

// FeedAsHerbivore consumes up to the animal's appetite from the available
// fodder and returns the consumed amount; the caller decrements the cell's
// fodder by the same value.
func (a *Animal) FeedAsHerbivore(availableFodder float64) float64 {
	if availableFodder <= 0 {
		return 0
	}
	consumed := a.appetite
	if availableFodder < consumed {
		consumed = availableFodder
	}
	a.Weight += a.params.Beta * consumed
	a.computeFitness()
	return consumed
}

// AttemptKill resolves one predation attempt against a prey animal. A predator
// never takes prey at least as fit as itself; otherwise the kill probability
// is the fitness gap scaled by DeltaPhiMax, saturating at 1. On a kill the
// predator eats min(appetite, prey weight); the prey dies entirely even when
// the bite is partial.
func (a *Animal) AttemptKill(prey *Animal, rng *rand.Rand) bool {
	if a.Fitness <= prey.Fitness {
		return false
	}
	delta := a.Fitness - prey.Fitness
	prob := 1.0
	if delta < a.params.DeltaPhiMax {
		prob = delta / a.params.DeltaPhiMax
	}
	if rng.Float64() >= prob {
		return false
	}
	consumed := a.appetite
	if prey.Weight < consumed {
		consumed = prey.Weight
	}
	a.appetite -= consumed
	a.Weight += a.params.Beta * consumed
	a.computeFitness()
	return true
}

// AttemptBirth resolves one birth attempt against the cell's population size
// snapshot. The returned newborn is nil when no birth happens. A parent too
// light to carry the pregnancy (the zeta bound) or to cover the birth loss
// (the xi bound) aborts after the draws, keeping the draw sequence fixed.
func (a *Animal) AttemptBirth(popSize int, rng *rand.Rand) *Animal {
	p := a.params
	prob := p.Gamma * a.Fitness * float64(popSize-1)
	if prob > 1 {
		prob = 1
	}
	if rng.Float64() >= prob {
		return nil
	}
	newborn := newAnimal(a.Species, p, 0, 0, rng)
	if a.Weight < p.Zeta*(p.WBirth+p.SigmaBirth) {
		return nil
	}
	if a.Weight < p.Xi*newborn.Weight {
		return nil
	}
	a.Weight -= p.Xi * newborn.Weight
	a.computeFitness()
	return newborn
}

// DecideMigrate draws the annual migration decision with probability mu times
// fitness. The product is deliberately not clamped; values above 1 simply
// always migrate.
func (a *Animal) DecideMigrate(rng *rand.Rand) bool {
	return rng.Float64() < a.params.Mu*a.Fitness
}

// AgeOneYear advances age by one year.
func (a *Animal) AgeOneYear() {
	a.AgeYears(1)
}

// AgeYears advances age by n years at once.
func (a *Animal) AgeYears(n int) {
	a.Age += n
	a.computeFitness()
}

// ApplyMetabolism applies the annual weight loss eta*weight.
func (a *Animal) ApplyMetabolism() {
	a.Weight -= a.params.Eta * a.Weight
	a.computeFitness()
}

// EvaluateDeath decides whether the animal dies this year. Weight at or below
// zero is certain death and consumes no draw; otherwise death happens with
// probability omega*(1-fitness).
func (a *Animal) EvaluateDeath(rng *rand.Rand) bool {
	if a.Weight <= 0 {
		return true
	}
	return rng.Float64() < a.params.Omega*(1-a.Fitness)
}
