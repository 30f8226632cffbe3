package sim

import "fmt"

// PopulationGroup is one population placement: a location and the animals to
// put there.
type PopulationGroup struct {
	Loc     Coord
	Animals []AnimalRecord
}

// Simulation wraps an Island with run bookkeeping: the year counter and the
// seed the run was started from. All inputs are validated eagerly, so once a
// year starts nothing can fail.
type Simulation struct {
	island *Island
	seed   int64
	year   int
}

// NewSimulation builds an island from the geography, places the initial
// population, and fixes the run seed.
func NewSimulation(geography string, initial []PopulationGroup, seed int64) (*Simulation, error) {
	island, err := NewIsland(geography, seed)
	if err != nil {
		return nil, err
	}
	s := &Simulation{island: island, seed: seed}
	if err := s.AddPopulation(initial); err != nil {
		return nil, err
	}
	return s, nil
}

// Island exposes the underlying island for snapshot queries.
func (s *Simulation) Island() *Island {
	return s.island
}

// Seed reports the seed the run was started from.
func (s *Simulation) Seed() int64 {
	return s.seed
}

// Year reports the number of completed annual cycles.
func (s *Simulation) Year() int {
	return s.year
}

// Simulate advances the simulation by the given number of annual cycles.
func (s *Simulation) Simulate(years int) {
	for n := 0; n < years; n++ {
		s.island.RunAnnualCycle()
		s.year++
	}
}

// AddPopulation places animals on the island, one group per location. The
// whole call is validated before any group is applied, so a bad group leaves
// the island untouched.
func (s *Simulation) AddPopulation(groups []PopulationGroup) error {
	for _, group := range groups {
		if err := s.island.ValidatePopulation(group.Loc, group.Animals); err != nil {
			return fmt.Errorf("place population at %s: %w", group.Loc, err)
		}
	}
	for _, group := range groups {
		if err := s.island.AddPopulation(group.Loc, group.Animals); err != nil {
			return fmt.Errorf("place population at %s: %w", group.Loc, err)
		}
	}
	return nil
}

// SetSpeciesParams updates the parameter table for one species.
func (s *Simulation) SetSpeciesParams(species string, updates map[string]float64) error {
	return s.island.SetSpeciesParams(species, updates)
}

// SetTerrainParams updates the parameter table for one terrain kind.
func (s *Simulation) SetTerrainParams(terrain string, updates map[string]float64) error {
	return s.island.SetTerrainParams(terrain, updates)
}

// NumAnimals totals the animals of both species on the island.
func (s *Simulation) NumAnimals() int {
	return s.island.Count(SpeciesHerbivore) + s.island.Count(SpeciesCarnivore)
}

// NumAnimalsPerSpecies reports the island totals keyed by species name.
func (s *Simulation) NumAnimalsPerSpecies() map[string]int {
	return map[string]int{
		SpeciesHerbivore.String(): s.island.Count(SpeciesHerbivore),
		SpeciesCarnivore.String(): s.island.Count(SpeciesCarnivore),
	}
}
