package sim

import (
	"fmt"
	"math/rand/v2"
	"sort"
)

// Terrain enumerates the four built-in terrain kinds.
type Terrain int

const (
	TerrainLowland Terrain = iota
	TerrainHighland
	TerrainDesert
	TerrainWater

	terrainCount = 4
)

func (t Terrain) String() string {
	switch t {
	case TerrainLowland:
		return "Lowland"
	case TerrainHighland:
		return "Highland"
	case TerrainDesert:
		return "Desert"
	case TerrainWater:
		return "Water"
	default:
		return fmt.Sprintf("Terrain(%d)", int(t))
	}
}

// Habitable reports whether the terrain may host animal populations.
func (t Terrain) Habitable() bool {
	return t != TerrainWater
}

// Letter returns the one-character geography code for the terrain.
func (t Terrain) Letter() string {
	return [terrainCount]string{"L", "H", "D", "W"}[t]
}

func terrainFromLetter(letter byte) (Terrain, bool) {
	switch letter {
	case 'L':
		return TerrainLowland, true
	case 'H':
		return TerrainHighland, true
	case 'D':
		return TerrainDesert, true
	case 'W':
		return TerrainWater, true
	}
	return 0, false
}

// ParseTerrain resolves a terrain key as used in parameter updates, accepting
// the geography letter.
func ParseTerrain(key string) (Terrain, error) {
	if len(key) == 1 {
		if t, ok := terrainFromLetter(key[0]); ok {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown terrain %q; valid terrains are L, H, D, W", key)
}

// AnimalRecord describes one animal in a population placement. A zero Weight
// requests the default Gaussian birth-weight draw.
type AnimalRecord struct {
	Species string
	Age     int
	Weight  float64
}

// Cell is one location on the island: a terrain kind, its current fodder, and
// the two resident populations. The incoming lists hold migrants between the
// staging and commit halves of the migration phase and are empty otherwise.
type Cell struct {
	Terrain Terrain
	Fodder  float64

	herbs []*Animal
	carns []*Animal

	incomingHerbs []*Animal
	incomingCarns []*Animal

	registry *Registry
}

func newCell(t Terrain, registry *Registry) *Cell {
	return &Cell{
		Terrain:  t,
		Fodder:   registry.FodderMax(t),
		registry: registry,
	}
}

// NumAnimals reports the resident count for one species.
func (c *Cell) NumAnimals(s Species) int {
	return len(c.population(s))
}

// Animals exposes the resident population for one species. Callers must treat
// the slice as read-only.
func (c *Cell) Animals(s Species) []*Animal {
	return c.population(s)
}

func (c *Cell) population(s Species) []*Animal {
	if s == SpeciesCarnivore {
		return c.carns
	}
	return c.herbs
}

// AddPopulation places animals in the cell. The whole call is validated up
// front: a non-habitable cell, an unknown species tag, a negative age, or a
// negative weight rejects every record and leaves the populations unchanged.
func (c *Cell) AddPopulation(records []AnimalRecord, rng *rand.Rand) error {
	species, err := c.validateRecords(records)
	if err != nil {
		return err
	}
	for i, rec := range records {
		s := species[i]
		a := newAnimal(s, c.registry.Params(s), rec.Age, rec.Weight, rng)
		if s == SpeciesCarnivore {
			c.carns = append(c.carns, a)
		} else {
			c.herbs = append(c.herbs, a)
		}
	}
	return nil
}

func (c *Cell) validateRecords(records []AnimalRecord) ([]Species, error) {
	if !c.Terrain.Habitable() {
		return nil, fmt.Errorf("population cannot be placed on %s", c.Terrain)
	}
	species := make([]Species, len(records))
	for i, rec := range records {
		s, err := ParseSpecies(rec.Species)
		if err != nil {
			return nil, err
		}
		if rec.Age < 0 {
			return nil, fmt.Errorf("animal age must be >= 0, got %d", rec.Age)
		}
		if rec.Weight < 0 {
			return nil, fmt.Errorf("animal weight must be positive, got %v", rec.Weight)
		}
		species[i] = s
	}
	return species, nil
}

// Regrow resets the fodder to the terrain's capacity at the start of a cycle.
func (c *Cell) Regrow() {
	c.Fodder = c.registry.FodderMax(c.Terrain)
}

// ResolveHerbivoreFeeding lets the herbivores graze in descending fitness
// order, strongest first, until the fodder runs out. Equal fitness keeps the
// current population order (stable sort).
func (c *Cell) ResolveHerbivoreFeeding() {
	for _, h := range c.herbs {
		h.RegainAppetite()
	}
	sortByFitness(c.herbs, true)
	for _, h := range c.herbs {
		if c.Fodder <= 0 {
			break
		}
		c.Fodder -= h.FeedAsHerbivore(c.Fodder)
	}
}

// ResolvePredation runs the hunting season. Carnivores hunt in a shuffled
// order so no predator gets a standing fitness priority; each works through
// the prey from weakest to strongest until its appetite is spent or no prey
// remains. Killed prey leave the population immediately.
func (c *Cell) ResolvePredation(rng *rand.Rand) {
	rng.Shuffle(len(c.carns), func(i, j int) {
		c.carns[i], c.carns[j] = c.carns[j], c.carns[i]
	})
	for _, carn := range c.carns {
		carn.RegainAppetite()
		if len(c.herbs) == 0 || carn.Appetite() <= 0 {
			continue
		}
		sortByFitness(c.herbs, false)
		survivors := make([]*Animal, 0, len(c.herbs))
		for i, prey := range c.herbs {
			if carn.Appetite() <= 0 {
				survivors = append(survivors, c.herbs[i:]...)
				break
			}
			if !carn.AttemptKill(prey, rng) {
				survivors = append(survivors, prey)
			}
		}
		c.herbs = survivors
	}
}

// ResolveReproduction gives every current resident one birth attempt against
// the population size snapshot taken before the pass. Newborns are appended
// after the full pass, so they never attempt a birth in the same cycle.
func (c *Cell) ResolveReproduction(rng *rand.Rand) {
	c.herbs = append(c.herbs, newborns(c.herbs, rng)...)
	c.carns = append(c.carns, newborns(c.carns, rng)...)
}

func newborns(pop []*Animal, rng *rand.Rand) []*Animal {
	size := len(pop)
	var born []*Animal
	for _, parent := range pop {
		if child := parent.AttemptBirth(size, rng); child != nil {
			born = append(born, child)
		}
	}
	return born
}

// StageMigrants removes and returns every resident that decided to migrate
// this cycle, herbivores then carnivores, each in population order.
func (c *Cell) StageMigrants(rng *rand.Rand) (herbs, carns []*Animal) {
	c.herbs, herbs = splitMigrators(c.herbs, rng)
	c.carns, carns = splitMigrators(c.carns, rng)
	return herbs, carns
}

func splitMigrators(pop []*Animal, rng *rand.Rand) (staying, leaving []*Animal) {
	staying = make([]*Animal, 0, len(pop))
	for _, a := range pop {
		if a.DecideMigrate(rng) {
			leaving = append(leaving, a)
		} else {
			staying = append(staying, a)
		}
	}
	return staying, leaving
}

// ReceiveMigrant stages an arriving animal. Arrivals only join the live
// population at commit, so they cannot be re-staged in the same cycle.
func (c *Cell) ReceiveMigrant(a *Animal) {
	if a.Species == SpeciesCarnivore {
		c.incomingCarns = append(c.incomingCarns, a)
	} else {
		c.incomingHerbs = append(c.incomingHerbs, a)
	}
}

// CommitMigrants folds the staged arrivals into the live populations and
// clears the staging lists. Must run only after every cell finished staging.
func (c *Cell) CommitMigrants() {
	c.herbs = append(c.herbs, c.incomingHerbs...)
	c.carns = append(c.carns, c.incomingCarns...)
	c.incomingHerbs = nil
	c.incomingCarns = nil
}

// AgePopulation ages both resident populations by one year.
func (c *Cell) AgePopulation() {
	for _, a := range c.herbs {
		a.AgeOneYear()
	}
	for _, a := range c.carns {
		a.AgeOneYear()
	}
}

// ApplyMetabolismPopulation applies the annual weight loss to both resident
// populations.
func (c *Cell) ApplyMetabolismPopulation() {
	for _, a := range c.herbs {
		a.ApplyMetabolism()
	}
	for _, a := range c.carns {
		a.ApplyMetabolism()
	}
}

// CullPopulation removes every resident whose death rule fires this year.
func (c *Cell) CullPopulation(rng *rand.Rand) {
	c.herbs = cullDead(c.herbs, rng)
	c.carns = cullDead(c.carns, rng)
}

func cullDead(pop []*Animal, rng *rand.Rand) []*Animal {
	survivors := make([]*Animal, 0, len(pop))
	for _, a := range pop {
		if !a.EvaluateDeath(rng) {
			survivors = append(survivors, a)
		}
	}
	return survivors
}

// RunPreMigration runs the first macro-phase of the annual cycle for the cell:
// regrowth, herbivore feeding, predation, then reproduction.
func (c *Cell) RunPreMigration(rng *rand.Rand) {
	c.Regrow()
	c.ResolveHerbivoreFeeding()
	c.ResolvePredation(rng)
	c.ResolveReproduction(rng)
}

// RunPostMigration runs the closing macro-phase: aging, metabolism, death.
func (c *Cell) RunPostMigration(rng *rand.Rand) {
	c.AgePopulation()
	c.ApplyMetabolismPopulation()
	c.CullPopulation(rng)
}

func sortByFitness(pop []*Animal, descending bool) {
	sort.SliceStable(pop, func(i, j int) bool {
		if descending {
			return pop[i].Fitness > pop[j].Fitness
		}
		return pop[i].Fitness < pop[j].Fitness
	})
}
