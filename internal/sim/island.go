package sim

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Coord addresses one cell, 1-indexed from the top-left corner.
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Island owns the coordinate-to-cell map and drives the annual cycle. It also
// owns the run's single random generator and the parameter registry shared by
// every cell and animal, so overrides apply island-wide and never leak between
// simulations.
//
// Every stochastic decision in a cycle draws from the one generator in a fixed
// order: cells in row-major coordinate order, herbivores before carnivores,
// and animals in population order except where a phase sorts or shuffles.
// That makes a run fully reproducible from (geography, placements, seed).
type Island struct {
	cells  map[Coord]*Cell
	coords []Coord
	rows   int
	cols   int

	registry *Registry
	rng      *rand.Rand
}

// NewIsland builds an island from a geography string: one letter per cell,
// rows separated by newlines, rectangular, with a full water border.
func NewIsland(geography string, seed int64) (*Island, error) {
	rows := strings.Split(strings.ReplaceAll(strings.TrimSpace(geography), "\r\n", "\n"), "\n")
	width := len(rows[0])
	if width == 0 {
		return nil, fmt.Errorf("geography must not be empty")
	}
	for r, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("geography must be rectangular: row %d has %d columns, want %d", r+1, len(row), width)
		}
	}

	island := &Island{
		cells:    make(map[Coord]*Cell, len(rows)*width),
		rows:     len(rows),
		cols:     width,
		registry: NewRegistry(),
		rng:      seededRNG(seed),
	}
	for r, row := range rows {
		for col := 0; col < width; col++ {
			loc := Coord{Row: r + 1, Col: col + 1}
			terrain, ok := terrainFromLetter(row[col])
			if !ok {
				if row[col] == ' ' {
					return nil, fmt.Errorf("hole in the geography at %s: fill it with one of W, L, H, D", loc)
				}
				return nil, fmt.Errorf("invalid terrain letter %q at %s: valid letters are W, L, H, D", string(row[col]), loc)
			}
			border := r == 0 || r == len(rows)-1 || col == 0 || col == width-1
			if border && terrain != TerrainWater {
				return nil, fmt.Errorf("border cell at %s must be water, got %s", loc, terrain)
			}
			island.cells[loc] = newCell(terrain, island.registry)
			island.coords = append(island.coords, loc)
		}
	}
	return island, nil
}

// Dimensions reports the grid size in rows and columns.
func (i *Island) Dimensions() (rows, cols int) {
	return i.rows, i.cols
}

// CellAt looks up the cell at a coordinate.
func (i *Island) CellAt(loc Coord) (*Cell, bool) {
	c, ok := i.cells[loc]
	return c, ok
}

// Neighbors returns the four orthogonal neighbor coordinates, north, south,
// east, west. The water border guarantees no habitable cell's neighbor falls
// off the grid.
func (i *Island) Neighbors(loc Coord) [4]Coord {
	return [4]Coord{
		{Row: loc.Row - 1, Col: loc.Col},
		{Row: loc.Row + 1, Col: loc.Col},
		{Row: loc.Row, Col: loc.Col + 1},
		{Row: loc.Row, Col: loc.Col - 1},
	}
}

// AddPopulation places animals at a location. An unknown location, a water
// cell, or an invalid record rejects the whole call.
func (i *Island) AddPopulation(loc Coord, records []AnimalRecord) error {
	cell, ok := i.cells[loc]
	if !ok {
		return fmt.Errorf("location %s is outside the island boundaries", loc)
	}
	return cell.AddPopulation(records, i.rng)
}

// ValidatePopulation checks a placement without applying it.
func (i *Island) ValidatePopulation(loc Coord, records []AnimalRecord) error {
	cell, ok := i.cells[loc]
	if !ok {
		return fmt.Errorf("location %s is outside the island boundaries", loc)
	}
	_, err := cell.validateRecords(records)
	return err
}

// SetSpeciesParams updates the parameter table for one species, affecting all
// its animals from now on.
func (i *Island) SetSpeciesParams(species string, updates map[string]float64) error {
	s, err := ParseSpecies(species)
	if err != nil {
		return err
	}
	return i.registry.SetSpeciesParams(s, updates)
}

// SetTerrainParams updates the parameter table for one terrain kind, keyed by
// its geography letter.
func (i *Island) SetTerrainParams(terrain string, updates map[string]float64) error {
	t, err := ParseTerrain(terrain)
	if err != nil {
		return err
	}
	return i.registry.SetTerrainParams(t, updates)
}

// MigrateAll runs the two-phase migration exchange. Every habitable cell
// stages its emigrants before any cell commits, so each decision is made
// against the fixed pre-migration population and nobody moves twice. An
// emigrant that draws a water neighbor is returned to its origin cell's
// staging list, so a failed move is silent and the animal stays home.
func (i *Island) MigrateAll() {
	for _, loc := range i.coords {
		cell := i.cells[loc]
		if !cell.Terrain.Habitable() {
			continue
		}
		neighbors := i.Neighbors(loc)
		herbs, carns := cell.StageMigrants(i.rng)
		i.placeMigrants(cell, neighbors, herbs)
		i.placeMigrants(cell, neighbors, carns)
	}
	for _, loc := range i.coords {
		cell := i.cells[loc]
		if cell.Terrain.Habitable() {
			cell.CommitMigrants()
		}
	}
}

func (i *Island) placeMigrants(origin *Cell, neighbors [4]Coord, migrants []*Animal) {
	for _, a := range migrants {
		dest := i.cells[neighbors[i.rng.IntN(len(neighbors))]]
		if dest.Terrain.Habitable() {
			dest.ReceiveMigrant(a)
		} else {
			origin.ReceiveMigrant(a)
		}
	}
}

// RunAnnualCycle advances the whole island by one year in the fixed order:
// pre-migration (regrowth, feeding, reproduction) for every cell, then the
// migration exchange, then post-migration (aging, metabolism, death).
func (i *Island) RunAnnualCycle() {
	for _, loc := range i.coords {
		if cell := i.cells[loc]; cell.Terrain.Habitable() {
			cell.RunPreMigration(i.rng)
		}
	}
	i.MigrateAll()
	for _, loc := range i.coords {
		if cell := i.cells[loc]; cell.Terrain.Habitable() {
			cell.RunPostMigration(i.rng)
		}
	}
}

// Count totals the population of one species across the island.
func (i *Island) Count(s Species) int {
	total := 0
	for _, cell := range i.cells {
		total += cell.NumAnimals(s)
	}
	return total
}

// CountMatrix returns the per-cell population counts for one species as a
// rows-by-cols matrix.
func (i *Island) CountMatrix(s Species) [][]int {
	matrix := make([][]int, i.rows)
	for r := range matrix {
		matrix[r] = make([]int, i.cols)
	}
	for loc, cell := range i.cells {
		matrix[loc.Row-1][loc.Col-1] = cell.NumAnimals(s)
	}
	return matrix
}

// FitnessValues flattens the fitness of every animal of one species, in
// row-major cell order.
func (i *Island) FitnessValues(s Species) []float64 {
	var values []float64
	for _, loc := range i.coords {
		for _, a := range i.cells[loc].Animals(s) {
			values = append(values, a.Fitness)
		}
	}
	return values
}

// AgeValues flattens the age of every animal of one species, in row-major
// cell order.
func (i *Island) AgeValues(s Species) []int {
	var values []int
	for _, loc := range i.coords {
		for _, a := range i.cells[loc].Animals(s) {
			values = append(values, a.Age)
		}
	}
	return values
}

// WeightValues flattens the weight of every animal of one species, in
// row-major cell order.
func (i *Island) WeightValues(s Species) []float64 {
	var values []float64
	for _, loc := range i.coords {
		for _, a := range i.cells[loc].Animals(s) {
			values = append(values, a.Weight)
		}
	}
	return values
}
