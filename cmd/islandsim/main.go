package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/appengine-ltd/islandsim/internal/sim"
)

const demoGeography = `WWWWWWWWWWW
WLLLLLLLLLW
WLLLLHHLLLW
WLLLLHHLLLW
WLLDDDHLLLW
WLLDDDHLLLW
WLLLLLLLLLW
WWWWWWWWWWW`

func main() {
	var mapPath string
	var years int
	var seed int64
	var herbivores int
	var carnivores int

	flag.StringVar(&mapPath, "map", "", "path to a geography file (default: built-in demo island)")
	flag.IntVar(&years, "years", 100, "number of annual cycles to run")
	flag.Int64Var(&seed, "seed", 1, "random seed for the run")
	flag.IntVar(&herbivores, "herbivores", 150, "initial herbivore count")
	flag.IntVar(&carnivores, "carnivores", 40, "initial carnivore count")
	flag.Parse()

	geography := demoGeography
	if strings.TrimSpace(mapPath) != "" {
		raw, err := os.ReadFile(mapPath)
		if err != nil {
			die(fmt.Sprintf("read map: %v", err))
		}
		geography = string(raw)
	}

	simulation, err := sim.NewSimulation(geography, nil, seed)
	if err != nil {
		die(err.Error())
	}

	loc, ok := firstHabitable(simulation.Island())
	if !ok {
		die("the island has no habitable cells")
	}
	groups := []sim.PopulationGroup{
		{Loc: loc, Animals: records("Herbivore", herbivores, 5, 20)},
		{Loc: loc, Animals: records("Carnivore", carnivores, 5, 20)},
	}
	if err := simulation.AddPopulation(groups); err != nil {
		die(err.Error())
	}

	fmt.Printf("%6s %12s %12s\n", "year", "herbivores", "carnivores")
	for y := 0; y < years; y++ {
		simulation.Simulate(1)
		counts := simulation.NumAnimalsPerSpecies()
		fmt.Printf("%6d %12d %12d\n", simulation.Year(), counts["Herbivore"], counts["Carnivore"])
		if simulation.NumAnimals() == 0 {
			fmt.Println("the island is empty; stopping early")
			break
		}
	}
}

func records(species string, count, age int, weight float64) []sim.AnimalRecord {
	out := make([]sim.AnimalRecord, count)
	for i := range out {
		out[i] = sim.AnimalRecord{Species: species, Age: age, Weight: weight}
	}
	return out
}

func firstHabitable(island *sim.Island) (sim.Coord, bool) {
	rows, cols := island.Dimensions()
	for r := 1; r <= rows; r++ {
		for c := 1; c <= cols; c++ {
			loc := sim.Coord{Row: r, Col: c}
			if cell, ok := island.CellAt(loc); ok && cell.Terrain.Habitable() {
				return loc, true
			}
		}
	}
	return sim.Coord{}, false
}

func die(msg string) {
	fmt.Fprintln(os.Stderr, "error:", msg)
	os.Exit(1)
}
