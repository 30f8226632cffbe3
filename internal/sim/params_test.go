package sim

import (
	"strings"
	"testing"
)

func TestDefaultParameters(t *testing.T) {
	r := NewRegistry()

	herb := r.Params(SpeciesHerbivore)
	if herb.WBirth != 8.0 || herb.F != 10.0 || herb.DeltaPhiMax != 0 {
		t.Fatalf("unexpected herbivore defaults: %+v", herb)
	}
	carn := r.Params(SpeciesCarnivore)
	if carn.WBirth != 6.0 || carn.F != 50.0 || carn.DeltaPhiMax != 10.0 {
		t.Fatalf("unexpected carnivore defaults: %+v", carn)
	}

	if r.FodderMax(TerrainLowland) != 800 {
		t.Fatalf("lowland f_max = %v, want 800", r.FodderMax(TerrainLowland))
	}
	if r.FodderMax(TerrainHighland) != 300 {
		t.Fatalf("highland f_max = %v, want 300", r.FodderMax(TerrainHighland))
	}
	if r.FodderMax(TerrainDesert) != 0 || r.FodderMax(TerrainWater) != 0 {
		t.Fatalf("desert/water f_max should be 0")
	}
}

func TestSetSpeciesParamsAppliesUpdates(t *testing.T) {
	r := NewRegistry()
	err := r.SetSpeciesParams(SpeciesHerbivore, map[string]float64{"beta": 0.5, "F": 25})
	if err != nil {
		t.Fatalf("set params: %v", err)
	}
	p := r.Params(SpeciesHerbivore)
	if p.Beta != 0.5 || p.F != 25 {
		t.Fatalf("update not applied: beta=%v F=%v", p.Beta, p.F)
	}
}

func TestSetSpeciesParamsRejectsUnknownName(t *testing.T) {
	r := NewRegistry()
	err := r.SetSpeciesParams(SpeciesHerbivore, map[string]float64{"omeag": 0.3})
	if err == nil {
		t.Fatalf("expected error for unknown parameter name")
	}
	if !strings.Contains(err.Error(), "omega") {
		t.Fatalf("expected a suggestion mentioning omega, got: %v", err)
	}
}

func TestSetSpeciesParamsIsAllOrNothing(t *testing.T) {
	r := NewRegistry()
	err := r.SetSpeciesParams(SpeciesHerbivore, map[string]float64{"beta": 0.5, "nonsense": 1})
	if err == nil {
		t.Fatalf("expected error for unknown parameter name")
	}
	if got := r.Params(SpeciesHerbivore).Beta; got != 0.9 {
		t.Fatalf("beta changed to %v despite rejected update", got)
	}
}

func TestSetSpeciesParamsValueRanges(t *testing.T) {
	cases := []struct {
		name    string
		species Species
		updates map[string]float64
	}{
		{"negative value", SpeciesHerbivore, map[string]float64{"mu": -0.1}},
		{"eta above one", SpeciesHerbivore, map[string]float64{"eta": 1.5}},
		{"zero DeltaPhiMax", SpeciesCarnivore, map[string]float64{"DeltaPhiMax": 0}},
		{"DeltaPhiMax on herbivore", SpeciesHerbivore, map[string]float64{"DeltaPhiMax": 5}},
	}
	for _, tc := range cases {
		r := NewRegistry()
		if err := r.SetSpeciesParams(tc.species, tc.updates); err == nil {
			t.Errorf("%s: expected rejection of %v", tc.name, tc.updates)
		}
	}

	r := NewRegistry()
	if err := r.SetSpeciesParams(SpeciesHerbivore, map[string]float64{"eta": 1.0}); err != nil {
		t.Fatalf("eta = 1 should be accepted: %v", err)
	}
	if err := r.SetSpeciesParams(SpeciesCarnivore, map[string]float64{"DeltaPhiMax": 0.5}); err != nil {
		t.Fatalf("positive DeltaPhiMax should be accepted for carnivores: %v", err)
	}
}

func TestSetTerrainParams(t *testing.T) {
	r := NewRegistry()
	if err := r.SetTerrainParams(TerrainLowland, map[string]float64{"f_max": 500}); err != nil {
		t.Fatalf("set lowland f_max: %v", err)
	}
	if got := r.FodderMax(TerrainLowland); got != 500 {
		t.Fatalf("lowland f_max = %v, want 500", got)
	}
	if err := r.SetTerrainParams(TerrainHighland, map[string]float64{"f_max": 150}); err != nil {
		t.Fatalf("set highland f_max: %v", err)
	}

	if err := r.SetTerrainParams(TerrainDesert, map[string]float64{"f_max": 100}); err == nil {
		t.Fatalf("expected rejection of f_max on desert")
	}
	if err := r.SetTerrainParams(TerrainWater, map[string]float64{"f_max": 100}); err == nil {
		t.Fatalf("expected rejection of f_max on water")
	}
	if err := r.SetTerrainParams(TerrainLowland, map[string]float64{"f_max": -1}); err == nil {
		t.Fatalf("expected rejection of negative f_max")
	}
	if err := r.SetTerrainParams(TerrainLowland, map[string]float64{"fmax": 100}); err == nil {
		t.Fatalf("expected rejection of unknown terrain parameter")
	}
}

func TestParseSpecies(t *testing.T) {
	if _, err := ParseSpecies("Herbivore"); err != nil {
		t.Fatalf("Herbivore should parse: %v", err)
	}
	if _, err := ParseSpecies("Carnivore"); err != nil {
		t.Fatalf("Carnivore should parse: %v", err)
	}
	_, err := ParseSpecies("Herbavore")
	if err == nil {
		t.Fatalf("expected error for misspelled species")
	}
	if !strings.Contains(err.Error(), "Herbivore") {
		t.Fatalf("expected a suggestion mentioning Herbivore, got: %v", err)
	}
}
