package models

import "sort"

// Driver represents a single entrant on the grid. Driver data is static
// reference data: it is loaded once at startup and never mutated.
type Driver struct {
	Code   string `json:"code" mapstructure:"code"`
	Name   string `json:"name" mapstructure:"name"`
	Team   string `json:"team" mapstructure:"team"`
	Number int    `json:"number" mapstructure:"number"`
}

// Grid maps driver codes to their reference data.
type Grid map[string]Driver

// Lookup returns the driver for a code and whether the code is known.
func (g Grid) Lookup(code string) (Driver, bool) {
	d, ok := g[code]
	return d, ok
}

// Codes returns all driver codes in sorted order.
func (g Grid) Codes() []string {
	codes := make([]string, 0, len(g))
	for code := range g {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// DefaultGrid returns the 2025 F1 grid.
func DefaultGrid() Grid {
	return Grid{
		"VER": {Code: "VER", Name: "Max Verstappen", Team: "Red Bull", Number: 1},
		"TSU": {Code: "TSU", Name: "Yuki Tsunoda", Team: "Red Bull", Number: 22},
		"HAM": {Code: "HAM", Name: "Lewis Hamilton", Team: "Ferrari", Number: 44},
		"LEC": {Code: "LEC", Name: "Charles Leclerc", Team: "Ferrari", Number: 16},
		"RUS": {Code: "RUS", Name: "George Russell", Team: "Mercedes", Number: 63},
		"ANT": {Code: "ANT", Name: "Andrea Kimi Antonelli", Team: "Mercedes", Number: 12},
		"NOR": {Code: "NOR", Name: "Lando Norris", Team: "McLaren", Number: 4},
		"PIA": {Code: "PIA", Name: "Oscar Piastri", Team: "McLaren", Number: 81},
		"ALO": {Code: "ALO", Name: "Fernando Alonso", Team: "Aston Martin", Number: 14},
		"STR": {Code: "STR", Name: "Lance Stroll", Team: "Aston Martin", Number: 18},
		"GAS": {Code: "GAS", Name: "Pierre Gasly", Team: "Alpine", Number: 10},
		"COL": {Code: "COL", Name: "Franco Colapinto", Team: "Alpine", Number: 19},
		"OCO": {Code: "OCO", Name: "Esteban Ocon", Team: "Haas", Number: 31},
		"BEA": {Code: "BEA", Name: "Oliver Bearman", Team: "Haas", Number: 87},
		"HAD": {Code: "HAD", Name: "Isack Hadjar", Team: "Racing Bulls", Number: 6},
		"LAW": {Code: "LAW", Name: "Liam Lawson", Team: "Racing Bulls", Number: 30},
		"HUL": {Code: "HUL", Name: "Nico Hülkenberg", Team: "Sauber", Number: 27},
		"BOR": {Code: "BOR", Name: "Gabriel Bortoleto", Team: "Sauber", Number: 5},
		"ALB": {Code: "ALB", Name: "Alex Albon", Team: "Williams", Number: 23},
		"SAI": {Code: "SAI", Name: "Carlos Sainz", Team: "Williams", Number: 55},
	}
}
