package body

import "fmt"

// Info is the fixed descriptive record attached to a body by name.
type Info struct {
	Diameter    string
	Mass        string
	Moons       int
	DayLength   string
	Description string
	Link        string
}

// Lines renders the non-empty facts as tooltip lines.
func (i Info) Lines() []string {
	var lines []string
	if i.Diameter != "" {
		lines = append(lines, "Diameter: "+i.Diameter)
	}
	if i.Mass != "" {
		lines = append(lines, "Mass: "+i.Mass)
	}
	if i.DayLength != "" {
		lines = append(lines, "Day: "+i.DayLength)
	}
	if i.Moons > 0 {
		lines = append(lines, fmt.Sprintf("Moons: %d", i.Moons))
	}
	if i.Description != "" {
		lines = append(lines, i.Description)
	}
	if i.Link != "" {
		lines = append(lines, i.Link)
	}
	return lines
}

var infos = map[string]Info{
	"Sun": {
		Diameter:    "1,392,700 km",
		Mass:        "1.989 × 10^30 kg",
		DayLength:   "25.4 days (equator)",
		Description: "G-type main-sequence star at the centre of the system.",
		Link:        "https://science.nasa.gov/sun/",
	},
	"Mercury": {
		Diameter:    "4,879 km",
		Mass:        "3.30 × 10^23 kg",
		DayLength:   "58.6 days",
		Description: "Smallest planet; no atmosphere to hold heat.",
		Link:        "https://science.nasa.gov/mercury/",
	},
	"Venus": {
		Diameter:    "12,104 km",
		Mass:        "4.87 × 10^24 kg",
		DayLength:   "243 days (retrograde)",
		Description: "Hottest planet, wrapped in sulfuric acid clouds.",
		Link:        "https://science.nasa.gov/venus/",
	},
	"Earth": {
		Diameter:    "12,742 km",
		Mass:        "5.97 × 10^24 kg",
		Moons:       1,
		DayLength:   "23.9 hours",
		Description: "The only world known to host life.",
		Link:        "https://science.nasa.gov/earth/",
	},
	"Mars": {
		Diameter:    "6,779 km",
		Mass:        "6.42 × 10^23 kg",
		Moons:       2,
		DayLength:   "24.6 hours",
		Description: "Cold desert world with the tallest volcano known.",
		Link:        "https://science.nasa.gov/mars/",
	},
	"Jupiter": {
		Diameter:    "139,820 km",
		Mass:        "1.90 × 10^27 kg",
		Moons:       95,
		DayLength:   "9.9 hours",
		Description: "Gas giant; the Great Red Spot is a centuries-old storm.",
		Link:        "https://science.nasa.gov/jupiter/",
	},
	"Saturn": {
		Diameter:    "116,460 km",
		Mass:        "5.68 × 10^26 kg",
		Moons:       146,
		DayLength:   "10.7 hours",
		Description: "Ringed gas giant, less dense than water.",
		Link:        "https://science.nasa.gov/saturn/",
	},
	"Uranus": {
		Diameter:    "50,724 km",
		Mass:        "8.68 × 10^25 kg",
		Moons:       28,
		DayLength:   "17.2 hours",
		Description: "Ice giant that rotates on its side.",
		Link:        "https://science.nasa.gov/uranus/",
	},
	"Neptune": {
		Diameter:    "49,244 km",
		Mass:        "1.02 × 10^26 kg",
		Moons:       16,
		DayLength:   "16.1 hours",
		Description: "Windiest planet, with supersonic storms.",
		Link:        "https://science.nasa.gov/neptune/",
	},
}

// InfoFor returns the descriptive record for a body name.
func InfoFor(name string) (Info, bool) {
	info, ok := infos[name]
	return info, ok
}
