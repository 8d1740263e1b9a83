package models

import "strings"

// Species is the lowercase species tag stored with every animal
type Species string

const (
	SpeciesBeaver    Species = "beaver"
	SpeciesCoyote    Species = "coyote"
	SpeciesFox       Species = "fox"
	SpeciesPorcupine Species = "porcupine"
	SpeciesRaccoon   Species = "raccoon"
)

// Feeding defaults shared by every species
const (
	FeedingWindow   = 3
	FeedingDuration = 5
)

// FeedingProfile is the default feeding slot of a species
type FeedingProfile struct {
	StartHour int `json:"start_hour"`
	Window    int `json:"window"`
	Duration  int `json:"duration"`
}

// feedingStart holds the only thing that differs between species: when they eat.
// Species not listed are treated as nocturnal.
var feedingStart = map[Species]int{
	SpeciesBeaver:    8,  // diurnal
	SpeciesCoyote:    19, // crepuscular
	SpeciesFox:       0,  // nocturnal
	SpeciesPorcupine: 19, // crepuscular
	SpeciesRaccoon:   0,  // nocturnal
}

// prepSurcharge is the extra food preparation charged once per hour per species
var prepSurcharge = map[Species]int{
	SpeciesFox:    5,
	SpeciesCoyote: 10,
}

// NormalizeSpecies trims and lowercases a raw species tag
func NormalizeSpecies(tag string) Species {
	return Species(strings.ToLower(strings.TrimSpace(tag)))
}

// Known reports whether the shelter has a dedicated profile for the species
func (s Species) Known() bool {
	_, ok := feedingStart[s]
	return ok
}

// FeedingProfile returns the default feeding window of the species
func (s Species) FeedingProfile() FeedingProfile {
	return FeedingProfile{
		StartHour: feedingStart[s],
		Window:    FeedingWindow,
		Duration:  FeedingDuration,
	}
}

// PrepSurcharge returns the minutes added to the first feeding of the species in an hour
func (s Species) PrepSurcharge() int {
	return prepSurcharge[s]
}

// CageCleaningTaskID picks the synthetic cleaning task for the species
func (s Species) CageCleaningTaskID() int {
	if s == SpeciesPorcupine {
		return PorcupineCageCleaningTaskID
	}
	return CageCleaningTaskID
}
