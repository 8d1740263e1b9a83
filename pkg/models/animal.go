package models

import "strings"

// Animal is a resident of the shelter
type Animal struct {
	id         int
	nickname   string
	speciesTag string
	hasKit     bool
}

// NewAnimal validates and builds an animal with its kit flag cleared
func NewAnimal(id int, nickname, species string) (*Animal, error) {
	if id < 0 {
		return nil, invalid("animal id", id, "must be non-negative")
	}
	if strings.TrimSpace(nickname) == "" {
		return nil, invalid("nickname", nickname, "cannot be empty")
	}
	if strings.TrimSpace(species) == "" {
		return nil, invalid("species", species, "cannot be empty")
	}
	return &Animal{id: id, nickname: nickname, speciesTag: species}, nil
}

// ID returns the animal identifier
func (a *Animal) ID() int { return a.id }

// Nickname returns the caretaker-facing name
func (a *Animal) Nickname() string { return a.nickname }

// SpeciesTag returns the species exactly as it was recorded
func (a *Animal) SpeciesTag() string { return a.speciesTag }

// Species returns the normalized species
func (a *Animal) Species() Species { return NormalizeSpecies(a.speciesTag) }

// HasKit reports whether the animal has been confirmed as a kit
func (a *Animal) HasKit() bool { return a.hasKit }

// MarkKit sets the kit flag. It can never be cleared.
func (a *Animal) MarkKit() { a.hasKit = true }

// FeedingItem returns the animal's default feeding item
func (a *Animal) FeedingItem() *ScheduleItem {
	p := a.Species().FeedingProfile()
	// profile values are constants within range
	item, _ := NewScheduleItem(a.id, FeedingTaskID, p.StartHour, p.Window, p.Duration, NoTreatment)
	return item
}
