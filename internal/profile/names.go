package profile

import (
	"crypto/rand"
	"math/big"
)

// Word lists for suggesting kid-friendly player names
var adjectives = []string{
	"Happy", "Sunny", "Brave", "Bright", "Cool", "Swift", "Clever", "Jolly",
	"Mighty", "Super", "Star", "Wild", "Funny", "Lucky", "Magic", "Bouncy",
	"Cheerful", "Daring", "Eager", "Flying", "Gentle", "Jazzy", "Kindly",
	"Lively", "Merry", "Noble", "Perky", "Quick", "Royal", "Snappy", "Turbo",
	"Zippy", "Awesome", "Bold", "Cosmic", "Dynamic", "Epic", "Groovy",
}

var nouns = []string{
	"Dragon", "Tiger", "Eagle", "Dolphin", "Panda", "Lion", "Wolf", "Bear",
	"Fox", "Hawk", "Shark", "Phoenix", "Unicorn", "Rocket", "Ninja", "Wizard",
	"Knight", "Pirate", "Robot", "Astronaut", "Hero", "Champion", "Explorer",
	"Ranger", "Genius", "Comet", "Thunder", "Tornado", "Blizzard", "Flame",
	"Storm", "Spirit", "Racer",
}

// SuggestName proposes a fresh "Adjective Noun" player name. The result
// always survives SanitizeName unchanged.
func SuggestName() (string, error) {
	adjective, err := randomElement(adjectives)
	if err != nil {
		return "", err
	}

	noun, err := randomElement(nouns)
	if err != nil {
		return "", err
	}

	name := adjective + " " + noun
	if len(name) > MaxNameLength {
		name = noun
	}
	return name, nil
}

// randomElement picks a random element from a string slice
func randomElement(slice []string) (string, error) {
	if len(slice) == 0 {
		return "", nil
	}

	num, err := rand.Int(rand.Reader, big.NewInt(int64(len(slice))))
	if err != nil {
		return "", err
	}

	return slice[num.Int64()], nil
}
