package domain

import "fmt"

// Rating is the learner's self-reported recall quality for one sub-item.
type Rating int

// Rating values, ordered from total failure to effortless recall.
const (
	RatingAgain Rating = iota + 1
	RatingHard
	RatingGood
	RatingEasy
)

var ratingNames = map[Rating]string{
	RatingAgain: "again",
	RatingHard:  "hard",
	RatingGood:  "good",
	RatingEasy:  "easy",
}

// IsValid reports whether r is one of the four recognized ratings.
func (r Rating) IsValid() bool {
	return r >= RatingAgain && r <= RatingEasy
}

// String returns the lowercase rating name, or "rating(n)" when invalid.
func (r Rating) String() string {
	if name, ok := ratingNames[r]; ok {
		return name
	}
	return fmt.Sprintf("rating(%d)", int(r))
}
