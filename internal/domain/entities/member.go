package entities

import "time"

// Gender as labeled in the survey vocabulary
type Gender string

const (
	GenderUnknown Gender = ""
	GenderFemale  Gender = "여성"
	GenderMale    Gender = "남성"
)

// ParseGender maps a survey label onto a Gender
func ParseGender(label string) Gender {
	switch Gender(label) {
	case GenderFemale:
		return GenderFemale
	case GenderMale:
		return GenderMale
	}
	return GenderUnknown
}

// Member is the directory view of a user, owned by the account subsystem
type Member struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Gender    Gender    `json:"gender" db:"gender"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
