package validator

import (
	"strconv"

	"floorplan-studio/internal/planner/models"
)

// ============================================================
// Submit Validation
// ============================================================

const (
	MinSquareFeet = 100
	MaxSquareFeet = 10000

	TitleMissingInformation   = "Missing Information"
	TitleInvalidSquareFootage = "Invalid Square Footage"
)

// Error describes why a submit was refused. Title and Description are shown
// to the user as-is.
type Error struct {
	Title       string
	Description string
}

func (e *Error) Error() string {
	return e.Title + ": " + e.Description
}

// Validate gates generation. Only square footage is range-checked; the room
// counts just have to be present.
func Validate(in models.FormInputs) *Error {
	for _, f := range models.Fields {
		if in.Get(f) == "" {
			return &Error{
				Title:       TitleMissingInformation,
				Description: "Please fill in all fields before generating a floor plan.",
			}
		}
	}

	// Atoi fails only on overflow here, which is out of range anyway.
	sqft, err := strconv.Atoi(in.SquareFeet)
	if err != nil || sqft < MinSquareFeet || sqft > MaxSquareFeet {
		return &Error{
			Title:       TitleInvalidSquareFootage,
			Description: "Square footage must be between 100 and 10,000.",
		}
	}

	return nil
}
