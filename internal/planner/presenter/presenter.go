package presenter

import (
	"fmt"

	"floorplan-studio/internal/planner/models"
)

// ============================================================
// Result Presenter
// ============================================================

// Summary is the one-line description shown under the generated plan.
func Summary(in models.FormInputs) string {
	return fmt.Sprintf("%s sq ft • %s bed • %s bath • %s garage",
		in.SquareFeet, in.Bedrooms, in.Bathrooms, in.Garages)
}

// DownloadFilename names the saved image after the inputs that produced it.
// Garages are not part of the name.
func DownloadFilename(in models.FormInputs) string {
	return fmt.Sprintf("floorplan-%ssqft-%sbed-%sbath.jpg", in.SquareFeet, in.Bedrooms, in.Bathrooms)
}

// GeneratedDescription is the body of the success notification.
func GeneratedDescription(in models.FormInputs) string {
	return fmt.Sprintf("Your %s sq ft home with %s bedrooms, %s bathrooms and %s garages is ready.",
		in.SquareFeet, in.Bedrooms, in.Bathrooms, in.Garages)
}
