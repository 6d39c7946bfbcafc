package game

import (
	"errors"

	"github.com/ncruces/zenity"
)

// openChoreographyDialog asks for a choreography file. Cancel returns an
// empty path and no error.
func openChoreographyDialog() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Choreography"),
		zenity.FileFilters{{
			Name:     "Choreography",
			Patterns: []string{"*.yaml", "*.yml"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	return filename, nil
}
