package component

import (
	"errors"
	"fmt"
)

// errWidget marks a GTK constructor that returned nil.
var errWidget = errors.New("gtk returned a nil widget")

func errNilWidget(name string) error {
	return fmt.Errorf("%s: %w", name, errWidget)
}
