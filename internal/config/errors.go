package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfigNotFound indicates the config file does not exist yet.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrEmptyRegistry indicates the config file exists but defines no profiles.
	ErrEmptyRegistry = errors.New("no profiles found")

	// ErrProfileNotFound is matched by ProfileNotFoundError via errors.Is.
	ErrProfileNotFound = errors.New("profile not found")
)

// ProfileNotFoundError reports a missing profile along with the names that
// do exist, so the user can pick one.
type ProfileNotFoundError struct {
	Name      string
	Available []string
}

func (e *ProfileNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("profile %q not found (no profiles configured)", e.Name)
	}
	return fmt.Sprintf("profile %q not found. Available profiles: %s",
		e.Name, strings.Join(e.Available, ", "))
}

func (e *ProfileNotFoundError) Is(target error) bool {
	return target == ErrProfileNotFound
}
