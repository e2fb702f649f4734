package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/softstreaks/internal/logger"
)

var (
	// ErrHabitIndex is returned when a habit slot outside 1..3 is addressed
	ErrHabitIndex = errors.New("habit index out of range")
	// ErrInvalidMood is returned for a mood outside the known set
	ErrInvalidMood = errors.New("invalid mood")
	// ErrNoPick is returned when saving a favorite before anything was spun today
	ErrNoPick = errors.New("nothing picked yet today")
	// ErrEmptyFavorite is returned when a blank favorite is added
	ErrEmptyFavorite = errors.New("favorite text cannot be empty")
	// ErrNotInitialized is returned when the slot backend has not been initialized
	ErrNotInitialized = errors.New("storage not initialized, run 'softstreaks init' first")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
