package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "riseadvertising/internal/errors"
)

// translateNotFound swaps gorm's not-found error for the entity's sentinel.
func translateNotFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

func requireConfirmation(confirmed bool) error {
	if !confirmed {
		return apperrors.ErrConfirmationRequired
	}
	return nil
}

// cleanList trims entries and drops blanks, keeping order.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
