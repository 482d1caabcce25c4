package domain

import "strings"

// UnallowedTrackChars lists the characters a track label may not contain.
const UnallowedTrackChars = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?~`"

// HasUnallowedChars reports whether s contains any character of UnallowedTrackChars.
func HasUnallowedChars(s string) bool {
	return strings.ContainsAny(s, UnallowedTrackChars)
}

// ValidateTrackNames checks every label and fails the whole batch with
// ErrUnallowedChars when any of them is invalid. Empty input passes; count and
// blank checks belong to request decoding.
//
// The same rule applies to labels attached to content and to labels sent to
// the track endpoints.
func ValidateTrackNames(names []string) error {
	for _, name := range names {
		if HasUnallowedChars(name) {
			return ErrUnallowedChars
		}
	}
	return nil
}
