package models

import (
	"fmt"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// RecordIDString safely extracts the string ID from a SurrealDB RecordID.
// Returns an error if the ID is not a string type.
func RecordIDString(id surrealmodels.RecordID) (string, error) {
	s, ok := id.ID.(string)
	if !ok {
		return "", fmt.Errorf("unexpected ID type: %T (expected string)", id.ID)
	}
	return s, nil
}

// RecordIDStringOr extracts the string ID, returning fallback if the ID
// is unset or not a string.
func RecordIDStringOr(id surrealmodels.RecordID, fallback string) string {
	s, err := RecordIDString(id)
	if err != nil || s == "" {
		return fallback
	}
	return s
}
