package models

import (
	"testing"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

func TestRecordIDString(t *testing.T) {
	id := surrealmodels.RecordID{Table: "persona", ID: "krishna"}
	got, err := RecordIDString(id)
	if err != nil {
		t.Fatalf("RecordIDString() error = %v", err)
	}
	if got != "krishna" {
		t.Errorf("RecordIDString() = %q, want %q", got, "krishna")
	}
}

func TestRecordIDStringNonString(t *testing.T) {
	id := surrealmodels.RecordID{Table: "persona", ID: 42}
	if _, err := RecordIDString(id); err == nil {
		t.Error("RecordIDString() expected error for non-string ID")
	}
}

func TestRecordIDStringOr(t *testing.T) {
	tests := []struct {
		name string
		id   surrealmodels.RecordID
		want string
	}{
		{"string id", surrealmodels.RecordID{Table: "persona", ID: "krishna"}, "krishna"},
		{"non-string id", surrealmodels.RecordID{Table: "persona", ID: 42}, "fallback"},
		{"empty id", surrealmodels.RecordID{}, "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecordIDStringOr(tt.id, "fallback"); got != tt.want {
				t.Errorf("RecordIDStringOr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidRole(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{RoleUser, true},
		{RoleAssistant, true},
		{"system", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidRole(tt.role); got != tt.want {
			t.Errorf("ValidRole(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestValidMessageType(t *testing.T) {
	tests := []struct {
		t    string
		want bool
	}{
		{TypeText, true},
		{TypeVoice, true},
		{"video", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidMessageType(tt.t); got != tt.want {
			t.Errorf("ValidMessageType(%q) = %v, want %v", tt.t, got, tt.want)
		}
	}
}
