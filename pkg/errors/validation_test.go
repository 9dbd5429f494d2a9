package errors

import (
	"testing"
)

func TestValidateCoachID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "bill_walsh", false},
		{"valid single word", "madden", false},
		{"valid with digits", "bum_phillips_2", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 200)), true},
		{"uppercase", "Bill_Walsh", true},
		{"leading underscore", "_walsh", true},
		{"trailing underscore", "walsh_", true},
		{"double underscore", "bill__walsh", true},
		{"spaces", "bill walsh", true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoachID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoachID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTeamColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid lowercase", "#aa0000", false},
		{"valid uppercase", "#AA0000", false},
		{"valid mixed", "#E31837", false},

		{"empty", "", true},
		{"no hash", "AA0000", true},
		{"too short", "#AA00", true},
		{"too long", "#AA00003", true},
		{"non-hex", "#GG0000", true},
		{"named color", "red", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTeamColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTeamColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid relative", "data/coaches.json", false},
		{"valid absolute", "/tmp/coaches.json", false},
		{"valid simple", "coaches.json", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"path traversal", "foo/../bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://example.com/path", false},
		{"http", "http://example.com/path", false},

		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"file", "file:///etc/passwd", true},
		{"javascript", "javascript:alert(1)", true},
		{"no scheme", "example.com/data.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSnapshotName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "nfl-2025", false},
		{"valid underscore", "week_one", false},
		{"valid digits", "2025", false},

		{"empty", "", true},
		{"uppercase", "NFL", true},
		{"leading dash", "-foo", true},
		{"spaces", "nfl 2025", true},
		{"too long", string(make([]byte, 80)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSnapshotName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSnapshotName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
