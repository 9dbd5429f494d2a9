package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeCoachNotFound, "coach %q is not in the dataset", "walsh")

	if err.Code != ErrCodeCoachNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeCoachNotFound)
	}
	if err.Message != `coach "walsh" is not in the dataset` {
		t.Errorf("Message = %q", err.Message)
	}
	if want := `COACH_NOT_FOUND: coach "walsh" is not in the dataset`; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "fetching dataset")

	if err.Code != ErrCodeNetwork {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNetwork)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want original cause", errors.Unwrap(err))
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeCycleDetected, "cycle"), ErrCodeCycleDetected, true},
		{"different code", New(ErrCodeCycleDetected, "cycle"), ErrCodeInvalidDataset, false},
		{"wrapped coded error", Wrap(ErrCodeStore, New(ErrCodeSnapshotNotFound, "inner"), "outer"), ErrCodeStore, true},
		{"plain error", errors.New("plain"), ErrCodeInvalidInput, false},
		{"nil", nil, ErrCodeInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"coded error", New(ErrCodeInvalidColor, "bad hex"), ErrCodeInvalidColor},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	coded := New(ErrCodeInvalidDataset, "dataset has no coaches")
	if got := UserMessage(coded); got != "dataset has no coaches" {
		t.Errorf("UserMessage(coded) = %q", got)
	}
	plain := errors.New("open foo.json: no such file")
	if got := UserMessage(plain); got != plain.Error() {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
