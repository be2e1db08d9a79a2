package cmd

import (
	"errors"
	"io/fs"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "message only",
			err:  NewError("boom"),
			want: "boom",
		},
		{
			name: "message and cause",
			err:  NewError("boom").Wrap(errors.New("cause")),
			want: "boom: cause",
		},
		{
			name: "cause only",
			err:  (&Error{}).Wrap(errors.New("cause")),
			want: "cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestErrorSentinelIdentity(t *testing.T) {
	err := ErrWriteConfig.Wrap(ErrFileExists)

	if !errors.Is(err, ErrWriteConfig) {
		t.Error("wrapped sentinel lost its identity")
	}

	if !errors.Is(err, ErrFileExists) {
		t.Error("cause sentinel not reachable through Unwrap")
	}
}

func TestErrorUnwrapNonSentinelCause(t *testing.T) {
	err := ErrOpenSource.Wrap(fs.ErrNotExist)

	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("expected wrapped fs.ErrNotExist to be found")
	}
}
