package api_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/momentics/hioload-atomic/api"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := api.Misuse("Release", "handle already released")
	wrapped := fmt.Errorf("worker 3: %w", err)

	if !errors.Is(wrapped, api.NewError(api.ErrCodeMisuse, "")) {
		t.Fatal("expected wrapped misuse error to match ErrCodeMisuse")
	}
	if errors.Is(wrapped, api.NewError(api.ErrCodeWorkerPanic, "")) {
		t.Fatal("misuse error must not match ErrCodeWorkerPanic")
	}
}

func TestErrorContextRendering(t *testing.T) {
	err := api.NewError(api.ErrCodeWorkerPanic, "worker panicked").WithContext("worker", 7)
	if !strings.Contains(err.Error(), "worker:7") {
		t.Errorf("context missing from message: %q", err.Error())
	}
	plain := api.NewError(api.ErrCodeClosed, "closed")
	if plain.Error() != "closed" {
		t.Errorf("unexpected message %q", plain.Error())
	}
}

func TestCodeOf(t *testing.T) {
	if got := api.CodeOf(nil); got != api.ErrCodeOK {
		t.Errorf("CodeOf(nil) = %v", got)
	}
	if got := api.CodeOf(api.ErrPoolClosed); got != api.ErrCodeInternal {
		t.Errorf("CodeOf(sentinel) = %v", got)
	}
	if got := api.CodeOf(api.Misuse("Unlock", "x")); got != api.ErrCodeMisuse {
		t.Errorf("CodeOf(misuse) = %v", got)
	}
	if api.ErrCodeMisuse.String() != "misuse" {
		t.Errorf("String() = %q", api.ErrCodeMisuse.String())
	}
}
