package animalform

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResultOK(t *testing.T) {
	state := FormState{Name: "Rex"}
	r := OK(state)

	if r.State() != state {
		t.Errorf("State() = %+v, want %+v", r.State(), state)
	}
	if r.Error() != nil {
		t.Errorf("Error() = %v, want nil", r.Error())
	}
	if r.IsStateOnly() {
		t.Error("IsStateOnly() = true, want false")
	}
}

func TestResultErr(t *testing.T) {
	testErr := errors.New("test error")
	r := Err(FormState{Name: "Rex"}, testErr)

	if r.Error() != testErr {
		t.Errorf("Error() = %v, want %v", r.Error(), testErr)
	}
	if r.State().Name != "Rex" {
		t.Errorf("State().Name = %q, want Rex", r.State().Name)
	}
}

func TestResultFlashChain(t *testing.T) {
	r := OK(FormState{}).
		Flash(FlashSuccess, "Animal created").
		Flash(FlashError, "Add another")

	want := []Flash{
		{Level: FlashSuccess, Message: "Animal created"},
		{Level: FlashError, Message: "Add another"},
	}
	if diff := cmp.Diff(want, r.Flashes()); diff != "" {
		t.Errorf("Flashes() mismatch (-want +got):\n%s", diff)
	}
}

func TestResultTrigger(t *testing.T) {
	r := OK(FormState{}).Trigger(EventAnimalCreated)
	event, data := r.TriggerEvent()
	if event != EventAnimalCreated || data != nil {
		t.Errorf("TriggerEvent() = %q, %v", event, data)
	}

	r = OK(FormState{}).Trigger(EventAnimalCreated, map[string]any{"name": "Rex"})
	event, data = r.TriggerEvent()
	if event != EventAnimalCreated {
		t.Errorf("event = %q", event)
	}
	if diff := cmp.Diff(map[string]any{"name": "Rex"}, data); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestResultStateOnly(t *testing.T) {
	base := OK(FormState{Name: "Rex"})
	r := base.StateOnly()

	if !r.IsStateOnly() {
		t.Error("IsStateOnly() = false after StateOnly()")
	}
	if base.IsStateOnly() {
		t.Error("StateOnly() changed the receiver")
	}
	if r.State().Name != "Rex" {
		t.Errorf("State().Name = %q, want Rex", r.State().Name)
	}
}
