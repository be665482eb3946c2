package ui

import (
	"testing"

	"github.com/rivo/tview"
)

func TestGameSetupRoleSwapsAddress(t *testing.T) {
	var started LinkChoice
	setup := NewGameSetup(":9191", "ws://peer:9191/link", false,
		func(c LinkChoice) { started = c }, func() {}, func() {})

	if got := setup.Choice(); !got.Host || got.Address != ":9191" {
		t.Fatalf("initial choice = %+v", got)
	}

	role := setup.form.GetFormItemByLabel("Role").(*tview.DropDown)
	address := setup.form.GetFormItemByLabel("Address").(*tview.InputField)

	role.SetCurrentOption(1)
	if got := setup.Choice(); got.Host || got.Address != "ws://peer:9191/link" {
		t.Errorf("after join = %+v", got)
	}

	address.SetText(" ws://other:9191/link ")
	role.SetCurrentOption(0)
	if got := setup.Choice(); !got.Host || got.Address != ":9191" {
		t.Errorf("back to host = %+v", got)
	}
	role.SetCurrentOption(1)
	if got := setup.Choice(); got.Address != "ws://other:9191/link" {
		t.Errorf("edited peer not kept: %+v", got)
	}

	setup.onStart(setup.Choice())
	if started.Host {
		t.Errorf("started = %+v", started)
	}
}
