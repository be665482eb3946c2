package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// LinkChoice is how this board should reach the other one.
type LinkChoice struct {
	Host    bool
	Address string // listen address when hosting, peer URL when joining
	Echo    bool
}

// GameSetupUI provides a form for choosing the link before a match.
type GameSetupUI struct {
	form     *tview.Form
	flex     *tview.Flex
	onStart  func(LinkChoice)
	onCancel func()
	onColors func()

	choice     LinkChoice
	listenAddr string
	peerURL    string
}

var roles = []string{"Host (wait for the other board)", "Join (connect to a host)"}

// NewGameSetup creates a new link setup form. listen and peer prefill the
// address field for each role.
func NewGameSetup(listen, peer string, echo bool, onStart func(LinkChoice), onCancel func(), onColors func()) *GameSetupUI {
	setup := &GameSetupUI{
		onStart:    onStart,
		onCancel:   onCancel,
		onColors:   onColors,
		choice:     LinkChoice{Host: true, Address: listen, Echo: echo},
		listenAddr: listen,
		peerURL:    peer,
	}

	form := tview.NewForm()

	address := tview.NewInputField().
		SetLabel("Address").
		SetText(listen).
		SetFieldWidth(32).
		SetChangedFunc(func(text string) {
			setup.choice.Address = strings.TrimSpace(text)
		})

	form.AddDropDown("Role", roles, 0, func(option string, index int) {
		host := index == 0
		if host == setup.choice.Host {
			return
		}
		setup.choice.Host = host
		if host {
			setup.peerURL = setup.choice.Address
			address.SetText(setup.listenAddr)
		} else {
			setup.listenAddr = setup.choice.Address
			address.SetText(setup.peerURL)
		}
	})
	form.AddFormItem(address)

	form.AddCheckbox("Echo", echo, func(checked bool) {
		setup.choice.Echo = checked
	})

	form.AddButton("Start", func() {
		onStart(setup.choice)
	})

	form.AddButton("Colors", func() {
		onColors()
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" New Match ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetButtonBackgroundColor(MenuColors.ButtonBG)
	form.SetButtonTextColor(MenuColors.ButtonText)
	form.SetLabelColor(MenuColors.Label)

	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Enter: confirm  |  Echo: hear your own bytes like an IR board").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(MenuColors.Hint)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// Choice returns what is currently selected.
func (s *GameSetupUI) Choice() LinkChoice {
	return s.choice
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
