// Package tray provides a system tray menu for choosing the difficulty,
// starting a game and quitting.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/bananarush/internal/game"
)

// Tray represents the system tray menu. Clicks become game commands passed to
// the OnCommand callback, typically an input.Queue's Push.
type Tray struct {
	onCommand func(game.Command)
	selected  game.Difficulty // checked in the menu
	status    string
	mu        sync.RWMutex

	// Menu items stored for later updates
	menuDifficulty map[game.Difficulty]*systray.MenuItem
	menuStatus     *systray.MenuItem
}

// New creates a new Tray with no difficulty selected.
func New() *Tray {
	return &Tray{}
}

// OnCommand sets the callback receiving the commands of menu clicks.
func (t *Tray) OnCommand(fn func(game.Command)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onCommand = fn
}

// Register adds the tray icon without starting an event loop of its own.
// It must be called from the thread running the UI loop that pumps native
// events, which is the highgui window loop on the main thread.
func (t *Tray) Register() {
	systray.Register(t.onReady, t.onExit)
}

// Quit removes the tray icon.
func (t *Tray) Quit() {
	systray.Quit()
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Banana Rush")
	systray.SetTooltip("Banana Rush")

	t.mu.Lock()
	t.menuStatus = systray.AddMenuItem("Menu", "Game status")
	t.menuStatus.Disable()
	systray.AddSeparator()

	menuEasy := systray.AddMenuItemCheckbox("Easy", "Coconuts cost points, bombs cost a life", false)
	menuMedium := systray.AddMenuItemCheckbox("Medium", "Coconuts cost a life, bombs end the game", false)
	menuHard := systray.AddMenuItemCheckbox("Hard", "Coconuts and bombs end the game", false)
	t.menuDifficulty = map[game.Difficulty]*systray.MenuItem{
		game.Easy:   menuEasy,
		game.Medium: menuMedium,
		game.Hard:   menuHard,
	}
	t.mu.Unlock()
	systray.AddSeparator()

	menuStart := systray.AddMenuItem("Start Game", "Start with the selected difficulty")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Banana Rush")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-menuEasy.ClickedCh:
				t.handleSelect(game.Easy)
			case <-menuMedium.ClickedCh:
				t.handleSelect(game.Medium)
			case <-menuHard.ClickedCh:
				t.handleSelect(game.Hard)
			case <-menuStart.ClickedCh:
				t.dispatch(game.Start())
			case <-menuQuit.ClickedCh:
				t.dispatch(game.Quit())
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {}

// handleSelect checks the chosen difficulty and forwards the selection. The
// next published snapshot corrects the check if the game ignores it.
func (t *Tray) handleSelect(d game.Difficulty) {
	t.check(d)
	t.dispatch(game.Select(d))
}

// check leaves only d checked. DifficultyUnset clears every checkbox.
func (t *Tray) check(d game.Difficulty) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if d == t.selected {
		return
	}
	t.selected = d
	for level, item := range t.menuDifficulty {
		if level == d {
			item.Check()
		} else {
			item.Uncheck()
		}
	}
}

// dispatch passes a command to the callback outside the lock.
func (t *Tray) dispatch(cmd game.Command) {
	t.mu.RLock()
	callback := t.onCommand
	t.mu.RUnlock()

	if callback != nil {
		callback(cmd)
	}
}

// SetStatus updates the status line with the phase and score.
func (t *Tray) SetStatus(phase game.Phase, score int) {
	status := "Menu"
	if phase != game.PhaseMenu {
		status = fmt.Sprintf("%s - score %d", phase, score)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if status == t.status {
		return
	}
	t.status = status
	if t.menuStatus != nil {
		t.menuStatus.SetTitle(status)
	}
}

// Publish shows the snapshot's phase and score in the status line and
// checks the difficulty the game holds, so a game over or a selection made
// with the keyboard is reflected in the menu.
func (t *Tray) Publish(snap game.Snapshot) {
	t.SetStatus(snap.Phase, snap.Score)
	t.check(snap.Difficulty)
}
