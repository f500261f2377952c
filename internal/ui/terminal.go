package ui

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// Terminal implements Chooser on a real TTY using huh forms.
type Terminal struct{}

var _ Chooser = Terminal{}

func (Terminal) Choose(title string, options []string, defaultIndex int) (int, error) {
	opts := make([]huh.Option[int], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o, i)
	}
	idx := defaultIndex
	if idx < 0 || idx >= len(options) {
		idx = 0
	}
	sel := huh.NewSelect[int]().
		Title(title).
		Options(opts...).
		Value(&idx)
	if err := huh.NewForm(huh.NewGroup(sel)).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return 0, ErrCancelled
		}
		return 0, err
	}
	return idx, nil
}

func (Terminal) Input(title string) (string, error) {
	var value string
	in := huh.NewInput().
		Title(title).
		Value(&value)
	if err := huh.NewForm(huh.NewGroup(in)).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrCancelled
		}
		return "", err
	}
	return value, nil
}
