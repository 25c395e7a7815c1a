package tui

import "errors"

var ErrUserQuit = errors.New("user quit the picker")
