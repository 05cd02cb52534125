package cli

import "github.com/fatih/color"

// colorNotifier prints mutation outcomes the way the store reports them.
type colorNotifier struct{}

func (colorNotifier) Success(msg string) {
	color.New(color.FgGreen).Println(msg)
}

func (colorNotifier) Error(msg string) {
	color.New(color.FgRed).Println(msg)
}
