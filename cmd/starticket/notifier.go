// ABOUTME: Terminal notifier rendering pipeline notices as colored one-liners
// ABOUTME: Stands in for the toast layer a graphical client would show

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/starcinema/starticket/internal/apperr"
)

// termNotifier prints user-facing notices to stderr so command output on
// stdout stays pipeable.
type termNotifier struct{}

func (termNotifier) Notify(kind apperr.Kind, message string) {
	c := color.New(color.FgRed)
	switch kind {
	case apperr.KindValidation:
		c = color.New(color.FgYellow)
	case apperr.KindNotFound:
		c = color.New(color.FgYellow)
	case apperr.KindAuth:
		c = color.New(color.FgMagenta)
	}
	fmt.Fprintln(os.Stderr, c.Sprintf("! %s", message))
}
