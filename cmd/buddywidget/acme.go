package main

import (
	"bytes"
	"context"
	"sync"
	"time"

	"9fans.net/go/acme"
	"github.com/charmbracelet/lipgloss"
	"github.com/nicolagi/buddy"
	log "github.com/sirupsen/logrus"
)

const acmeWindowName = "/buddy/widget"

// bodyWindow is the part of *acme.Win that redraws the window body.
type bodyWindow interface {
	Clear()
	Write(file string, b []byte) (int, error)
	Addr(format string, args ...interface{}) error
	Ctl(format string, args ...interface{}) error
}

// acmeWidget draws the summary in an acme window. Colors are dropped, since acme shows plain text.
// The ticker and the event loop both redraw, so every redraw holds mu.
type acmeWidget struct {
	mu     sync.Mutex
	win    bodyWindow
	widget *buddy.Widget
	family buddy.Family
}

func runAcme(ctx context.Context, w *buddy.Widget, family buddy.Family, interval time.Duration) error {
	if acme.Show(acmeWindowName) != nil {
		return nil
	}
	aw, err := acme.New()
	if err != nil {
		return err
	}
	aw.SetErrorPrefix(acmeWindowName)
	_ = aw.Name(acmeWindowName)
	_ = aw.Ctl("cleartag")
	_ = aw.Fprintf("tag", " Get ")

	win := &acmeWidget{win: aw, widget: w, family: family}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := w.Run(ctx, family, interval, win.show); err != nil && ctx.Err() == nil {
			log.WithField("cause", err).Warning("Widget stopped")
		}
	}()
	// Returns when the window is deleted.
	aw.EventLoop(win)
	return nil
}

func (w *acmeWidget) show(s buddy.Summary) {
	var buf bytes.Buffer
	buf.WriteString(render(lipgloss.NewRenderer(&bytes.Buffer{}), s))
	buf.WriteString("\n")
	buf.WriteString(footer(s))
	buf.WriteString("\n")
	w.mu.Lock()
	defer w.mu.Unlock()
	w.win.Clear()
	_, _ = w.win.Write("body", buf.Bytes())
	_ = w.win.Ctl("clean")
	_ = w.win.Addr("0")
	_ = w.win.Ctl("dot=addr")
	_ = w.win.Ctl("show")
}

// Execute is triggered by button-2 click in acme.
func (w *acmeWidget) Execute(cmd string) bool {
	if cmd == "Get" {
		w.show(w.widget.Snapshot(w.family))
		return true
	}
	return false
}

// Look is invoked via button-3 click in acme. Nothing in the widget can be opened.
func (w *acmeWidget) Look(text string) bool {
	return false
}
