package main

import (
	"io"
	"os"

	"github.com/nicolagi/buddy"
	"github.com/nicolagi/buddy/kv"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.WithField("cause", err).Fatal("Command failed")
	}
}

// app is what every command operates on. It is opened lazily, after flags are parsed, and closed by run
// whatever the outcome of the command.
type app struct {
	configPath string
	verbose    bool

	cfg     *buddy.Config
	storage kv.Storage
	store   *buddy.Store

	stdin  io.Reader
	stdout io.Writer
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	a := &app{stdin: stdin, stdout: stdout}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	err := root.Execute()
	a.close()
	return err
}

func (a *app) open() error {
	if a.verbose {
		log.SetLevel(log.DebugLevel)
	}
	cfg, err := buddy.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	storage, err := cfg.OpenStorage()
	if err != nil {
		return err
	}
	store, err := buddy.NewStore(storage, buddy.WithKey(cfg.Key))
	if err != nil {
		_ = storage.Close()
		return err
	}
	store.Load()
	a.cfg, a.storage, a.store = cfg, storage, store
	return nil
}

// close lets pending writes land before the process exits.
func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			log.WithField("cause", err).Warning("Could not close store")
		}
	}
	if a.storage != nil {
		if err := a.storage.Close(); err != nil {
			log.WithField("cause", err).Warning("Could not close storage")
		}
	}
	a.store, a.storage = nil, nil
}
