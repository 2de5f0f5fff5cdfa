// The buddy program edits the task list from the command line.
//
// Settings are read from lib/buddy/config.toml within the user's home directory (see buddy.LoadConfig),
// and by default the list is kept in the same directory. The buddywidget program reads the same list.
//
// Examples:
//
//	buddy add --due 2h call the plumber
//	buddy add --due 2026-11-01 renew passport
//	buddy ls
//	buddy done 3f2a
//	buddy edit 3f2a --title "call the electrician" --no-due
//	buddy rm 3f2a
//	buddy export -o backup.json
//	buddy import backup.json
//
// Tasks are addressed by id or by any unambiguous id prefix, as printed by ls.
package main // import "github.com/nicolagi/buddy/cmd/buddy"
