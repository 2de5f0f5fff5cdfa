// The buddywidget program shows a small, read-only summary of the outstanding tasks edited with the buddy
// program: the first few by time left, each with a colored urgency marker, and how many more there are.
// It re-reads the list once a minute (see the --interval flag) and never modifies it.
//
// By default the summary is drawn in the terminal; press r to refresh immediately and q to quit. With
// --acme it is written to an acme window named /buddy/widget instead, where Get refreshes it.
package main // import "github.com/nicolagi/buddy/cmd/buddywidget"
