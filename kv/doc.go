// The kv package holds the key-value backends the task list is persisted to. A backend stores opaque
// values under string keys and guarantees only that a single Get or Set sees or replaces a whole value,
// even while another process writes the same key. There are no transactions and no locking across
// processes. That guarantee is the one consistency primitive the rest of the program relies on: the
// main program is the only writer, while the widget process reads the same key whenever its timer
// fires and may observe any value between two writes.
package kv // import "github.com/nicolagi/buddy/kv"
