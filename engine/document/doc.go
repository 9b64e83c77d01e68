/*
Package document implements documents of karaoke lines and the operations
effect scripts use to transform them.

There are three kinds of documents:

	LineBuffer       holds lines in memory, readable and writable
	InputDocument    snapshot of the environment's input lines, read-only
	OutputDocument   forwards every line written to the environment, write-only

Reading from a document always returns copies; callers may mutate them
freely. Operations which fan out lines (Refactor, Filter, Syllables, Frames,
slicing) return a new LineBuffer. Operations which annotate lines in place
(Process, Annotate, SetText, SetValue, SetExtension, Retime) work on the
document's own lines and return the document itself.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package document

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'karafx.document'.
func tracer() tracing.Trace {
	return tracing.Select("karafx.document")
}
