// Package buffer provides the two byte containers every codec works on.
//
// View is a read-only window over a byte slice. Slicing a view narrows the window
// without copying, so decoded values can reference their input directly.
//
// Writer is a growable buffer with a write cursor. It is the single owner of its
// storage: views and spans taken from a writer are borrows that remain valid only until
// the writer is mutated again.
//
//	w := buffer.NewWriter()
//	_, _ = w.Write([]byte{0x01, 0x02})
//	v := w.View()      // borrow
//	owned := v.Bytes() // survives later writes
package buffer
