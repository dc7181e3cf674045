package message

import "github.com/arloliu/bitpack/buffer"

// sizeOfMaxRetained caps the pooled buffers kept by SizeOf, so measuring one huge value
// does not pin its buffer in the pool.
const sizeOfMaxRetained = 1024 * 1024

// SizeOf returns the number of bytes e writes for v.
//
// The value is encoded into a pooled scratch writer which is discarded afterwards.
func SizeOf[T any](e Encoder[T], v T) (int, error) {
	w := buffer.AcquireWriter(buffer.WithMaxRetained(sizeOfMaxRetained))
	defer w.Release()

	if err := e.Encode(w, v); err != nil {
		return 0, err
	}

	return w.Len(), nil
}
