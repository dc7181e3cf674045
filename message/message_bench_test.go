package message

import (
	"fmt"
	"testing"

	"github.com/arloliu/bitpack/buffer"
	"github.com/arloliu/bitpack/codec"
)

func benchmarkWords(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("word-%04d", i)
	}

	return out
}

// BenchmarkList_Decode compares skipping a sized list against walking an unsized one.
func BenchmarkList_Decode(b *testing.B) {
	unsized := NewUnsizedList[uint16, string](ValueLE[uint16](), NullTerminatedString{})
	sized := NewSizedList[uint16, uint32, string](ValueLE[uint16](), ValueLE[uint32](), NullTerminatedString{})

	for _, count := range []int{10, 100, 1000} {
		items := benchmarkWords(count)

		w := buffer.NewWriter()
		_ = unsized.EncodeItems(w, items)
		unsizedData := w.Bytes()

		w = buffer.NewWriter()
		_ = sized.EncodeItems(w, items)
		sizedData := w.Bytes()

		b.Run(fmt.Sprintf("unsized_%d", count), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(unsizedData)))

			for b.Loop() {
				_, _ = unsized.Decode(buffer.Wrap(unsizedData))
			}
		})

		b.Run(fmt.Sprintf("sized_%d", count), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(sizedData)))

			for b.Loop() {
				_, _ = sized.Decode(buffer.Wrap(sizedData))
			}
		})
	}
}

func BenchmarkListBuilder_WriteItem(b *testing.B) {
	items := benchmarkWords(100)

	b.ReportAllocs()

	for b.Loop() {
		lb := NewListBuilder[string](NullTerminatedString{})
		_ = lb.WriteItems(items...)
		lb.Release()
	}
}

func BenchmarkArray_Get(b *testing.B) {
	arr := NewArray[uint16, uint32](ValueLE[uint16](), ValueBE[uint32]())

	w := buffer.NewWriter()
	_ = arr.EncodeItems(w, make([]uint32, 256))
	m, _ := arr.Decode(w.View())
	view := m.Value()

	b.ReportAllocs()

	for b.Loop() {
		for i := range view.Len() {
			_, _ = view.Get(i)
		}
	}
}

func BenchmarkReadBits(b *testing.B) {
	window := []byte{0x12, 0x34, 0x56}

	b.ReportAllocs()

	for b.Loop() {
		_ = codec.ReadBits[uint32](codec.BitBE, window, 3, 17)
	}
}
