package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSum64(t *testing.T) {
	tests := []struct {
		name string
		data string
		sum  uint64
	}{
		{"empty", "", 0xef46db3751d8e999},
		{"short", "test", 0x4fdcca5ddb678139},
		{"long", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.sum, Sum64([]byte(tt.data)))
		})
	}
}

func BenchmarkSum64(b *testing.B) {
	data := []byte("\x01\x02\x03\x04record payload bytes")
	b.ReportAllocs()
	for b.Loop() {
		Sum64(data)
	}
}
