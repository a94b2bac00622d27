package keyset

import (
	"testing"

	"github.com/kevinhartman/morton-nd/format"
)

func BenchmarkEncoder_Finish_Delta(b *testing.B) {
	keys := clusteredKeys(10000)

	b.ResetTimer()
	for b.Loop() {
		enc, _ := NewEncoder(WithKeyEncoding(format.TypeDelta))
		enc.AddSlice(keys)
		if _, err := enc.Finish(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncoder_Finish_DeltaS2(b *testing.B) {
	keys := clusteredKeys(10000)

	b.ResetTimer()
	for b.Loop() {
		enc, _ := NewEncoder(WithKeyEncoding(format.TypeDelta), WithCompression(format.CompressionS2))
		enc.AddSlice(keys)
		if _, err := enc.Finish(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecoder_All_Delta(b *testing.B) {
	enc, _ := NewEncoder(WithKeyEncoding(format.TypeDelta))
	enc.AddSlice(clusteredKeys(10000))
	block, err := enc.Finish()
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	var sink uint64
	for b.Loop() {
		dec, err := NewDecoder(block)
		if err != nil {
			b.Fatal(err)
		}
		for key := range dec.All() {
			sink += key
		}
	}
	_ = sink
}
