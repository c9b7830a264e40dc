package onepole

import (
	"math"
	"strconv"
	"testing"
)

func makeBenchSignal(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * float64(i) / float64(n))
	}

	return out
}

func BenchmarkProcessSample(b *testing.B) {
	f, err := New(KindLowPass, 44100, 1000)
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}

	b.ReportAllocs()

	var out float64
	for i := range b.N {
		out = f.ProcessSample(float64(i & 1))
	}

	_ = out
}

func BenchmarkProcessInPlace(b *testing.B) {
	sizes := []int{64, 256, 1024, 4096, 16384}
	for _, n := range sizes {
		signal := makeBenchSignal(n)

		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(n * 8))

			f, err := New(KindLowPass, 44100, 1000)
			if err != nil {
				b.Fatalf("New() error = %v", err)
			}

			buf := make([]float64, n)

			for range b.N {
				copy(buf, signal)
				f.ProcessInPlace(buf)
			}
		})
	}
}
