// Package tspnet_test — benchmarks for the model's hot paths.
//
// Policy:
//   - Deterministic inputs (fixed seeds); model and batch built outside
//     the timer so only the measured phase is counted.
//   - Instance sizes tuned to finish comfortably on CI while still
//     exercising the multi-layer, multi-head machinery.
package tspnet_test

import (
	"testing"

	"github.com/cm8908/ScienceTouch-JibumKim-TSP/tsp"
	"github.com/cm8908/ScienceTouch-JibumKim-TSP/tspnet"
)

// benchModel builds the compact benchmark architecture once per run.
func benchModel(b *testing.B) *tspnet.Net {
	b.Helper()
	cfg := tspnet.DefaultConfig()
	cfg.DimEmb = 32
	cfg.DimFF = 64
	cfg.EncoderLayers = 3
	cfg.Heads = 4
	cfg.Seed = 13
	m, err := tspnet.New(cfg)
	if err != nil {
		b.Fatal(err)
	}
	return m
}

func BenchmarkEncode_20Cities(b *testing.B) {
	m := benchModel(b)
	batch, err := tsp.RandomInstances(4, 20, 13)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.Encode(batch); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGreedyDecode_20Cities(b *testing.B) {
	m := benchModel(b)
	batch, err := tsp.RandomInstances(4, 20, 13)
	if err != nil {
		b.Fatal(err)
	}
	enc, err := m.Encode(batch)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.DecodeEncoded(enc, tspnet.DefaultDecodeOptions()); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBeamDecode_20Cities_Width8(b *testing.B) {
	m := benchModel(b)
	batch, err := tsp.RandomInstances(2, 20, 13)
	if err != nil {
		b.Fatal(err)
	}
	enc, err := m.Encode(batch)
	if err != nil {
		b.Fatal(err)
	}
	opts := tspnet.DecodeOptions{BeamSearch: true, BeamWidth: 8}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.DecodeEncoded(enc, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTourLength_1kCities(b *testing.B) {
	batch, err := tsp.RandomInstances(1, 1000, 13)
	if err != nil {
		b.Fatal(err)
	}
	tour := make([]int, 1000)
	for i := range tour {
		tour[i] = i
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tsp.TourLength(batch[0], tour); err != nil {
			b.Fatal(err)
		}
	}
}
