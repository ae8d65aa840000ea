package bayes

import (
	"strings"
	"testing"
)

// buildBenchmarkClassifier creates a classifier preloaded for benchmarks.
func buildBenchmarkClassifier() *Classifier {
	classifier := NewClassifier(nil)
	_ = classifier.Train(strings.Fields(strings.Repeat("kubernetes latency tracing retries ", 50)), Name("tech"))
	_ = classifier.Train(strings.Fields(strings.Repeat("portfolio rebalancing volatility alpha beta ", 50)), Name("finance"))
	_ = classifier.Train(strings.Fields(strings.Repeat("simmer saute reduction stock umami ", 50)), Weighted{Name: "cooking", Weight: 0.5})
	return classifier
}

// BenchmarkTrain benchmarks train.
func BenchmarkTrain(b *testing.B) {
	classifier := NewClassifier(nil)
	sample := strings.Fields(strings.Repeat("distributed systems retries idempotency ", 20))

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = classifier.Train(sample, Name("tech"))
	}
}

// BenchmarkRankByAverageProbability benchmarks average-probability ranking.
func BenchmarkRankByAverageProbability(b *testing.B) {
	classifier := buildBenchmarkClassifier()
	sample := strings.Fields("portfolio volatility and latency retries under stress")

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = classifier.RankByAverageProbability(sample)
	}
}

// BenchmarkClassify benchmarks classify.
func BenchmarkClassify(b *testing.B) {
	classifier := buildBenchmarkClassifier()
	sample := strings.Fields("simmer stock reduction with balanced acidity")

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = classifier.Classify(sample)
	}
}
