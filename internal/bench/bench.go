// Package bench replays prefix queries against a loaded model and reports
// latency percentiles. Intended for sizing max_suggestions and
// min_words_partial against a real corpus before deploying a model.
package bench

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/bastiangx/replyserve/internal/logger"
	"github.com/bastiangx/replyserve/pkg/suggest"
)

// Result holds the outcome of one benchmark run.
type Result struct {
	Queries int
	Elapsed time.Duration
	Hist    *hdrhistogram.Histogram
}

// Run issues iterations rounds of every prefix against the completer,
// recording per-query latency in microseconds. The cache is part of the
// serving path, so repeated rounds deliberately measure the cached case too.
func Run(completer *suggest.Completer, prefixes []string, iterations int) *Result {
	if iterations < 1 {
		iterations = 1
	}
	// 1us floor, 60s ceiling, 3 significant digits
	hist := hdrhistogram.New(1, 60_000_000, 3)

	start := time.Now()
	queries := 0
	for i := 0; i < iterations; i++ {
		for _, prefix := range prefixes {
			qStart := time.Now()
			completer.Complete(prefix, 0)
			us := time.Since(qStart).Microseconds()
			if us < 1 {
				// cached queries resolve below the histogram floor
				us = 1
			}
			_ = hist.RecordValue(us)
			queries++
		}
	}

	return &Result{
		Queries: queries,
		Elapsed: time.Since(start),
		Hist:    hist,
	}
}

// Report logs throughput and the latency distribution.
func (r *Result) Report() {
	blog := logger.New("bench")
	if r.Queries == 0 {
		blog.Warn("No queries were issued")
		return
	}
	rate := float64(r.Queries) / r.Elapsed.Seconds()
	blog.Infof("Ran %d queries in %v (%.0f q/s)", r.Queries, r.Elapsed.Round(time.Millisecond), rate)
	blog.Infof("Latency us: p50=%d p95=%d p99=%d max=%d",
		r.Hist.ValueAtQuantile(50),
		r.Hist.ValueAtQuantile(95),
		r.Hist.ValueAtQuantile(99),
		r.Hist.Max())
}

// Prefixes derives a keystroke-style query stream from complete phrases:
// for each phrase, every leading substring up to maxLen characters, the way
// a client would query while an agent types.
func Prefixes(phrases []string, maxLen int) []string {
	var prefixes []string
	for _, phrase := range phrases {
		runes := []rune(phrase)
		limit := len(runes)
		if maxLen > 0 && limit > maxLen {
			limit = maxLen
		}
		for i := 1; i <= limit; i++ {
			prefixes = append(prefixes, string(runes[:i]))
		}
	}
	return prefixes
}
