package frontier

// Priority weighting for crawl scheduling. These are tunable policy knobs;
// the scheduler only relies on lower scores being more urgent.
const (
	depthWeight      = 0.60
	freshnessWeight  = 0.25
	importanceWeight = 0.15
)

// Score computes a priority score for scheduling a URL. Shallow, freshly
// discovered URLs on important hosts score lowest and are leased first.
// Freshness and host importance default to 1.0 for newly discovered URLs.
//
// The combined weighted value is inverted so that smaller scores are more
// urgent, matching a min-ordered queue.
func Score(depth int, freshness, hostImportance float64) float64 {
	depthScore := 1.0 / (1.0 + float64(depth))
	combined := depthWeight*depthScore +
		freshnessWeight*freshness +
		importanceWeight*hostImportance
	return 1.0 - combined
}
