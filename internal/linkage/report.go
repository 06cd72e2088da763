package linkage

const reportSampleSize = 5

// Report summarizes one linking pass. Skips are counted rather than only
// printed so ingestion summaries and tests can assert on skip rates;
// SkippedKeys holds a bounded sample of the keys that failed to resolve.
type Report struct {
	Linked      int
	Skipped     int
	SkippedKeys []string
}

func (r *Report) linked() {
	r.Linked++
}

func (r *Report) skipped(key string) {
	r.Skipped++
	if len(r.SkippedKeys) < reportSampleSize {
		r.SkippedKeys = append(r.SkippedKeys, key)
	}
}
