package scoring

// MapScore converts a probability of default into the bounded presentation
// score. The transform is linear in probability and strictly decreasing, so
// score ordering always matches risk ordering. Callers must pass p in [0,1];
// anything else is a contract violation upstream, not a condition recovered
// here.
func MapScore(p float64, r ScoreRange) float64 {
	return r.Min + (1.0-p)*(r.Max-r.Min)
}
