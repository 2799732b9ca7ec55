package lloyd

// Summary is the serializable digest of a Result.
type Summary struct {
	Dataset     string   `json:"dataset,omitempty"`
	Clusters    int      `json:"clusters"`
	Points      int      `json:"points"`
	Sizes       []int    `json:"sizes"`
	Centroids   []*Point `json:"centroids"`
	Iterations  int      `json:"iterations"`
	Converged   bool     `json:"converged"`
	Fingerprint string   `json:"fingerprint"`
	DurationMS  int64    `json:"duration_ms"`
	Moved       []uint64 `json:"moved"`
}

// Summary returns the digest of r for the named dataset.
func (r *Result) Summary(dataset string) Summary {
	s := Summary{
		Dataset:     dataset,
		Clusters:    len(r.Clusters),
		Points:      r.Clusters.Len(),
		Sizes:       make([]int, len(r.Clusters)),
		Centroids:   make([]*Point, len(r.Clusters)),
		Iterations:  r.Iterations,
		Converged:   r.Converged,
		Fingerprint: r.Fingerprint,
		DurationMS:  r.Duration.Milliseconds(),
		Moved:       make([]uint64, len(r.Stats)),
	}
	for i, c := range r.Clusters {
		s.Sizes[i] = c.Len()
		s.Centroids[i] = c.Centroid
	}
	for i, st := range r.Stats {
		s.Moved[i] = st.Moved
	}
	return s
}
