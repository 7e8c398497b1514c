package retrieval

// Document is one retrieved statute unit, ranked for the caller. Exact
// matches carry Score 1.0; semantic hits carry the similarity reported by
// the vector store.
type Document struct {
	SectionCode string  `json:"section"`
	Title       string  `json:"title"`
	Text        string  `json:"text"`
	Score       float64 `json:"score"`
}
