package entity

// DomainStat represents aggregated per-domain counters.
type DomainStat struct {
	DomainID       string `json:"domain_id"`
	DomainName     string `json:"domain_name"`
	TotalQuestions int    `json:"total_questions"`
	TotalShown     int    `json:"total_shown"`
	TotalCorrect   int    `json:"total_correct"`
}

// Accuracy returns the historical fraction of correct answers in this domain.
func (s *DomainStat) Accuracy() float64 {
	if s.TotalShown == 0 {
		return 0
	}
	return float64(s.TotalCorrect) / float64(s.TotalShown)
}
