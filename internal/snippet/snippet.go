package snippet

import (
	"github.com/wizenheimer/cacmir/internal/index"
	"github.com/wizenheimer/cacmir/internal/normalize"
	"github.com/wizenheimer/cacmir/internal/stats"
)

// Service generates snippets for a ranked result list: it computes the
// query's significant words once via RelevanceLM, then builds one snippet
// per document via Generator.
type Service struct {
	lm        *RelevanceLM
	generator *Generator
}

// NewService constructs a snippet service over idx/stats, reading document
// text through content.
func NewService(idx *index.Index, st *stats.GlobalStatistics, content ContentProvider, cfg Config) *Service {
	return &Service{
		lm:        NewRelevanceLM(idx, st, content, cfg),
		generator: NewGenerator(content, cfg),
	}
}

// Snippets returns a map of docID -> snippet text for every document in
// rankedDocIDs (ordered, highest-ranked first), given the query's
// already-normalized term sequence.
func (s *Service) Snippets(queryWords []string, rankedDocIDs []int, stopwords normalize.StopSet) (map[int]string, error) {
	sigWords, err := s.lm.SignificantWords(queryWords, rankedDocIDs, stopwords)
	if err != nil {
		return nil, err
	}

	out := make(map[int]string, len(rankedDocIDs))
	for _, docID := range rankedDocIDs {
		snip, err := s.generator.Generate(docID, sigWords, queryWords)
		if err != nil {
			return nil, err
		}
		out[docID] = snip
	}
	return out, nil
}
