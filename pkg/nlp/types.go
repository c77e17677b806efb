package nlp

import "context"

const UnknownIntent = "unknown"

// ClassificationResult is shared between callers once cached and must be
// treated as read-only.
type ClassificationResult struct {
	Tokens     []string     `json:"tokens"`
	Entities   []Entity     `json:"entities"`
	NounChunks []string     `json:"noun_chunks"`
	Sentences  []string     `json:"sentences"`
	Deps       []Dependency `json:"deps"`
	Intent     Intent       `json:"intent"`
}

type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label,omitempty"`
	Start int    `json:"start,omitempty"`
	End   int    `json:"end,omitempty"`
}

type Dependency struct {
	Text string `json:"text"`
	Dep  string `json:"dep"`
	Head string `json:"head"`
}

type Intent struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Action     string  `json:"action,omitempty"`
}

type Stats struct {
	ParseHits      int64 `json:"parse_hits"`
	ParseMisses    int64 `json:"parse_misses"`
	ClassifyHits   int64 `json:"classify_hits"`
	ClassifyMisses int64 `json:"classify_misses"`
	RemoteCalls    int64 `json:"remote_calls"`
}

//go:generate mockgen -destination=mock/mock_client.go -package=mock_nlp ShopAssist/pkg/nlp INLPClient,Transport

type INLPClient interface {
	ParseText(ctx context.Context, text string) (*ClassificationResult, error)
	ClassifyText(ctx context.Context, text string) (*Intent, error)
	Stats() Stats
}
