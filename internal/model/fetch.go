package model

// FetchCandidate is one (symbol, label) option of an ordered fallback list.
type FetchCandidate struct {
	Symbol string `yaml:"symbol" json:"symbol"`
	Label  string `yaml:"label" json:"label"`
}

// FetchResult is the series produced by the first candidate that returned data,
// plus the label of that candidate. The zero value is the empty result.
type FetchResult struct {
	Series PriceSeries
	Label  string
}

// EmptyResult is returned when every candidate failed or returned no rows.
var EmptyResult = FetchResult{}

// Empty reports whether no candidate produced data.
func (r FetchResult) Empty() bool { return r.Series.Empty() }
