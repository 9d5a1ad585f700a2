package domain

import "strings"

const SearchPageSize = 20

type SearchScope string

const (
	ScopeTitle   SearchScope = "title"
	ScopeContent SearchScope = "content"
	ScopeAll     SearchScope = "all"
)

func (s SearchScope) Valid() bool {
	switch s {
	case ScopeTitle, ScopeContent, ScopeAll:
		return true
	}
	return false
}

type SearchQuery struct {
	Term  string
	Scope SearchScope
	// Board is an optional board id or slug.
	Board string
	// Page is zero-indexed.
	Page int
}

// NormalizedTerm is the term as matched against posts. Blank terms match nothing.
func (q SearchQuery) NormalizedTerm() string {
	return strings.TrimSpace(q.Term)
}

// SearchFilter is what the storage layer executes: one predicate shared by the
// count and the page query.
type SearchFilter struct {
	Term             string
	Scope            SearchScope
	Board            *BoardId
	ReadablePolicies []Policy
	Limit            int
	Offset           int
}

type SearchResult struct {
	Query string      `json:"query"`
	Scope SearchScope `json:"scope"`
	Posts []Post      `json:"posts"`
	Pagination
}
