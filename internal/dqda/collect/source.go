package collect

import "context"

// RawItem is what a Source hands back before normalization. Fields is
// the collector-specific structured payload; Metadata describes the
// fetch itself (content type, sizes, counts).
type RawItem struct {
	Title    string
	URL      string
	Content  string
	Metadata map[string]interface{}
	Fields   map[string]interface{}
	Method   string
}

// Source is the capability a collector implements. Fetch is the only
// step the runner retries, so implementations should keep it free of
// side effects that must not repeat.
type Source interface {
	Kind() SourceKind
	Fetch(ctx context.Context, req Request) ([]RawItem, error)
}
