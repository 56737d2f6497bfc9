package domain

// SearchItem is a single web search hit.
type SearchItem struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}
