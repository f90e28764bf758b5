package news

// Source identifies where a news item came from.
type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Item is the normalized shape every news collaborator produces. The
// generation side only ever consumes this: titles seed topics, snippet or
// FullContent seeds reference content. A collaborator returning zero items
// is not an error.
type Item struct {
	Source      Source `json:"source"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Author      string `json:"author,omitempty"`
	Snippet     string `json:"snippet,omitempty"`
	FullContent string `json:"fullContent,omitempty"`
}
