package assistant

type AskRequest struct {
	Question  string   `json:"question"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Source is one citation backing the answer.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type AskResponse struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// Chat completion wire types (OpenAI-compatible).

type chatRequest struct {
	Model            string             `json:"model"`
	Messages         []chatMessage      `json:"messages"`
	WebSearchOptions *webSearchOptions  `json:"web_search_options,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type webSearchOptions struct {
	UserLocation *userLocation `json:"user_location,omitempty"`
}

type userLocation struct {
	Type        string      `json:"type"`
	Approximate approximate `json:"approximate"`
}

type approximate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content     string       `json:"content"`
			Annotations []annotation `json:"annotations"`
		} `json:"message"`
	} `json:"choices"`
}

type annotation struct {
	Type        string `json:"type"`
	URLCitation *struct {
		URL   string `json:"url"`
		Title string `json:"title"`
	} `json:"url_citation,omitempty"`
}
