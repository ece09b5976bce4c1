package models

// ChatRequest is the expected input for the conversational endpoint.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse carries the agent's reply for one turn.
type ChatResponse struct {
	SessionID string `json:"sessionId"`
	Reply     string `json:"reply"`
}

// SearchResult is one hit returned by the web search collaborator.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}
