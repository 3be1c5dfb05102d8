package model

// RetrievedChunk is a document chunk returned by vector retrieval,
// already converted to the similarity scale and ranked.
type RetrievedChunk struct {
	Content       string  `json:"content"`
	DocumentID    string  `json:"document_id"`
	DocumentTitle string  `json:"document_title"`
	ChunkIndex    int     `json:"chunk_index"`
	Similarity    float64 `json:"similarity"`
	Rank          int     `json:"rank"`
}

// TurnResult is the outcome of one completed conversation turn.
// RetrievedContext is nil for open-chat turns.
type TurnResult struct {
	UserMessage      *Message          `json:"user_message"`
	AssistantMessage *Message          `json:"assistant_message"`
	Conversation     *Conversation     `json:"conversation"`
	RetrievedContext []*RetrievedChunk `json:"retrieved_context,omitempty"`
}
