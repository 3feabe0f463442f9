package domain

// ============================================================
// Chatbot Analytics
// ============================================================

// ChatStats aggregates conversation counters for GET /v1/chatbot/stats.
type ChatStats struct {
	MessagesProcessed      int64   `json:"messagesProcessed"`
	MessagesErrored        int64   `json:"messagesErrored"`
	ConversationsStarted   int64   `json:"conversationsStarted"`
	ConversationsCompleted int64   `json:"conversationsCompleted"`
	CompletionRate         float64 `json:"completionRate"`
	ActiveWSConnections    int64   `json:"activeWsConnections"`
}
