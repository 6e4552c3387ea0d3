package requests

// ChatRequest is one inbound conversation turn. A missing message is treated
// as an empty turn, and a missing tab_id selects the default conversation.
type ChatRequest struct {
	Message string `json:"message"`
	TabID   string `json:"tab_id"`
}

// ResetRequest drops one conversation from the registry.
type ResetRequest struct {
	TabID string `json:"tab_id"`
}
