package responses

// ChatResponse carries the bot's reply for one turn.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// StatusResponse acknowledges state-changing endpoints.
type StatusResponse struct {
	Status string `json:"status"`
}
