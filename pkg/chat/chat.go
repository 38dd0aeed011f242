package chat

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is a single chat-completion message in the wire format the LLM
// endpoints expect.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
