package state

// Friend is an entry in the player's friend list. Append-only; there is no
// removal operation.
type Friend struct {
	ID             string `json:"id"`
	UserName       string `json:"user_name"`
	Avatar         string `json:"avatar"`
	Level          int    `json:"level"`
	LastActive     string `json:"last_active"`
	Achievements   int    `json:"achievements"`
	TasksCompleted int    `json:"tasks_completed"`
}
