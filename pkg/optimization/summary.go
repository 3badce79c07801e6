// Package optimization provides shared data structures for goal-seek results.
package optimization

// Summary captures the result of a single goal-seek directive.
type Summary struct {
	Subject    string   `json:"subject"`
	TargetID   string   `json:"targetId"`
	TargetName string   `json:"targetName"`
	Field      string   `json:"field"`
	Goal       string   `json:"goal"`
	Original   float64  `json:"original"`
	Value      float64  `json:"value"`
	Threshold  float64  `json:"threshold"`
	Achieved   float64  `json:"achieved"`
	Headroom   float64  `json:"headroom"`
	Iterations int      `json:"iterations"`
	Converged  bool     `json:"converged"`
	Notes      []string `json:"notes,omitempty"`
}
