package types

// ExecuteRequest represents a tool evaluation request
type ExecuteRequest struct {
	Tool   string                 `json:"tool" binding:"required"`
	Params map[string]interface{} `json:"params" binding:"required"`
}

// SweepRequest represents a range sweep request
type SweepRequest struct {
	Function  string  `json:"function" binding:"required"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Step      float64 `json:"step" binding:"required"`
	Precision float64 `json:"precision"`
	Format    string  `json:"format"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type  string        `json:"type"`
	Sweep *SweepRequest `json:"sweep,omitempty"`
}
