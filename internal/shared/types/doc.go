// Package types provides shared data structures for the function system.
//
// Core Types:
//   - Service: Provider definition with its tools
//   - Tool: One evaluable function and its parameters
//   - Result: Standard operation result
//
// Request Types:
//   - ExecuteRequest: Tool evaluation
//   - SweepRequest: Range sweep with an export format
//   - WSMessage: WebSocket communication
//
// Example Usage:
//
//	req := types.ExecuteRequest{
//	    Tool:   "math.system",
//	    Params: map[string]interface{}{"x": -1.0, "precision": 1e-6},
//	}
package types
