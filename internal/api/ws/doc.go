// Package ws streams range sweeps over WebSocket.
//
// Message Types (Client → Server):
//   - sweep: evaluate {"function","start","end","step","precision"} given in the sweep field
//   - ping: keep-alive ping
//
// Message Types (Server → Client):
//   - system: greeting sent on connect
//   - sample: one grid point {"index","x","y"}, y is null where undefined
//   - complete: sweep finished, with run_id, count and summary statistics
//   - pong: reply to ping
//   - error: invalid request or aborted sweep
//
// Example Usage:
//
//	handler := ws.NewHandler(provider, exporter, metrics, logger)
//	router.GET("/ws/sweep", handler.HandleConnection)
package ws
