// Package client is a resty-based client for the funcsys HTTP API.
//
// Transient failures (connection errors, 5xx) are retried by a
// go-retryablehttp transport with exponential backoff. Requests can be
// rate limited client-side.
//
//	c := client.New(client.DefaultConfig("http://localhost:8000"))
//	eval, err := c.Evaluate(ctx, "system", -1, 1e-6)
package client
