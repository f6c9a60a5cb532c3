// Package client is a typed Go client for the Finder HTTP API.
//
// Built on go-resty/resty:
//   - GETs retry on transport errors, 429 and 5xx; mutations never retry
//   - Every request carries a fresh X-Request-ID
//   - Optional client-side rate limiting
//   - Non-2xx responses decode into *APIError with the server's code
//
// Example Usage:
//
//	c := client.NewClient("http://127.0.0.1:8000")
//	home, err := c.Home(ctx)
//	listing, err := c.List(ctx, home)
//
//	var apiErr *client.APIError
//	if errors.As(err, &apiErr) && apiErr.Code == "access_denied" {
//	    // outside the boundary
//	}
package client
