// Package http exposes the filesystem service over gin.
//
// REST routes under /fs call the typed operations directly and map error
// kinds to status codes (access_denied 403, already_exists 409, ...) with a
// {"error", "code"} body. POST /services/execute runs any registered tool
// and always answers 200 with a types.Result.
package http
