// Package service provides the service registry.
//
// The registry keeps a catalog of providers and routes tool calls
// ("service.tool") to them. Discovery scores services against a free-text
// intent by matching names, descriptions, capabilities and tool names.
//
// Example Usage:
//
//	registry := service.NewRegistry().WithMetrics(metrics)
//	registry.Register(filesystemProvider)
//	result, err := registry.Execute(ctx, "filesystem.list", params, appCtx)
package service
