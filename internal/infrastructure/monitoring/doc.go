/*
Package monitoring provides Prometheus metrics for the backend.

# Overview

Each Metrics value owns a private registry, so tests and multiple servers
in one process never collide on registration. It tracks HTTP requests,
service tool calls and filesystem operations (count, latency, failures by
error kind, skipped entries).

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

Metrics satisfies filesystem.Recorder and service.Recorder.
*/
package monitoring
