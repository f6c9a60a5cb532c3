// Package types provides the shared data structures of the backend.
//
// Core Types:
//   - Service, Tool, Parameter: service provider definitions
//   - Context: caller information for a tool execution
//   - Result: standard tool execution result
//
// Request Types:
//   - ExecuteRequest: generic tool execution
//   - CreateFolderRequest, RenameRequest, TransferRequest: REST bodies
//
// Example Usage:
//
//	result := &types.Result{
//	    Success: true,
//	    Data:    map[string]interface{}{"path": "/Users/me/Notes"},
//	}
package types
