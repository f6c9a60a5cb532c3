package types

// ExecuteRequest represents a service execution request
type ExecuteRequest struct {
	ToolID string                 `json:"tool_id" binding:"required"`
	Params map[string]interface{} `json:"params"`
}

// CreateFolderRequest is the body of POST /fs/folders
type CreateFolderRequest struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// RenameRequest is the body of POST /fs/rename
type RenameRequest struct {
	Path    string `json:"path"`
	NewName string `json:"new_name"`
}

// TransferRequest is the body of POST /fs/copy and POST /fs/move
type TransferRequest struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}
