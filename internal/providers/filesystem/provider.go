package filesystem

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/finder/backend/internal/shared/id"
	"github.com/GriffinCanCode/finder/backend/internal/shared/types"
)

// Provider exposes the filesystem operation groups as one service
type Provider struct {
	ops *FilesystemOps

	directory  *DirectoryOps
	operations *OperationsOps
	search     *SearchOps
	preview    *PreviewOps
}

// NewProvider creates the filesystem service over shared ops
func NewProvider(ops *FilesystemOps) *Provider {
	return &Provider{
		ops:        ops,
		directory:  &DirectoryOps{FilesystemOps: ops},
		operations: &OperationsOps{FilesystemOps: ops},
		search:     &SearchOps{FilesystemOps: ops},
		preview:    &PreviewOps{FilesystemOps: ops},
	}
}

func (p *Provider) Directory() *DirectoryOps   { return p.directory }
func (p *Provider) Operations() *OperationsOps { return p.operations }
func (p *Provider) Search() *SearchOps         { return p.search }
func (p *Provider) Preview() *PreviewOps       { return p.preview }

// Definition returns service metadata with all module tools
func (p *Provider) Definition() types.Service {
	tools := []types.Tool{}
	tools = append(tools, p.directory.GetTools()...)
	tools = append(tools, p.operations.GetTools()...)
	tools = append(tools, p.search.GetTools()...)
	tools = append(tools, p.preview.GetTools()...)

	return types.Service{
		ID:          "filesystem",
		Name:        "Filesystem Service",
		Description: "Browse, search, preview and organize files under the home directory",
		Category:    types.CategoryFilesystem,
		Capabilities: []string{
			"list",
			"info",
			"mkdir",
			"delete",
			"rename",
			"copy",
			"move",
			"search",
			"glob",
			"preview",
		},
		Tools: tools,
	}
}

// Execute routes a tool call to its operation group
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "filesystem.list":
		listing, err := p.directory.List(ctx, stringParam(params, "path"))
		if err != nil {
			return FailureFrom(err)
		}
		data := map[string]interface{}{
			"current_path": listing.CurrentPath,
			"entries":      listing.Entries,
			"skipped":      listing.Skipped,
		}
		if listing.ParentPath != nil {
			data["parent_path"] = *listing.ParentPath
		}
		return Success(data)

	case "filesystem.home":
		home, err := p.directory.Home()
		if err != nil {
			return FailureFrom(err)
		}
		return Success(map[string]interface{}{"path": home})

	case "filesystem.info":
		entry, err := p.directory.ItemInfo(ctx, stringParam(params, "path"))
		if err != nil {
			return FailureFrom(err)
		}
		return Success(map[string]interface{}{"entry": entry})

	case "filesystem.mkdir":
		created, err := p.operations.CreateFolder(ctx, stringParam(params, "path"), stringParam(params, "name"))
		return p.mutated(toolID, appCtx, created, err)

	case "filesystem.delete":
		path := stringParam(params, "path")
		if err := p.operations.Delete(ctx, path); err != nil {
			return FailureFrom(err)
		}
		p.audit(toolID, appCtx, path)
		return Success(map[string]interface{}{"deleted": true, "path": path})

	case "filesystem.rename":
		renamed, err := p.operations.Rename(ctx, stringParam(params, "path"), stringParam(params, "new_name"))
		return p.mutated(toolID, appCtx, renamed, err)

	case "filesystem.copy":
		copied, err := p.operations.Copy(ctx, stringParam(params, "source"), stringParam(params, "destination"))
		return p.mutated(toolID, appCtx, copied, err)

	case "filesystem.move":
		moved, err := p.operations.Move(ctx, stringParam(params, "source"), stringParam(params, "destination"))
		return p.mutated(toolID, appCtx, moved, err)

	case "filesystem.search":
		result, err := p.search.Search(ctx, stringParam(params, "path"), stringParam(params, "query"))
		return searchResult(result, err)

	case "filesystem.glob":
		result, err := p.search.Glob(ctx, stringParam(params, "path"), stringParam(params, "pattern"))
		return searchResult(result, err)

	case "filesystem.preview":
		preview, err := p.preview.Preview(ctx, stringParam(params, "path"))
		if err != nil {
			return FailureFrom(err)
		}
		return Success(map[string]interface{}{"preview": preview})

	default:
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) mutated(toolID string, appCtx *types.Context, path string, err error) (*types.Result, error) {
	if err != nil {
		return FailureFrom(err)
	}
	p.audit(toolID, appCtx, path)
	return Success(map[string]interface{}{"path": path})
}

// audit tags a completed mutation with an operation ID
func (p *Provider) audit(toolID string, appCtx *types.Context, path string) {
	fields := []zap.Field{
		zap.String("op_id", id.NewOperationID().String()),
		zap.String("tool", toolID),
		zap.String("path", path),
	}
	if appCtx != nil && appCtx.RequestID != nil {
		fields = append(fields, zap.String("request_id", *appCtx.RequestID))
	}
	p.ops.Logger.Info("Mutation completed", fields...)
}

func searchResult(result *SearchResult, err error) (*types.Result, error) {
	if err != nil {
		return FailureFrom(err)
	}
	return Success(map[string]interface{}{
		"entries":   result.Entries,
		"count":     len(result.Entries),
		"skipped":   result.Skipped,
		"truncated": result.Truncated,
	})
}

// stringParam reads a string parameter, treating a missing or mistyped
// value as empty
func stringParam(params map[string]interface{}, key string) string {
	s, _ := params[key].(string)
	return s
}
