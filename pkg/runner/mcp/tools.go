package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/haeuso/pkg/emotion"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	srv.AddTool(reflectTool(), reflectHandler(svc))
	srv.AddTool(listEntriesTool(), listEntriesHandler(svc))
	srv.AddTool(deleteEntryTool(), deleteEntryHandler(svc))
	srv.AddTool(undoDeleteTool(), undoDeleteHandler(svc))
	srv.AddTool(insightTool(), insightHandler(svc))
}

func reflectTool() mcp.Tool {
	return mcp.NewTool(
		"reflect",
		mcp.WithDescription("Write a short note about how you feel, get a brief empathetic reply, and record the emotion for 24 hours. The note itself is never stored."),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The note, 1 to 1000 characters."),
		),
		mcp.WithString("emotion",
			mcp.Description("How the writer feels. Defaults to calm."),
			mcp.Enum(emotion.Names()...),
		),
	)
}

func reflectHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Content string `json:"content"`
			Emotion string `json:"emotion"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		res, err := svc.Reflect(ctx, args.Content, args.Emotion)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	}
}

func listEntriesTool() mcp.Tool {
	return mcp.NewTool(
		"list_entries",
		mcp.WithDescription("List the entries recorded in the last 24 hours, most recent first."),
	)
}

func listEntriesHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := svc.ListEntries(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"entries": entries,
			"count":   len(entries),
		})
	}
}

func deleteEntryTool() mcp.Tool {
	return mcp.NewTool(
		"delete_entry",
		mcp.WithDescription("Delete an entry. It can be restored with undo_delete for a few seconds."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to delete."),
		),
	)
}

func deleteEntryHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		res, err := svc.DeleteEntry(ctx, id)
		if err != nil && res == nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	}
}

func undoDeleteTool() mcp.Tool {
	return mcp.NewTool(
		"undo_delete",
		mcp.WithDescription("Restore the most recently deleted entry while its undo window is open."),
	)
}

func undoDeleteHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := svc.UndoDelete(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	}
}

func insightTool() mcp.Tool {
	return mcp.NewTool(
		"insight",
		mcp.WithDescription("Summarize the recorded emotions with counts, the dominant emotion and a gentle comment."),
		mcp.WithString("period",
			mcp.Description("Period to summarize: 7d or 30d. Defaults to 7d."),
		),
	)
}

func insightHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in, err := svc.Insight(ctx, request.GetString("period", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(in)
	}
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
