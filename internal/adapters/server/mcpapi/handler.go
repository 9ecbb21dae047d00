// Package mcpapi provides a stateless MCP streamable-HTTP adapter.
package mcpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/evanschultz/moncal/internal/adapters/server/common"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Config captures MCP transport configuration.
type Config struct {
	ServerName    string
	ServerVersion string
	EndpointPath  string
}

// Handler wraps one stateless MCP streamable HTTP handler.
type Handler struct {
	httpHandler http.Handler
}

// NewHandler builds one stateless MCP adapter exposing read-only calendar tools.
func NewHandler(cfg Config, reader common.CalendarReader) (*Handler, error) {
	if reader == nil {
		return nil, fmt.Errorf("calendar service is required")
	}
	cfg = normalizeConfig(cfg)

	mcpSrv := mcpserver.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		mcpserver.WithToolCapabilities(false),
	)
	registerMonthTool(mcpSrv, reader)
	registerDayTool(mcpSrv, reader)
	registerAgendaTool(mcpSrv, reader)

	streamable := mcpserver.NewStreamableHTTPServer(
		mcpSrv,
		mcpserver.WithEndpointPath(cfg.EndpointPath),
		mcpserver.WithStateLess(true),
	)
	return &Handler{httpHandler: streamable}, nil
}

// ServeHTTP handles one MCP streamable HTTP request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.httpHandler == nil {
		http.Error(w, "mcp handler unavailable", http.StatusServiceUnavailable)
		return
	}
	h.httpHandler.ServeHTTP(w, r)
}

// normalizeConfig applies deterministic defaults to MCP adapter config.
func normalizeConfig(cfg Config) Config {
	cfg.ServerName = strings.TrimSpace(cfg.ServerName)
	if cfg.ServerName == "" {
		cfg.ServerName = "moncal"
	}
	cfg.ServerVersion = strings.TrimSpace(cfg.ServerVersion)
	if cfg.ServerVersion == "" {
		cfg.ServerVersion = "dev"
	}
	cfg.EndpointPath = strings.TrimSpace(cfg.EndpointPath)
	if cfg.EndpointPath == "" {
		cfg.EndpointPath = "/mcp"
	}
	cfg.EndpointPath = "/" + strings.Trim(cfg.EndpointPath, "/")
	return cfg
}

// monthArgs reads optional year/month arguments, defaulting to the reader clock.
func monthArgs(req mcp.CallToolRequest, reader common.CalendarReader) common.MonthRequest {
	now := reader.Now()
	return common.MonthRequest{
		Year:  req.GetInt("year", now.Year()),
		Month: req.GetInt("month", int(now.Month())),
	}
}

// registerMonthTool registers the `moncal.month` tool.
func registerMonthTool(srv *mcpserver.MCPServer, reader common.CalendarReader) {
	srv.AddTool(
		mcp.NewTool(
			"moncal.month",
			mcp.WithDescription("Return the Monday-first grid for one month with the tasks on each day."),
			mcp.WithNumber("year", mcp.Description("Calendar year (defaults to the current year)")),
			mcp.WithNumber("month", mcp.Description("Month 1..12 (defaults to the current month)")),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			state, err := reader.Month(ctx, monthArgs(req, reader))
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(state)
			if err != nil {
				return nil, fmt.Errorf("encode month result: %w", err)
			}
			return result, nil
		},
	)
}

// registerDayTool registers the `moncal.day` tool.
func registerDayTool(srv *mcpserver.MCPServer, reader common.CalendarReader) {
	srv.AddTool(
		mcp.NewTool(
			"moncal.day",
			mcp.WithDescription("Return the task list shown when one day is clicked."),
			mcp.WithNumber("year", mcp.Description("Calendar year (defaults to the current year)")),
			mcp.WithNumber("month", mcp.Description("Month 1..12 (defaults to the current month)")),
			mcp.WithNumber("day", mcp.Required(), mcp.Description("Day of the month")),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			day, err := req.RequireInt("day")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			month := monthArgs(req, reader)
			detail, err := reader.Day(ctx, common.DayRequest{Year: month.Year, Month: month.Month, Day: day})
			if err != nil {
				return toolResultFromError(err), nil
			}
			result, err := mcp.NewToolResultJSON(detail)
			if err != nil {
				return nil, fmt.Errorf("encode day result: %w", err)
			}
			return result, nil
		},
	)
}

// registerAgendaTool registers the `moncal.agenda` tool.
func registerAgendaTool(srv *mcpserver.MCPServer, reader common.CalendarReader) {
	srv.AddTool(
		mcp.NewTool(
			"moncal.agenda",
			mcp.WithDescription("Return one month as a markdown agenda listing only days with tasks."),
			mcp.WithNumber("year", mcp.Description("Calendar year (defaults to the current year)")),
			mcp.WithNumber("month", mcp.Description("Month 1..12 (defaults to the current month)")),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			md, err := reader.Agenda(ctx, monthArgs(req, reader))
			if err != nil {
				return toolResultFromError(err), nil
			}
			return mcp.NewToolResultText(md), nil
		},
	)
}

// toolResultFromError maps service errors into MCP-visible tool errors.
func toolResultFromError(err error) *mcp.CallToolResult {
	switch {
	case err == nil:
		return mcp.NewToolResultError("unknown error")
	case errors.Is(err, common.ErrInvalidRequest):
		return mcp.NewToolResultError("invalid_request: " + err.Error())
	default:
		return mcp.NewToolResultError("internal_error: " + err.Error())
	}
}
