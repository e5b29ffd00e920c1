// Package mcpserver exposes league operations as MCP tools so an assistant can
// run the league over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Dosada05/league-tracker/models"
	"github.com/Dosada05/league-tracker/services"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "league-tracker-mcp"
	serverVersion = "1.0.0"
)

type EmptyArgs struct{}

type TeamArgs struct {
	Name string `json:"name" jsonschema:"Team name (required)"`
}

type AddTeamArgs struct {
	Name           string `json:"name" jsonschema:"Team name (required)"`
	ConfirmDiscard bool   `json:"confirm_discard,omitempty" jsonschema:"Allow discarding the current schedule and results"`
}

type MatchArgs struct {
	MatchID string `json:"match_id" jsonschema:"Match id as returned by list_league (required)"`
}

type RecordResultArgs struct {
	MatchID   string `json:"match_id" jsonschema:"Match id as returned by list_league (required)"`
	HomeGoals int    `json:"home_goals" jsonschema:"Goals scored by the home team (0-999)"`
	AwayGoals int    `json:"away_goals" jsonschema:"Goals scored by the away team (0-999)"`
}

type tools struct {
	league services.LeagueService
}

// NewServer builds an MCP server with every league tool registered.
func NewServer(ls services.LeagueService) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    serverName,
			Version: serverVersion,
		},
		nil,
	)
	Register(server, ls)
	return server
}

func Register(server *mcp.Server, ls services.LeagueService) {
	t := &tools{league: ls}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_league",
		Description: "Teams and matches of the league, with match ids",
	}, t.listLeague)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "propose_team",
		Description: "Check whether adding a team would discard the current schedule; changes nothing",
	}, t.proposeTeam)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_team",
		Description: "Register a team. Set confirm_discard when the league already has matches",
	}, t.addTeam)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "remove_team",
		Description: "Remove a team together with every match it plays in",
	}, t.removeTeam)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_schedule",
		Description: "Replace all matches with a home-and-away round robin",
	}, t.generateSchedule)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "record_result",
		Description: "Record the score of a pending match",
	}, t.recordResult)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "clear_result",
		Description: "Clear a recorded score so the match is pending again",
	}, t.clearResult)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "standings",
		Description: "Ranked league table: points, goal difference, goals scored",
	}, t.standings)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "reset_league",
		Description: "Remove every team and match",
	}, t.resetLeague)
}

func (t *tools) listLeague(ctx context.Context, req *mcp.CallToolRequest, _ EmptyArgs) (*mcp.CallToolResult, any, error) {
	return toolJSON(t.league.State())
}

func (t *tools) proposeTeam(ctx context.Context, req *mcp.CallToolRequest, args TeamArgs) (*mcp.CallToolResult, any, error) {
	proposal, err := t.league.ProposeAddTeam(args.Name)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(proposal)
}

func (t *tools) addTeam(ctx context.Context, req *mcp.CallToolRequest, args AddTeamArgs) (*mcp.CallToolResult, any, error) {
	state, err := t.league.AddTeam(ctx, args.Name, args.ConfirmDiscard)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(state)
}

func (t *tools) removeTeam(ctx context.Context, req *mcp.CallToolRequest, args TeamArgs) (*mcp.CallToolResult, any, error) {
	state, err := t.league.RemoveTeam(ctx, args.Name)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(state)
}

func (t *tools) generateSchedule(ctx context.Context, req *mcp.CallToolRequest, _ EmptyArgs) (*mcp.CallToolResult, any, error) {
	state, err := t.league.GenerateSchedule(ctx)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(state)
}

func (t *tools) recordResult(ctx context.Context, req *mcp.CallToolRequest, args RecordResultArgs) (*mcp.CallToolResult, any, error) {
	id, err := parseMatchID(args.MatchID)
	if err != nil {
		return toolError(err), nil, nil
	}
	match, err := t.league.RecordResult(ctx, id, args.HomeGoals, args.AwayGoals)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(match)
}

func (t *tools) clearResult(ctx context.Context, req *mcp.CallToolRequest, args MatchArgs) (*mcp.CallToolResult, any, error) {
	id, err := parseMatchID(args.MatchID)
	if err != nil {
		return toolError(err), nil, nil
	}
	match, err := t.league.ClearResult(ctx, id)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(match)
}

func (t *tools) standings(ctx context.Context, req *mcp.CallToolRequest, _ EmptyArgs) (*mcp.CallToolResult, any, error) {
	return toolJSON(t.league.ComputeStandings())
}

func (t *tools) resetLeague(ctx context.Context, req *mcp.CallToolRequest, _ EmptyArgs) (*mcp.CallToolResult, any, error) {
	return toolJSON(t.league.ResetAll(ctx))
}

func parseMatchID(raw string) (models.MatchID, error) {
	id := models.MatchID(raw)
	if _, _, _, err := id.Parse(); err != nil {
		return "", err
	}
	return id, nil
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	res, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(res)},
		},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
