// Package docs registers the OpenAPI description of the league API with swag
// so http-swagger can serve it under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/league": {
            "get": {
                "produces": ["application/json"],
                "tags": ["league"],
                "summary": "Current teams and matches",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/LeagueEnvelope"}}}
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["league"],
                "summary": "Remove every team and match",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/LeagueEnvelope"}}}
            }
        },
        "/api/teams/proposals": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "Check whether adding a team would discard the schedule",
                "parameters": [{"in": "body", "name": "team", "required": true, "schema": {"$ref": "#/definitions/AddTeamInput"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ProposalEnvelope"}},
                    "400": {"description": "Empty name", "schema": {"$ref": "#/definitions/Error"}},
                    "409": {"description": "Duplicate team", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/teams": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "Register a team",
                "parameters": [{"in": "body", "name": "team", "required": true, "schema": {"$ref": "#/definitions/AddTeamInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/LeagueEnvelope"}},
                    "400": {"description": "Empty name", "schema": {"$ref": "#/definitions/Error"}},
                    "409": {"description": "Duplicate team or schedule discard declined", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/teams/{teamName}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "Remove a team and its matches",
                "parameters": [{"in": "path", "name": "teamName", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LeagueEnvelope"}},
                    "404": {"description": "Team not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/schedule": {
            "post": {
                "produces": ["application/json"],
                "tags": ["schedule"],
                "summary": "Generate a home-and-away round robin, replacing all matches",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/LeagueEnvelope"}},
                    "400": {"description": "Fewer than two teams", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/matches/{matchID}/result": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Record the score of a pending match",
                "parameters": [
                    {"in": "path", "name": "matchID", "required": true, "type": "string"},
                    {"in": "body", "name": "score", "required": true, "schema": {"$ref": "#/definitions/ScoreInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/MatchEnvelope"}},
                    "400": {"description": "Invalid score", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Match not found", "schema": {"$ref": "#/definitions/Error"}},
                    "409": {"description": "Match already scored", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Clear a recorded score",
                "parameters": [{"in": "path", "name": "matchID", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/MatchEnvelope"}},
                    "404": {"description": "Match not found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/standings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["standings"],
                "summary": "Ranked league table",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/StandingsEnvelope"}}}
            }
        }
    },
    "definitions": {
        "AddTeamInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "confirm_discard": {"type": "boolean"}
            }
        },
        "ScoreInput": {
            "type": "object",
            "properties": {
                "home_goals": {"type": "integer", "minimum": 0, "maximum": 999},
                "away_goals": {"type": "integer", "minimum": 0, "maximum": 999}
            }
        },
        "Match": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "leg": {"type": "integer", "enum": [1, 2]},
                "home": {"type": "string"},
                "away": {"type": "string"},
                "home_goals": {"type": "integer", "x-nullable": true},
                "away_goals": {"type": "integer", "x-nullable": true}
            }
        },
        "League": {
            "type": "object",
            "properties": {
                "teams": {"type": "array", "items": {"type": "string"}},
                "matches": {"type": "array", "items": {"$ref": "#/definitions/Match"}}
            }
        },
        "StandingsRow": {
            "type": "object",
            "properties": {
                "position": {"type": "integer"},
                "team": {"type": "string"},
                "played": {"type": "integer"},
                "wins": {"type": "integer"},
                "draws": {"type": "integer"},
                "losses": {"type": "integer"},
                "goals_for": {"type": "integer"},
                "goals_against": {"type": "integer"},
                "diff": {"type": "integer"},
                "points": {"type": "integer"}
            }
        },
        "Proposal": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "discards_schedule": {"type": "boolean"},
                "matches_discarded": {"type": "integer"}
            }
        },
        "LeagueEnvelope": {"type": "object", "properties": {"league": {"$ref": "#/definitions/League"}}},
        "MatchEnvelope": {"type": "object", "properties": {"match": {"$ref": "#/definitions/Match"}}},
        "ProposalEnvelope": {"type": "object", "properties": {"proposal": {"$ref": "#/definitions/Proposal"}}},
        "StandingsEnvelope": {"type": "object", "properties": {"standings": {"type": "array", "items": {"$ref": "#/definitions/StandingsRow"}}}},
        "Error": {"type": "object", "properties": {"error": {"type": "string"}}}
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "League Tracker API",
	Description:      "Round-robin league: teams, fixtures, results and standings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
