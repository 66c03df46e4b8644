// Package docs holds the generated swagger spec.
//
//go:generate swag init -g cmd/server/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/healthz": {
            "get": {
                "tags": ["health"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/readyz": {
            "get": {
                "tags": ["health"],
                "summary": "Readiness check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a user",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/strategies": {
            "get": {
                "tags": ["strategies"],
                "summary": "List strategies with live valuation",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["strategies"],
                "summary": "Create a strategy",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/strategies/{id}": {
            "get": {
                "tags": ["strategies"],
                "summary": "Get one strategy with live valuation",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "tags": ["strategies"],
                "summary": "Update a strategy",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["strategies"],
                "summary": "Delete a strategy",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/strategies/{id}/payoff": {
            "get": {
                "tags": ["strategies"],
                "summary": "At-expiration payoff curve",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/strategies/{id}/greeks": {
            "get": {
                "tags": ["strategies"],
                "summary": "Live Greeks per leg",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/strategies/{id}/alerts": {
            "get": {
                "tags": ["strategies"],
                "summary": "Threshold alerts recorded for a strategy",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/quotes": {
            "get": {
                "tags": ["quotes"],
                "summary": "Latest quote snapshots",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Option Strategy Tracker API",
	Description:      "Multi-leg option strategy tracking with live valuation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
