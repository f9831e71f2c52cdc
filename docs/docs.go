// Package docs holds the OpenAPI document served under /swagger.
//
//go:generate swag init -g cmd/api/main.go -o docs --parseInternal
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
        "/analytics/summary": {
            "get": {
                "summary": "Spending summary",
                "description": "Monthly total in lira across all currencies, with subscription and underused counts",
                "tags": [
                    "Analytics"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/analytics/underused": {
            "get": {
                "summary": "Underused subscriptions",
                "tags": [
                    "Analytics"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/analytics/usage/{id}": {
            "get": {
                "summary": "Usage statistics",
                "tags": [
                    "Analytics"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Subscription ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Subscription not found"
                    }
                }
            }
        },
        "/analytics/price-history/{id}": {
            "get": {
                "summary": "Price history",
                "tags": [
                    "Analytics"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Subscription ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Subscription not found"
                    }
                }
            }
        },
        "/analytics/categories": {
            "get": {
                "summary": "Category breakdown",
                "tags": [
                    "Analytics"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/auth/register": {
            "post": {
                "summary": "Register",
                "description": "Create an account and receive a bearer token",
                "tags": [
                    "Auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Registration details",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Account created"
                    },
                    "400": {
                        "description": "Invalid request or email already in use"
                    }
                }
            }
        },
        "/auth/login": {
            "post": {
                "summary": "User login",
                "description": "Authenticate user with email and password",
                "tags": [
                    "Auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Login credentials",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Successfully authenticated"
                    },
                    "400": {
                        "description": "Invalid request"
                    },
                    "401": {
                        "description": "Invalid credentials"
                    }
                }
            }
        },
        "/auth/me": {
            "get": {
                "summary": "Current user",
                "tags": [
                    "Auth"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "401": {
                        "description": "Missing token"
                    },
                    "403": {
                        "description": "Invalid token"
                    }
                }
            }
        },
        "/consent/status": {
            "get": {
                "summary": "Consent status",
                "tags": [
                    "Consent"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/consent/save": {
            "post": {
                "summary": "Save consent",
                "tags": [
                    "Consent"
                ],
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Consent",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/consent/privacy-policy": {
            "get": {
                "summary": "Privacy policy",
                "tags": [
                    "Consent"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/discover/feed": {
            "get": {
                "summary": "Friends feed",
                "tags": [
                    "Discover"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "limit",
                        "in": "query",
                        "required": false,
                        "description": "Page size",
                        "type": "integer"
                    },
                    {
                        "name": "offset",
                        "in": "query",
                        "required": false,
                        "description": "Offset",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/discover/popular": {
            "get": {
                "summary": "Popular among friends",
                "tags": [
                    "Discover"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/discover/trending": {
            "get": {
                "summary": "Trending",
                "tags": [
                    "Discover"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/discover/suggestions/{category}": {
            "get": {
                "summary": "Category suggestions",
                "tags": [
                    "Discover"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "category",
                        "in": "path",
                        "required": true,
                        "description": "Category",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/discover/friend/{friendId}": {
            "get": {
                "summary": "Friend activity",
                "tags": [
                    "Discover"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "friendId",
                        "in": "path",
                        "required": true,
                        "description": "Friend user ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Not friends"
                    }
                }
            }
        },
        "/discover/weekly-featured": {
            "get": {
                "summary": "Weekly featured",
                "tags": [
                    "Discover"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/discover/weekly-featured/{id}/impression": {
            "post": {
                "summary": "Record impression",
                "tags": [
                    "Discover"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Featured entry ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Entry not found"
                    }
                }
            }
        },
        "/discover/weekly-featured/{id}/click": {
            "post": {
                "summary": "Record click",
                "tags": [
                    "Discover"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Featured entry ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Entry not found"
                    }
                }
            }
        },
        "/friends/search": {
            "get": {
                "summary": "Search users",
                "tags": [
                    "Friends"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "query",
                        "in": "query",
                        "required": true,
                        "description": "At least 2 characters",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Query too short"
                    }
                }
            }
        },
        "/friends/request": {
            "post": {
                "summary": "Send friend request",
                "tags": [
                    "Friends"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Target user",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Self request, already friends or request exists"
                    },
                    "403": {
                        "description": "Target does not accept requests"
                    },
                    "404": {
                        "description": "User not found"
                    }
                }
            }
        },
        "/friends/requests/incoming": {
            "get": {
                "summary": "Incoming requests",
                "tags": [
                    "Friends"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/friends/requests/outgoing": {
            "get": {
                "summary": "Outgoing requests",
                "tags": [
                    "Friends"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/friends/request/{requestId}/accept": {
            "post": {
                "summary": "Accept request",
                "tags": [
                    "Friends"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "requestId",
                        "in": "path",
                        "required": true,
                        "description": "Request ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Request not found"
                    }
                }
            }
        },
        "/friends/request/{requestId}/reject": {
            "post": {
                "summary": "Reject request",
                "tags": [
                    "Friends"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "requestId",
                        "in": "path",
                        "required": true,
                        "description": "Request ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Request not found"
                    }
                }
            }
        },
        "/friends/list": {
            "get": {
                "summary": "List friends",
                "tags": [
                    "Friends"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/friends/{friendId}": {
            "delete": {
                "summary": "Remove friend",
                "tags": [
                    "Friends"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "friendId",
                        "in": "path",
                        "required": true,
                        "description": "Friend user ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Friendship not found"
                    }
                }
            }
        },
        "/health": {
            "get": {
                "summary": "Liveness probe",
                "description": "Check if the application is alive",
                "tags": [
                    "Health"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Application is alive"
                    }
                }
            }
        },
        "/readyz": {
            "get": {
                "summary": "Readiness probe",
                "description": "Check that the backing store answers",
                "tags": [
                    "Health"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Application is ready"
                    },
                    "503": {
                        "description": "Service unavailable"
                    }
                }
            }
        },
        "/invite/token": {
            "get": {
                "summary": "Invite token",
                "tags": [
                    "Invite"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/invite/user/{token}": {
            "get": {
                "summary": "Resolve invite",
                "tags": [
                    "Invite"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "token",
                        "in": "path",
                        "required": true,
                        "description": "Invite token",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Own invite"
                    },
                    "404": {
                        "description": "Invite not found"
                    }
                }
            }
        },
        "/invite/accept/{token}": {
            "post": {
                "summary": "Accept invite",
                "tags": [
                    "Invite"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "token",
                        "in": "path",
                        "required": true,
                        "description": "Invite token",
                        "type": "string"
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Own invite, already friends or request exists"
                    },
                    "404": {
                        "description": "Invite not found"
                    }
                }
            }
        },
        "/premium/status": {
            "get": {
                "summary": "Premium status",
                "tags": [
                    "Premium"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/premium/features": {
            "get": {
                "summary": "Plan catalogue",
                "tags": [
                    "Premium"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/premium/subscribe": {
            "post": {
                "summary": "Subscribe to premium",
                "description": "Activates the plan and adds the premium subscription to the caller's list",
                "tags": [
                    "Premium"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Plan",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Unknown plan"
                    }
                }
            }
        },
        "/premium/cancel": {
            "post": {
                "summary": "Cancel premium",
                "tags": [
                    "Premium"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/profile/me": {
            "get": {
                "summary": "Own profile",
                "tags": [
                    "Profile"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "put": {
                "summary": "Update name",
                "tags": [
                    "Profile"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "New name",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Name too short"
                    }
                }
            }
        },
        "/profile/{userId}": {
            "get": {
                "summary": "View profile",
                "tags": [
                    "Profile"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "userId",
                        "in": "path",
                        "required": true,
                        "description": "User ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "403": {
                        "description": "Profile is private"
                    },
                    "404": {
                        "description": "User not found"
                    }
                }
            }
        },
        "/profile/settings/privacy": {
            "get": {
                "summary": "Privacy settings",
                "tags": [
                    "Profile"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "put": {
                "summary": "Update privacy settings",
                "tags": [
                    "Profile"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Fields to change",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/recommendations/profile": {
            "post": {
                "summary": "Save occupation profile",
                "tags": [
                    "Recommendations"
                ],
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Occupation profile",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Invalid request"
                    }
                }
            },
            "get": {
                "summary": "Get occupation profile",
                "tags": [
                    "Recommendations"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/recommendations/community": {
            "get": {
                "summary": "Community recommendations",
                "tags": [
                    "Recommendations"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/recommendations/occupations": {
            "get": {
                "summary": "Occupations",
                "tags": [
                    "Recommendations"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/subscriptions": {
            "get": {
                "summary": "List subscriptions",
                "description": "Newest first",
                "tags": [
                    "Subscriptions"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "summary": "Create subscription",
                "description": "Free accounts are capped; the 403 response carries upgrade details",
                "tags": [
                    "Subscriptions"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Subscription",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Invalid request"
                    },
                    "403": {
                        "description": "Free-tier limit reached"
                    }
                }
            }
        },
        "/subscriptions/{id}": {
            "get": {
                "summary": "Get subscription",
                "tags": [
                    "Subscriptions"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Subscription ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Subscription not found"
                    }
                }
            },
            "put": {
                "summary": "Update subscription",
                "description": "A price change is recorded in the price history",
                "tags": [
                    "Subscriptions"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Subscription ID",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "description": "Fields to change",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "No fields to update"
                    },
                    "404": {
                        "description": "Subscription not found"
                    }
                }
            },
            "delete": {
                "summary": "Delete subscription",
                "tags": [
                    "Subscriptions"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Subscription ID",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Subscription not found"
                    }
                }
            }
        },
        "/subscriptions/{id}/usage": {
            "post": {
                "summary": "Log usage",
                "tags": [
                    "Subscriptions"
                ],
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "description": "Subscription ID",
                        "type": "integer"
                    },
                    {
                        "name": "request",
                        "in": "body",
                        "required": false,
                        "description": "Usage time",
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Subscription not found"
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Paycal API",
	Description:      "Subscription tracking with spending analytics, premium plans and a social layer.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
