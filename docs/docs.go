// Package docs registra la especificación OpenAPI que sirve /swagger.
// Refleja las anotaciones godoc de los handlers; regenerar con `go generate ./cmd/pillpal`.
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
        "/health": {
            "get": {
                "produces": [
                    "text/plain"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "ok",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/medications": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "medications"
                ],
                "summary": "Listar medicaciones",
                "parameters": [
                    {
                        "type": "string",
                        "description": "All | Morning | Afternoon | Evening",
                        "name": "filter",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/tracker.medicationResponse"
                            }
                        }
                    },
                    "400": {
                        "description": "unknown filter",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            },
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "medications"
                ],
                "summary": "Registrar medicación",
                "parameters": [
                    {
                        "description": "Datos de la medicación",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/tracker.medicationRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/tracker.medicationResponse"
                        }
                    },
                    "400": {
                        "description": "invalid json / validación",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/medications/{medicationID}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "medications"
                ],
                "summary": "Obtener medicación",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID de la medicación",
                        "name": "medicationID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/tracker.medicationResponse"
                        }
                    },
                    "404": {
                        "description": "medication not found",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            },
            "put": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "medications"
                ],
                "summary": "Editar medicación",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID de la medicación",
                        "name": "medicationID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Datos completos; reminder_time null quita el recordatorio",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/tracker.medicationRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/tracker.medicationResponse"
                        }
                    },
                    "400": {
                        "description": "invalid json / validación",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "404": {
                        "description": "medication not found",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "medications"
                ],
                "summary": "Borrar medicación",
                "description": "Borra la medicación y todas sus dosis. Irreversible: exige X-Confirm: yes.",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID de la medicación",
                        "name": "medicationID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "yes",
                        "name": "X-Confirm",
                        "in": "header",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "medication not found",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "428": {
                        "description": "confirmation required",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/medications/{medicationID}/doses": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "doses"
                ],
                "summary": "Marcar dosis como tomada",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID de la medicación",
                        "name": "medicationID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/tracker.doseResponse"
                        }
                    },
                    "404": {
                        "description": "medication not found",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/medications/{medicationID}/info": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "medications"
                ],
                "summary": "Descripción de la medicación",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID de la medicación",
                        "name": "medicationID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/medinfo.infoResponse"
                        }
                    },
                    "404": {
                        "description": "medication not found",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/history": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "doses"
                ],
                "summary": "Historial de dosis",
                "parameters": [
                    {
                        "type": "string",
                        "description": "desc (default) | asc",
                        "name": "order",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/tracker.doseResponse"
                            }
                        }
                    },
                    "400": {
                        "description": "unknown order",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "tracker.medicationRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "dosage": {
                    "type": "string"
                },
                "frequency": {
                    "type": "string"
                },
                "times_of_day": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "reminder_time": {
                    "type": "string",
                    "x-nullable": true
                }
            }
        },
        "tracker.scheduleResponse": {
            "type": "object",
            "properties": {
                "frequency": {
                    "type": "string"
                },
                "times_of_day": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "label": {
                    "type": "string"
                }
            }
        },
        "tracker.medicationResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "dosage": {
                    "type": "string"
                },
                "schedule": {
                    "$ref": "#/definitions/tracker.scheduleResponse"
                },
                "reminder_time": {
                    "type": "string",
                    "x-nullable": true
                }
            }
        },
        "tracker.doseResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "medication_id": {
                    "type": "string"
                },
                "medication_name": {
                    "type": "string"
                },
                "dosage": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                },
                "taken_at": {
                    "type": "string"
                }
            }
        },
        "medinfo.infoResponse": {
            "type": "object",
            "properties": {
                "medication_id": {
                    "type": "string"
                },
                "medication_name": {
                    "type": "string"
                },
                "content": {
                    "type": "string"
                },
                "error": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PillPal API",
	Description:      "API local para registrar medicaciones, tomas y recordatorios.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
