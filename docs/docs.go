// Package docs registra en swag la especificación OpenAPI que sirve /swagger/doc.json.
// Se mantiene a mano: al tocar las anotaciones de un handler hay que actualizar docTemplate.
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
        "/doctors_notes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["doctors_notes"],
                "summary": "Listar notas médicas",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/notes.noteResponse"}}},
                    "500": {"description": "internal error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "post": {
                "description": "created_at lo fija el servidor; si viene en el cuerpo se ignora.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["doctors_notes"],
                "summary": "Crear nota médica",
                "parameters": [
                    {"description": "Nota", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/notes.createNoteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/notes.noteResponse"}},
                    "400": {"description": "errores por campo", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}}
                }
            }
        },
        "/doctors_notes/{noteID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["doctors_notes"],
                "summary": "Obtener nota médica",
                "parameters": [
                    {"type": "string", "description": "ID de la nota", "name": "noteID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/notes.noteResponse"}},
                    "404": {"description": "doctors note not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "delete": {
                "tags": ["doctors_notes"],
                "summary": "Eliminar nota médica",
                "parameters": [
                    {"type": "string", "description": "ID de la nota", "name": "noteID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "doctors note not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/logs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "Listar registros de dosis",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/doselogs.doseLogResponse"}}},
                    "500": {"description": "internal error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "post": {
                "description": "Registra una toma (was_taken=true, por defecto) o una omisión (was_taken=false).",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "Registrar dosis",
                "parameters": [
                    {"description": "Registro; taken_at en RFC3339", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/doselogs.doseLogRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/doselogs.doseLogResponse"}},
                    "400": {"description": "errores por campo", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}}
                }
            }
        },
        "/logs/filter": {
            "get": {
                "description": "Devuelve los registros cuyo taken_at cae entre start y end (inclusive, días UTC).",
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "Filtrar registros por fecha",
                "parameters": [
                    {"type": "string", "description": "Fecha inicial (YYYY-MM-DD)", "name": "start", "in": "query", "required": true},
                    {"type": "string", "description": "Fecha final (YYYY-MM-DD)", "name": "end", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/doselogs.doseLogResponse"}}},
                    "400": {"description": "fechas faltantes, inválidas o rango invertido", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}}
                }
            }
        },
        "/logs/{logID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "Obtener registro de dosis",
                "parameters": [
                    {"type": "string", "description": "ID del registro", "name": "logID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/doselogs.doseLogResponse"}},
                    "404": {"description": "dose log not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "Reemplazar registro de dosis",
                "parameters": [
                    {"type": "string", "description": "ID del registro", "name": "logID", "in": "path", "required": true},
                    {"description": "Registro completo", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/doselogs.doseLogRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/doselogs.doseLogResponse"}},
                    "400": {"description": "errores por campo", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}},
                    "404": {"description": "dose log not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "delete": {
                "tags": ["logs"],
                "summary": "Eliminar registro de dosis",
                "parameters": [
                    {"type": "string", "description": "ID del registro", "name": "logID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "dose log not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/medications": {
            "get": {
                "description": "Lista todos los medicamentos con su adherencia histórica (% de dosis tomadas sobre registradas).",
                "produces": ["application/json"],
                "tags": ["medications"],
                "summary": "Listar medicamentos",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/medications.medicationResponse"}}},
                    "500": {"description": "internal error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "post": {
                "description": "Crea un medicamento. ` + "`" + `name` + "`" + ` no puede estar vacío y ` + "`" + `dosage_mg` + "`" + ` debe ser > 0. ` + "`" + `prescribed_per_day` + "`" + ` = 0 se acepta.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["medications"],
                "summary": "Crear medicamento",
                "parameters": [
                    {"description": "Datos del medicamento", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/medications.medicationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/medications.medicationResponse"}},
                    "400": {"description": "errores por campo", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}}
                }
            }
        },
        "/medications/{medicationID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["medications"],
                "summary": "Obtener medicamento",
                "parameters": [
                    {"type": "string", "description": "ID del medicamento", "name": "medicationID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/medications.medicationResponse"}},
                    "404": {"description": "medication not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "put": {
                "description": "Reemplaza todos los campos del medicamento (PUT). Mismas reglas que la creación.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["medications"],
                "summary": "Reemplazar medicamento",
                "parameters": [
                    {"type": "string", "description": "ID del medicamento", "name": "medicationID", "in": "path", "required": true},
                    {"description": "Datos del medicamento", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/medications.medicationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/medications.medicationResponse"}},
                    "400": {"description": "errores por campo", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}},
                    "404": {"description": "medication not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "delete": {
                "description": "Elimina el medicamento junto con sus registros de dosis y notas médicas.",
                "tags": ["medications"],
                "summary": "Eliminar medicamento",
                "parameters": [
                    {"type": "string", "description": "ID del medicamento", "name": "medicationID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "medication not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/medications/{medicationID}/adherence": {
            "get": {
                "description": "Porcentaje de dosis tomadas entre start y end (inclusive) sobre las esperadas.",
                "produces": ["application/json"],
                "tags": ["medications"],
                "summary": "Adherencia en un período",
                "parameters": [
                    {"type": "string", "description": "ID del medicamento", "name": "medicationID", "in": "path", "required": true},
                    {"type": "string", "description": "Fecha inicial (YYYY-MM-DD)", "name": "start", "in": "query", "required": true},
                    {"type": "string", "description": "Fecha final (YYYY-MM-DD)", "name": "end", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/medications.adherenceResponse"}},
                    "400": {"description": "fechas faltantes, inválidas o rango invertido", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}},
                    "404": {"description": "medication not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/medications/{medicationID}/expected-doses": {
            "get": {
                "description": "Calcula prescribed_per_day * days. ` + "`" + `days` + "`" + ` es obligatorio y debe ser >= 0.",
                "produces": ["application/json"],
                "tags": ["medications"],
                "summary": "Dosis esperadas",
                "parameters": [
                    {"type": "string", "description": "ID del medicamento", "name": "medicationID", "in": "path", "required": true},
                    {"type": "integer", "description": "Cantidad de días (>= 0)", "name": "days", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/medications.expectedDosesResponse"}},
                    "400": {"description": "days faltante o inválido", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}},
                    "404": {"description": "medication not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/medications/{medicationID}/info": {
            "get": {
                "description": "Consulta el formulario externo por el nombre del medicamento. Un fallo del servicio externo devuelve 502.",
                "produces": ["application/json"],
                "tags": ["medications"],
                "summary": "Información del medicamento (openFDA)",
                "parameters": [
                    {"type": "string", "description": "ID del medicamento", "name": "medicationID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/druginfo.Info"}},
                    "404": {"description": "medication not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "error del servicio externo", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "doselogs.doseLogRequest": {
            "type": "object",
            "properties": {
                "medication": {"type": "string"},
                "taken_at": {"description": "RFC3339", "type": "string"},
                "was_taken": {"type": "boolean"}
            }
        },
        "doselogs.doseLogResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "medication": {"type": "string"},
                "taken_at": {"type": "string"},
                "was_taken": {"type": "boolean"}
            }
        },
        "druginfo.Info": {
            "type": "object",
            "properties": {
                "manufacturer": {"type": "string"},
                "name": {"type": "string"},
                "purpose": {"type": "array", "items": {"type": "string"}},
                "warnings": {"type": "array", "items": {"type": "string"}}
            }
        },
        "medications.adherenceResponse": {
            "type": "object",
            "properties": {
                "adherence": {"type": "number"},
                "end": {"type": "string"},
                "medication_id": {"type": "string"},
                "start": {"type": "string"}
            }
        },
        "medications.expectedDosesResponse": {
            "type": "object",
            "properties": {
                "days": {"type": "integer"},
                "expected_doses": {"type": "integer"},
                "medication_id": {"type": "string"}
            }
        },
        "medications.medicationRequest": {
            "type": "object",
            "properties": {
                "dosage_mg": {"type": "number"},
                "name": {"type": "string"},
                "prescribed_per_day": {"type": "integer"}
            }
        },
        "medications.medicationResponse": {
            "type": "object",
            "properties": {
                "adherence": {"type": "number"},
                "dosage_mg": {"type": "number"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "prescribed_per_day": {"type": "integer"}
            }
        },
        "notes.createNoteRequest": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "medication": {"type": "string"}
            }
        },
        "notes.noteResponse": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "medication": {"type": "string"}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "MedTracker API",
	Description:      "Registro de medicamentos, tomas y notas médicas con cálculo de adherencia.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
