package validation

const createTodoSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "description": {"type": "string", "minLength": 1},
    "completed": {"type": "boolean"}
  },
  "required": ["title", "description"],
  "additionalProperties": false
}`

const updateTodoSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "title": {"type": "string", "minLength": 1},
    "description": {"type": "string", "minLength": 1},
    "completed": {"type": "boolean"}
  },
  "additionalProperties": false
}`
