package catalog

const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["agents", "templates"],
  "properties": {
    "agents": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name", "status"],
        "properties": {
          "id": {"type": "integer"},
          "name": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "status": {"enum": ["active", "paused", "error"]},
          "lastRun": {"type": "string"},
          "category": {"type": "string"},
          "template": {"type": "string"},
          "runs": {"type": "integer", "minimum": 0},
          "prompt": {"type": "string"}
        }
      }
    },
    "templates": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name", "category"],
        "properties": {
          "id": {"type": "integer"},
          "name": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "category": {"type": "string"},
          "icon": {"type": "string"},
          "difficulty": {"enum": ["Easy", "Medium", "Hard"]},
          "estimatedTime": {"type": "string"},
          "tags": {"type": "array", "items": {"type": "string"}},
          "defaultPrompt": {"type": "string"}
        }
      }
    },
    "workflowSteps": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "type", "title"],
        "properties": {
          "id": {"type": "integer"},
          "type": {"enum": ["trigger", "action", "condition"]},
          "title": {"type": "string"},
          "description": {"type": "string"},
          "icon": {"type": "string"},
          "config": {"type": ["object", "null"]}
        }
      }
    },
    "stepPalette": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["type", "title"],
        "properties": {
          "type": {"enum": ["trigger", "action", "condition"]},
          "title": {"type": "string"}
        }
      }
    },
    "categories": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name"],
        "properties": {
          "id": {"type": "string"},
          "name": {"type": "string"},
          "count": {"type": "integer", "minimum": 0}
        }
      }
    },
    "agentCategories": {
      "type": "array",
      "items": {"type": "object", "required": ["value", "label"]}
    },
    "promptPresets": {
      "type": "array",
      "items": {"type": "object", "required": ["name", "prompt"]}
    },
    "executionLogs": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "agentId", "status"],
        "properties": {
          "id": {"type": "integer"},
          "agentId": {"type": "integer"},
          "timestamp": {"type": "string"},
          "status": {"enum": ["success", "error"]},
          "duration": {"type": "integer", "minimum": 0},
          "stepLogs": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["step", "status"],
              "properties": {
                "status": {"enum": ["success", "error"]}
              }
            }
          }
        }
      }
    }
  }
}`
