package extract

import "github.com/sashabaranov/go-openai/jsonschema"

// claimListSchema declares the extraction output shape: required fields,
// enum membership, at least one claim. Undeclared properties are rejected.
func claimListSchema() jsonschema.Definition {
	entity := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"name": {Type: jsonschema.String},
			"type": {
				Type: jsonschema.String,
				Enum: []string{"PERSON", "ORG", "GPE", "EVENT", "PRODUCT", "OTHER"},
			},
		},
		Required:             []string{"name", "type"},
		AdditionalProperties: false,
	}

	claim := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"id":         {Type: jsonschema.String},
			"text":       {Type: jsonschema.String},
			"importance": {Type: jsonschema.String, Enum: []string{"high", "medium", "low"}},
			"subject":    {Type: jsonschema.String},
			"predicate":  {Type: jsonschema.String},
			"object":     {Type: jsonschema.String},
			"time":       {Type: jsonschema.String},
			"location":   {Type: jsonschema.String},
			"entities":   {Type: jsonschema.Array, Items: &entity},
			"retrieval_query": {
				Type: jsonschema.String,
			},
			"source_sentence": {
				Type: jsonschema.String,
			},
		},
		Required: []string{
			"id", "text", "importance", "subject", "predicate", "object",
			"time", "location", "entities", "retrieval_query", "source_sentence",
		},
		AdditionalProperties: false,
	}

	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"article_title": {Type: jsonschema.String},
			"claims":        {Type: jsonschema.Array, Items: &claim},
		},
		Required:             []string{"article_title", "claims"},
		AdditionalProperties: false,
	}
}
