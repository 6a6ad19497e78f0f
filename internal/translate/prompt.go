package translate

import (
	"strings"
)

// SchemaHeader introduces the schema section of the system prompt.
const SchemaHeader = "AVAILABLE GRAPH SCHEMA:"

// OnlySchemaNames is the grounding sentence appended after the schema.
const OnlySchemaNames = "STRICT REQUIREMENT: You MUST use ONLY the node labels, relationship types, and property keys listed above."

const systemRules = `You are an expert Neo4j Cypher query generator. Your task is to convert natural language questions into valid Cypher queries.

CRITICAL RULES:
1. Generate ONLY valid Cypher queries
2. Use proper Cypher syntax for Neo4j 4.x or 5.x
3. Return only the Cypher query without explanations or markdown
4. Do NOT wrap the query in markdown code blocks (no ` + "```cypher or ```" + `)
5. Do NOT use any node labels or relationship types that are not in the provided schema
6. Do NOT hallucinate or invent labels - use ONLY what's in the schema

CYPHER SYNTAX REQUIREMENTS:
- UNION queries MUST have identical column names in all parts
  WRONG: MATCH (d:Disease) RETURN d.name AS disease UNION MATCH (s:Symptom) RETURN s.name AS symptom
  RIGHT: MATCH (d:Disease) RETURN d.name AS name UNION MATCH (s:Symptom) RETURN s.name AS name
- Use labels() function to get node type when combining different labels
- Prefer WHERE with OR over UNION when possible for better performance
- Always use RETURN clause to specify what data to retrieve
- Match node and relationship names exactly as shown in schema (case-sensitive)

`

// Prompt is the system/user pair sent to the model.
type Prompt struct {
	System string
	User   string
}

// BuildPrompt composes the grounding rules, the optional schema section and
// the task instruction. A blank schema omits the schema section entirely.
func BuildPrompt(question, schema string) Prompt {
	var sb strings.Builder
	sb.WriteString(systemRules)

	if strings.TrimSpace(schema) != "" {
		sb.WriteString(SchemaHeader)
		sb.WriteString("\n")
		sb.WriteString(schema)
		sb.WriteString("\n\n")
		sb.WriteString(OnlySchemaNames)
		sb.WriteString("\n")
		sb.WriteString("Do NOT use any labels that are not explicitly listed in the schema.\n")
	}

	return Prompt{
		System: sb.String(),
		User:   userPrompt(question),
	}
}

func userPrompt(question string) string {
	return "Convert the following natural language question to a Cypher query:\n\n" +
		question +
		"\n\nProvide only the Cypher query, nothing else."
}
