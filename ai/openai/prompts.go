package openai

import "fmt"

const enhancementResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "searchText": {
      "type": "string"
    },
    "searchTerms": {
      "type": "array",
      "items": {"type": "string"}
    },
    "visualElements": {
      "type": "array",
      "items": {"type": "string"}
    },
    "topics": {
      "type": "array",
      "items": {"type": "string"}
    },
    "temporalContext": {
      "type": "object",
      "properties": {
        "timeframe": {"type": "string"},
        "recency": {"type": "string", "enum": ["recent", "old", "any"]}
      },
      "required": ["recency"],
      "additionalProperties": false
    }
  },
  "required": ["searchText", "searchTerms", "visualElements", "topics", "temporalContext"],
  "additionalProperties": false
}`

const enhancementPromptTemplate = `You expand a user's question about videos they have saved into search hints and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- "searchText" is an expanded version of the question suitable for semantic search; keep the user's intent, add synonyms for key nouns.
- "searchTerms" are lowercase keywords drawn from the question and its likely synonyms, 3-10 entries.
- "visualElements" are concrete things one would SEE in a matching video (objects, actions, settings). Empty array if the question implies none.
- "topics" are short subject labels a matching video would be tagged with. Empty array if unclear.
- "temporalContext.recency" is "recent" if the question refers to something saved lately, "old" for something from a while ago, otherwise "any". "timeframe" echoes any literal time expression ("last week", "in March"), else empty string.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "How do you make pizza dough?"
Output:
{
  "searchText": "how to make pizza dough kneading flour yeast recipe",
  "searchTerms": ["pizza", "dough", "make", "recipe", "knead", "flour", "yeast"],
  "visualElements": ["flour", "dough", "kneading", "mixing bowl"],
  "topics": ["pizza dough", "baking", "cooking tutorial"],
  "temporalContext": {"timeframe": "", "recency": "any"}
}

Example (temporal):
Input: "that workout video I saved last week"
Output:
{
  "searchText": "workout exercise fitness training video",
  "searchTerms": ["workout", "exercise", "fitness", "training"],
  "visualElements": ["gym", "exercise", "weights"],
  "topics": ["fitness", "workout"],
  "temporalContext": {"timeframe": "last week", "recency": "recent"}
}`

// buildSystemPrompt creates the system prompt with the response schema embedded.
func buildSystemPrompt() string {
	return fmt.Sprintf(enhancementPromptTemplate, enhancementResponseSchema)
}
