package constant

const (
	ConversationRoleUser      = "user"
	ConversationRoleAssistant = "assistant"
	ConversationRoleSystem    = "system"

	AgentTypeOrchestrator = "orchestrator"
	AgentTypeResearcher   = "researcher"
	AgentTypeSummarizer   = "summarizer"
	AgentTypeAnalyst      = "analyst"
	AgentTypeMemory       = "memory"

	DocumentStatusPending    = "pending"
	DocumentStatusProcessing = "processing"
	DocumentStatusDone       = "done"
	DocumentStatusFailed     = "failed"

	PipelineStepRouting     = "routing"
	PipelineStepResearching = "researching"
	PipelineStepSummarizing = "summarizing"
	PipelineStepAnalyzing   = "analyzing"
	PipelineStepComplete    = "complete"

	// Embedding task types (Gemini API semantics, other providers ignore them)
	EmbeddingTaskDocument = "RETRIEVAL_DOCUMENT"
	EmbeddingTaskQuery    = "RETRIEVAL_QUERY"

	// Ollama Configuration
	OllamaDefaultBaseURL = "http://localhost:11434"
	OllamaDefaultModel   = "llama3.1:8b"
	OllamaChatEndpoint   = "/api/chat"

	OllamaRoleAssistant = "assistant"
	OllamaRoleUser      = "user"
)

// RouteDecisionPrompt asks for a binary memory-vs-research decision.
// Output is JSON only so the parser can trim markdown fences and unmarshal.
const RouteDecisionPrompt = `Decide: run the research pipeline or answer from conversation memory?

Internal logic:
- Question already answered earlier in this conversation -> answer from memory
- Follow-up or clarification about a previous answer -> answer from memory
- Greeting, acknowledgement or small talk -> answer from memory
- New topic, new facts needed, or user asks to look something up -> research
- Empty conversation history -> research
- Uncertain -> research (default)

Use this logic internally. Just output JSON, don't explain.

JSON format:
{"answer_directly": boolean, "reason": "brief"}`

// MemoryAnswerSystemPrompt frames direct answers built only from history.
const MemoryAnswerSystemPrompt = `
{
  "role": "Research Conversation Partner",
  "task": "Answer based on conversation history",
  "constraints": [
    "Be direct and honest",
    "Do not hallucinate info not in history",
    "Stay consistent with previous answers"
  ]
}`
