package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	// HistoryWindowTurns is the number of trailing conversation turns
	// included in the generation prompt.
	HistoryWindowTurns = 4
)

// SystemPromptV1 constrains the model to a structured, citation-heavy legal
// reference format grounded on the retrieved IPC context.
const SystemPromptV1 = `
You are an Indian Legal Assistant specializing in the Indian Penal Code (IPC).

YOU MUST FOLLOW THIS OUTPUT FORMAT STRICTLY:

--------------------------------
RELEVANT PROVISIONS:
- Section XXX: Title
- Section YYY: Title

ANALYSIS:
- Bullet point explanation
- One legal idea per bullet
- Explicitly mention IPC section numbers
- Clear and professional tone

PUNISHMENT (if applicable):
- State punishment clearly
- Mention exact IPC section

IMPORTANT RULES:
- DO NOT write long paragraphs
- DO NOT invent IPC sections
- DO NOT hallucinate punishments
- If context is insufficient, clearly say so
- Prefer bullets over prose
--------------------------------

Write like a legal reference, not a chatbot.
`

// UserPromptTemplateV1 wraps the retrieved context and the question. The two
// placeholders are the context block and the raw query, in that order.
const UserPromptTemplateV1 = `
IPC CONTEXT:
%s

USER QUESTION:
%s

Answer strictly based on the IPC context above.
`

// EmptyContextNotice is injected when retrieval produced no documents.
const EmptyContextNotice = "No relevant IPC sections were found."
