package genai

// Task names accepted by the generation endpoint
const (
	taskReceipt   = "receipt"
	taskCategory  = "categorize"
	taskVoice     = "voice_entry"
	taskPortfolio = "portfolio_analysis"
	taskChat      = "chat"
)

// generateRequest is the wire request: a task name plus a text or image payload
type generateRequest struct {
	Task    string `json:"task"`
	Text    string `json:"text,omitempty"`
	ImageB64 string `json:"image_b64,omitempty"`
	Context any    `json:"context,omitempty"`
}

// generateResponse is the wire response envelope
type generateResponse struct {
	Result struct {
		Text string `json:"text"`
	} `json:"result"`
	Error string `json:"error,omitempty"`
}

// ReceiptFields is the structured result of receipt OCR
type ReceiptFields struct {
	Merchant string `json:"merchant"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
	Category string `json:"category"`
}

// VoiceEntry is the structured result of parsing a spoken transaction
type VoiceEntry struct {
	Amount   string `json:"amount"`
	Type     string `json:"type"` // income or expense
	Category string `json:"category"`
	Note     string `json:"note"`
}

// CategorySuggestion is the result of categorizing a transaction description
type CategorySuggestion struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}
