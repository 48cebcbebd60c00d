package types

// QuestionEvent is posted to the bot's /webhook_question endpoint when a new
// question is committed to the ledger.
type QuestionEvent struct {
	UserID   int64   `json:"user_id"`
	Username string  `json:"username"`
	Message  string  `json:"message"`
	FileURL  *string `json:"file_url,omitempty"`
}

// AnswerEvent is posted to the bot's /webhook_answer endpoint when an operator
// answers a question.
type AnswerEvent struct {
	UserID int64  `json:"user_id"`
	Answer string `json:"answer"`
}
