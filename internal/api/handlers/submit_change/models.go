package submit_change

// SubmitChangeRequest HTTP request model
type SubmitChangeRequest struct {
	SessionID string `json:"sessionId"`
}
