package handler

type AnalyzeRequest struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

type CompareRequest struct {
	Topic   string   `json:"topic"`
	Sources []string `json:"sources"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}
