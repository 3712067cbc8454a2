package domain

// RAGQuestion is the body sent to the retrieval-augmented endpoint.
type RAGQuestion struct {
	Question string `json:"question"`
}

// RAGAnswer is the endpoint reply.
type RAGAnswer struct {
	Answer string `json:"answer"`
}
