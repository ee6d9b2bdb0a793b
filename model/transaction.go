package model

// ProcessedTransaction marks a provider transaction as applied.
type ProcessedTransaction struct {
	Provider   string
	TransID    string
	Reference  string
	ResultCode int
}
