package models

// SkippedRecord describes a stored record dropped during a partial load
type SkippedRecord struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}
