package models

// InsertResult mirrors the acknowledgement returned for a single insert
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// UpdateResult mirrors the acknowledgement returned for an update
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult mirrors the acknowledgement returned for a delete
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// RowError describes a spreadsheet row that could not be imported
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportSummary reports the outcome of a spreadsheet import
type ImportSummary struct {
	BatchID  string     `json:"batchId"`
	File     string     `json:"file"`
	Inserted int        `json:"inserted"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors,omitempty"`
}
