package model

const (
	ReasonNoMatch   = "no matching user found"
	ReasonAmbiguous = "ambiguous identifier, multiple users matched"
)

// FailureRecord is one report row. UserID is the identifier as it appeared
// in the mapping table; UserKey is the resolved platform key, empty when the
// row never resolved.
type FailureRecord struct {
	UserID  string `json:"user_id"`
	UserKey string `json:"user_key"`
	Reason  string `json:"reason"`
}

// Report lists every row that failed. Success is silent: an empty report
// means every mapping row was applied.
type Report []FailureRecord

func (r Report) Empty() bool {
	return len(r) == 0
}
