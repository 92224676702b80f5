package domain

// Todo is a single to-do item owned by exactly one user. Owner is set at
// creation and never changes; every read and mutation filters on it.
//
// CompletedAt is epoch milliseconds and is non-nil if and only if Completed
// is true. The pair only changes together, through CompletionChange.
type Todo struct {
	ID          string `json:"_id"`
	Owner       string `json:"owner"`
	Text        string `json:"text"`
	Completed   bool   `json:"completed"`
	CompletedAt *int64 `json:"completedAt"`
}

// CompletionChange returns the (completed, completedAt) pair for a transition
// to the given target state at the given time. Transitioning to complete
// stamps the server clock; transitioning to incomplete always clears the
// stamp, keeping the two fields consistent in every stored document.
func CompletionChange(completed bool, nowMillis int64) (bool, *int64) {
	if completed {
		return true, &nowMillis
	}
	return false, nil
}
