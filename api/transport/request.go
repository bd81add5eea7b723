package transport

// TaskRequest is the body shape shared by create and update. Completed is a
// pointer so an omitted field can be told apart from an explicit false; it
// is ignored on create.
type TaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   *bool  `json:"completed"`
}
