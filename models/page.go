package models

// Status is the transient state of the pipeline. Exactly one holds at a time.
type Status string

const (
	StatusIdle        Status = "idle"
	StatusLoading     Status = "loading"
	StatusLoadingMore Status = "loadingMore"
	StatusReady       Status = "ready"
	StatusError       Status = "error"
)

// PageState tracks paging through the filtered result set.
type PageState struct {
	Page    int    `json:"page"`
	HasMore bool   `json:"has_more"`
	Status  Status `json:"status"`
	Error   string `json:"error,omitempty"`
}

// Busy reports whether a fetch is pending.
func (p PageState) Busy() bool {
	return p.Status == StatusLoading || p.Status == StatusLoadingMore
}

// CanLoadMore reports whether the "load more" control is enabled.
func (p PageState) CanLoadMore() bool {
	return p.HasMore && p.Status == StatusReady
}
