package entity

const (
	// PlaceholderTitle is the generic title an embedded view starts with.
	// A loaded message only replaces the title while it still reads this.
	PlaceholderTitle = "详情"
	// ExternalLinkTitle is the title given to views opened for external links.
	ExternalLinkTitle = "外部链接"
)

// HostViewState is the host-owned state of one embedded view.
// It changes only in response to a bridge message or a load lifecycle event.
type HostViewState struct {
	PageTitle  string `json:"page_title"`
	CurrentURL string `json:"current_url"`
	Loading    bool   `json:"loading"`
	Error      string `json:"error,omitempty"`
}

// NewHostViewState returns the state of a view that has started loading url.
// An empty title falls back to PlaceholderTitle.
func NewHostViewState(url, title string) HostViewState {
	if title == "" {
		title = PlaceholderTitle
	}
	return HostViewState{
		PageTitle:  title,
		CurrentURL: url,
		Loading:    true,
	}
}

// HasError reports whether the last load failed.
func (s HostViewState) HasError() bool {
	return s.Error != ""
}
