package bridge

// DefaultProgressColor is the loading bar colour of embedded views.
const DefaultProgressColor = "#FE2741"

// ProgressStyle configures the loading bar.
type ProgressStyle struct {
	Color string `mapstructure:"color" toml:"color" json:"color"`
}

// Styles are the presentation flags handed to the embedding runtime.
type Styles struct {
	Progress                            ProgressStyle `mapstructure:"progress" toml:"progress" json:"progress"`
	ScrollEnabled                       bool          `mapstructure:"scroll_enabled" toml:"scroll_enabled" json:"scrollEnabled"`
	ScalesPageToFit                     bool          `mapstructure:"scales_page_to_fit" toml:"scales_page_to_fit" json:"scalesPageToFit"`
	UserInteractionEnabled              bool          `mapstructure:"user_interaction_enabled" toml:"user_interaction_enabled" json:"userInteractionEnabled"`
	AllowsInlineMediaPlayback           bool          `mapstructure:"allows_inline_media_playback" toml:"allows_inline_media_playback" json:"allowsInlineMediaPlayback"`
	AllowsAirPlayForMediaPlayback       bool          `mapstructure:"allows_airplay_for_media_playback" toml:"allows_airplay_for_media_playback" json:"allowsAirPlayForMediaPlayback"`
	AllowsPictureInPictureMediaPlayback bool          `mapstructure:"allows_picture_in_picture_media_playback" toml:"allows_picture_in_picture_media_playback" json:"allowsPictureInPictureMediaPlayback"`
	AllowsLinkPreview                   bool          `mapstructure:"allows_link_preview" toml:"allows_link_preview" json:"allowsLinkPreview"`
}

// DefaultStyles enables every flag with the brand progress colour.
func DefaultStyles() Styles {
	return Styles{
		Progress:                            ProgressStyle{Color: DefaultProgressColor},
		ScrollEnabled:                       true,
		ScalesPageToFit:                     true,
		UserInteractionEnabled:              true,
		AllowsInlineMediaPlayback:           true,
		AllowsAirPlayForMediaPlayback:       true,
		AllowsPictureInPictureMediaPlayback: true,
		AllowsLinkPreview:                   true,
	}
}
