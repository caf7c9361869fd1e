package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconGlobe   = "" // web
	IconArrow   = "" // arrow right
	IconCheck   = "" // check
	IconX       = "" // x
	IconWarning = "" // warning
	IconInfo    = "" // info
	IconConfig  = "" // config
	IconImage   = "" // image file
	IconServer  = "" // server
	IconBridge  = "" // exchange
	IconCrumb   = "" // angle right
)
