package entity

// RouteName is a symbolic name for a mini-program page.
type RouteName string

const (
	RouteHome          RouteName = "home"
	RouteService       RouteName = "service"
	RouteMessage       RouteName = "message"
	RouteActivity      RouteName = "activity"
	RouteWebView       RouteName = "webview"
	RouteEnvironmental RouteName = "environmental"
)

// DefaultRoutes maps route names to page paths.
func DefaultRoutes() map[RouteName]string {
	return map[RouteName]string{
		RouteHome:          "/pages/index/index",
		RouteService:       "/pages/service/service",
		RouteMessage:       "/pages/message/message",
		RouteActivity:      "/pages/activity/activity",
		RouteWebView:       "/pages/webview/webview",
		RouteEnvironmental: "/pages/environmental/environmental",
	}
}

// DefaultTabRoutes lists the routes shown in the tab bar.
func DefaultTabRoutes() []RouteName {
	return []RouteName{RouteHome, RouteService}
}
