package app

// Surface is a top-level entry point, the analog of a browser route. The
// three surfaces are disjoint; switching surfaces is always allowed.
type Surface int

const (
	SurfacePublic Surface = iota
	SurfaceAdminLogin
	SurfaceAdminDashboard
)

// View is the public site's in-page view state. A single enum keeps
// impossible combinations, such as home and gifts at once, unrepresentable.
type View int

const (
	ViewRegister View = iota
	ViewLogin
	ViewHome
	ViewGifts
)

func (v View) String() string {
	switch v {
	case ViewRegister:
		return "register"
	case ViewLogin:
		return "login"
	case ViewHome:
		return "home"
	case ViewGifts:
		return "gifts"
	}
	return "unknown"
}

// viewTransitions lists the legal moves between public views. Gifts can only
// go back to home; home returns to register only through logout.
var viewTransitions = map[View][]View{
	ViewRegister: {ViewLogin, ViewHome},
	ViewLogin:    {ViewRegister, ViewHome},
	ViewHome:     {ViewGifts, ViewRegister},
	ViewGifts:    {ViewHome},
}

// Nav owns the top-level surface and the public site's view state. The
// in-page admin overlay is reachable from home without leaving the view.
type Nav struct {
	surface Surface
	view    View
	overlay bool
}

// NewNav starts at the given surface with the public site on its
// registration view.
func NewNav(surface Surface) *Nav {
	return &Nav{surface: surface, view: ViewRegister}
}

// Surface reports the active surface.
func (n *Nav) Surface() Surface { return n.surface }

// View reports the public site's active view.
func (n *Nav) View() View { return n.view }

// GotoSurface switches surfaces. Surfaces map to launch routes, so any
// switch is legal; entering the dashboard without a valid session is handled
// by the dashboard itself redirecting back to admin login.
func (n *Nav) GotoSurface(s Surface) {
	n.surface = s
	n.overlay = false
}

// Goto moves the public site to a new view if the transition is legal and
// reports whether it happened.
func (n *Nav) Goto(v View) bool {
	for _, allowed := range viewTransitions[n.view] {
		if allowed == v {
			n.view = v
			n.overlay = false
			return true
		}
	}
	return false
}

// OpenAdminOverlay shows the in-page admin login. It is only reachable from
// the public home view.
func (n *Nav) OpenAdminOverlay() bool {
	if n.surface != SurfacePublic || n.view != ViewHome {
		return false
	}
	n.overlay = true
	return true
}

// CloseAdminOverlay hides the overlay.
func (n *Nav) CloseAdminOverlay() { n.overlay = false }

// OverlayOpen reports whether the in-page admin login is showing.
func (n *Nav) OverlayOpen() bool { return n.overlay }
