package domain

// Session is the identity a client is currently signed in as.
// A nil *Session means the client is anonymous.
type Session struct {
	LoggedIn bool   `json:"logueado"`
	Email    string `json:"correo"`
	Role     Role   `json:"tipo"`
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// Logical routes the navigation layer understands.
const (
	RouteHome    = "/home"
	RouteLogin   = "/auth/login"
	RouteAdmin   = "/admin"
	RouteProfile = "/user/perfil"
)

// LandingRoute is where a freshly signed-in user of the given role is sent.
func LandingRoute(role Role) string {
	if role == RoleAdmin {
		return RouteAdmin
	}
	return RouteProfile
}
