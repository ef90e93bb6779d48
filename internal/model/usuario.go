package model

// User roles as the remote API spells them.
const (
	RolAdmin  = "ADMIN"
	RolMesero = "MESERO"
)

// Usuario is the user record returned by the login endpoint and stored in
// the session alongside the bearer token.
type Usuario struct {
	ID     int64  `json:"id"`
	Nombre string `json:"name"`
	Email  string `json:"email"`
	Rol    string `json:"role"`
}

// Valida reports whether the record is structurally usable. A user without a
// role is treated the same as an absent session.
func (u Usuario) Valida() bool { return u.Rol != "" }

// Sesion pairs the opaque bearer token with the user it belongs to. It is the
// explicit session-context object handed to every collaborator that needs
// auth; the store owns its load/save/clear lifecycle.
type Sesion struct {
	Token   string  `json:"token"`
	Usuario Usuario `json:"user"`
}
