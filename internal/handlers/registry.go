package handlers

// AppHandlers bundles every handler for route registration.
type AppHandlers struct {
	AuthHandler      *AuthHandler
	UserHandler      *UserHandler
	AdminHandler     *AdminHandler
	PersonnelHandler *PersonnelHandler
}
