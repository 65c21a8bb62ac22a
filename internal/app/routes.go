package app

import (
	"net/http"

	"github.com/BilawalArif/redfin-clone/internal/handler"
	"github.com/gin-gonic/gin"
)

// Route binds one endpoint to its access rule
type Route struct {
	Method      string
	Path        string
	Access      handler.Access
	RateLimited bool
	Handler     gin.HandlerFunc
}

// Handlers groups the HTTP handlers served by the app
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Property *handler.PropertyHandler
}

func routeTable(h Handlers) []Route {
	return []Route{
		{Method: http.MethodPost, Path: "/auth/login", Access: handler.PublicAccess, RateLimited: true, Handler: h.Auth.Login},
		{Method: http.MethodPost, Path: "/auth/signup", Access: handler.PublicAccess, RateLimited: true, Handler: h.Auth.Signup},
		{Method: http.MethodPost, Path: "/auth/refresh", Access: handler.PublicAccess, Handler: h.Auth.Refresh},
		{Method: http.MethodGet, Path: "/auth/profile", Access: handler.TokenAccess, Handler: h.Auth.Profile},
		{Method: http.MethodGet, Path: "/auth/google", Access: handler.PublicAccess, Handler: h.Auth.GoogleLogin},
		{Method: http.MethodGet, Path: "/auth/google/callback", Access: handler.PublicAccess, Handler: h.Auth.GoogleCallback},
		{Method: http.MethodGet, Path: "/auth/formPage", Access: handler.PublicAccess, Handler: h.Auth.FormPage},
		{Method: http.MethodPost, Path: "/auth/update-user", Access: handler.GoogleSessionAccess, Handler: h.Auth.UpdateUser},
		{Method: http.MethodGet, Path: "/auth/verify", Access: handler.PublicAccess, Handler: h.Auth.Verify},
		{Method: http.MethodPost, Path: "/auth/forgot-password", Access: handler.PublicAccess, RateLimited: true, Handler: h.Auth.ForgotPassword},
		{Method: http.MethodPost, Path: "/auth/reset-password", Access: handler.PublicAccess, Handler: h.Auth.ResetPassword},

		{Method: http.MethodPatch, Path: "/users/update", Access: handler.TokenAccess, Handler: h.User.UpdateProfile},
		{Method: http.MethodGet, Path: "/users/:id", Access: handler.AdminAccess, Handler: h.User.GetUser},
		{Method: http.MethodGet, Path: "/users/:id/role", Access: handler.TokenAccess, Handler: h.User.GetUserRole},

		{Method: http.MethodGet, Path: "/properties/paginated-properties", Access: handler.TokenAccess, Handler: h.Property.Paginate},
		{Method: http.MethodGet, Path: "/properties/search", Access: handler.TokenAccess, Handler: h.Property.Search},
		{Method: http.MethodGet, Path: "/properties/:id", Access: handler.TokenAccess, Handler: h.Property.Get},
		{Method: http.MethodPost, Path: "/properties/:id/comments", Access: handler.TokenAccess, Handler: h.Property.AddComment},
		{Method: http.MethodPatch, Path: "/properties/:id/comments/:commentId", Access: handler.TokenAccess, Handler: h.Property.EditComment},
		{Method: http.MethodDelete, Path: "/properties/:id/comments/:commentId", Access: handler.TokenAccess, Handler: h.Property.DeleteComment},
		{Method: http.MethodPost, Path: "/properties/:id/upvote", Access: handler.TokenAccess, Handler: h.Property.Upvote},
		{Method: http.MethodPost, Path: "/properties/:id/downvote", Access: handler.TokenAccess, Handler: h.Property.Downvote},
	}
}

// registerRoutes mounts every route behind its guard. rateLimit runs before
// the guard on routes that opt in.
func registerRoutes(router gin.IRoutes, routes []Route, validator handler.TokenValidator, rateLimit gin.HandlerFunc) {
	for _, r := range routes {
		chain := make([]gin.HandlerFunc, 0, 3)
		if r.RateLimited && rateLimit != nil {
			chain = append(chain, rateLimit)
		}
		chain = append(chain, handler.Guard(validator, r.Access), r.Handler)
		router.Handle(r.Method, r.Path, chain...)
	}
}
