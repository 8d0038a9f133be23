package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/languageclub/internal/api/handlers"
	"github.com/yoockh/languageclub/internal/api/middleware"
	"github.com/yoockh/languageclub/internal/auth"
)

type Deps struct {
	Auth     *handlers.AuthHandler
	Users    *handlers.UserHandler
	Classes  *handlers.ClassHandler
	Cart     *handlers.CartHandler
	Payments *handlers.PaymentHandler

	Verifier *auth.Verifier
	Roles    middleware.RoleLookup
	// TokenLimiter throttles POST /jwt per client IP; nil disables it.
	TokenLimiter *middleware.RateLimiter
	// Health reports store reachability for /healthz; nil always reports ok.
	Health func(ctx context.Context) error
}

type route struct {
	method  string
	path    string
	gates   []gin.HandlerFunc
	handler gin.HandlerFunc
}

// NewEngine builds the gin engine with the ambient middleware and every route.
func NewEngine(l *logrus.Logger, d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(l))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		ExposeHeaders:   []string{"X-Request-Id"},
		MaxAge:          12 * time.Hour,
	}))

	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Language Club Server is Running")
	})
	r.GET("/healthz", func(c *gin.Context) {
		if d.Health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := d.Health(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Guard sets. The verifier always runs before a role check.
	verify := middleware.Gate("verify", middleware.VerifyJWT(d.Verifier))
	var (
		public         []gin.HandlerFunc
		authed         = []gin.HandlerFunc{verify}
		adminOnly      = []gin.HandlerFunc{verify, middleware.Gate("admin", middleware.RequireAdmin(d.Roles))}
		instructorOnly = []gin.HandlerFunc{verify, middleware.Gate("instructor", middleware.RequireInstructor(d.Roles))}
		throttled      []gin.HandlerFunc
	)
	if d.TokenLimiter != nil {
		throttled = []gin.HandlerFunc{middleware.Gate("rate_limit", d.TokenLimiter.Guard())}
	}

	table := []route{
		{http.MethodPost, "/jwt", throttled, d.Auth.IssueToken},

		// users
		{http.MethodGet, "/users/admin/:email", authed, d.Users.IsAdmin},
		{http.MethodGet, "/users/instructor/:email", authed, d.Users.IsInstructor},
		{http.MethodPost, "/users", public, d.Users.Create},
		{http.MethodGet, "/users", adminOnly, d.Users.List},
		{http.MethodGet, "/instructors", public, d.Users.Instructors},
		{http.MethodGet, "/instructors/popular", public, d.Users.Instructors},
		{http.MethodDelete, "/users/:id", adminOnly, d.Users.Delete},
		{http.MethodPatch, "/users/admin/:id", adminOnly, d.Users.MakeAdmin},
		{http.MethodPatch, "/users/instructor/:id", adminOnly, d.Users.MakeInstructor},

		// classes
		{http.MethodPost, "/classes", instructorOnly, d.Classes.Add},
		{http.MethodGet, "/classes", adminOnly, d.Classes.ListAll},
		{http.MethodGet, "/classes/user", public, d.Classes.ListCatalog},
		{http.MethodGet, "/classes/popular", public, d.Classes.ListPopular},
		{http.MethodGet, "/classes/instructor", instructorOnly, d.Classes.ListForInstructor},
		{http.MethodDelete, "/classes/:id", adminOnly, d.Classes.Delete},
		{http.MethodDelete, "/classes/delete/byInstructor/:id", instructorOnly, d.Classes.Delete},
		{http.MethodGet, "/class/display/:id", public, d.Classes.Get},
		{http.MethodPut, "/class/update/:id", instructorOnly, d.Classes.Update},
		{http.MethodPatch, "/classes/approve/:id", adminOnly, d.Classes.Approve},
		{http.MethodPatch, "/classes/deny/:id", adminOnly, d.Classes.Deny},
		{http.MethodGet, "/dashboard/admin-feedback/:id", public, d.Classes.Get},
		{http.MethodPut, "/classes/feedback/:id", adminOnly, d.Classes.Feedback},

		// cart
		{http.MethodPost, "/cart", authed, d.Cart.Add},
		{http.MethodGet, "/carts", authed, d.Cart.List},
		{http.MethodDelete, "/carts/delete/:id", authed, d.Cart.Delete},
		{http.MethodGet, "/cart/:id", authed, d.Cart.Get},

		// payments
		{http.MethodPost, "/create-payment-intent", authed, d.Payments.CreateIntent},
		{http.MethodPost, "/payments", authed, d.Payments.Record},
		{http.MethodGet, "/payments", authed, d.Payments.List},
	}

	for _, rt := range table {
		r.Handle(rt.method, rt.path, middleware.Chain(rt.handler, rt.gates...)...)
	}
}
