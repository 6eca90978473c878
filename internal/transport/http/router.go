package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/graphuraprojects/farming-sub001/internal/domain"
	"github.com/graphuraprojects/farming-sub001/internal/middlewares"
	"github.com/graphuraprojects/farming-sub001/internal/service"
)

type Services struct {
	Auth     *service.AuthSvc
	Users    *service.UserSvc
	Machines *service.MachineSvc
	Bookings *service.BookingSvc
}

func NewRouter(s Services) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	ah := NewAuthHandler(s.Auth)
	uh := NewUserHandler(s.Users)
	mh := NewMachineHandler(s.Machines)
	bh := NewBookingHandler(s.Bookings)
	adh := NewAdminHandler(s.Bookings)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", ah.Register)
		v1.POST("/auth/login", ah.Login)
		v1.POST("/auth/refresh", ah.Refresh)
		v1.POST("/auth/logout", ah.Logout)

		me := v1.Group("/users/me")
		me.Use(middlewares.JWTAuth())
		me.GET("", uh.GetMe)
		me.PUT("", uh.UpdateMe)

		v1.GET("/machines", mh.List)
		v1.GET("/machines/:id", mh.Get)
		owner := v1.Group("/machines")
		owner.Use(middlewares.JWTAuth(), middlewares.RequireRole(domain.RoleOwner, domain.RoleAdmin))
		owner.POST("", mh.Create)
		owner.PUT("/:id", mh.Update)
		owner.DELETE("/:id", mh.Delete)

		secured := v1.Group("")
		secured.Use(middlewares.JWTAuth())
		{
			secured.POST("/bookings", bh.Create)
			secured.GET("/bookings", bh.List)
			secured.GET("/bookings/:id", bh.Get)
			secured.POST("/bookings/:id/cancel", bh.Cancel)

			decide := secured.Group("")
			decide.Use(middlewares.RequireRole(domain.RoleOwner, domain.RoleAdmin))
			decide.PATCH("/bookings/:id/decision", bh.Decide)
		}

		admin := v1.Group("/admin")
		admin.Use(middlewares.JWTAuth(), middlewares.RequireRole(domain.RoleAdmin))
		admin.GET("/users", uh.List)
		admin.GET("/bookings/export", adh.ExportBookings)
	}

	return r
}
