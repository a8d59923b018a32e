package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"VendorHub/internal/handler"
	"VendorHub/internal/middleware"
)

func Register(h *server.Hertz, hd *handler.Handler) {
	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.MetricsMiddleware())

	v1 := h.Group("/v1")

	// 认证相关路由，按 IP 限流
	auth := v1.Group("/auth", middleware.AuthRateLimitMiddleware())
	{
		auth.GET("/email-exists", hd.EmailExists)
		auth.POST("/register", hd.Register)
		auth.POST("/login", hd.Login)
		auth.POST("/token/refresh", hd.RefreshToken)
		auth.POST("/logout", middleware.AuthMiddleware(), middleware.SpanAttributesMiddleware(), hd.Logout)
	}

	// 以下路由需要鉴权，按商家限流
	authed := v1.Group("",
		middleware.AuthMiddleware(),
		middleware.SpanAttributesMiddleware(),
		middleware.APIRateLimitMiddleware(),
	)

	vendors := authed.Group("/vendors")
	{
		vendors.GET("/me", hd.GetProfile)
		vendors.PATCH("/me", hd.UpdateProfile)
	}

	verification := authed.Group("/verification")
	{
		verification.POST("", hd.SubmitVerification)
		verification.GET("", hd.GetVerification)
	}

	services := authed.Group("/services")
	{
		services.GET("", hd.ListServices)
		services.POST("", hd.CreateService)
		services.GET("/:id", hd.GetService)
		services.PATCH("/:id", hd.UpdateService)
		services.DELETE("/:id", hd.DeleteService)
	}
}
