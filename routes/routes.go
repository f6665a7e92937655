package routes

import (
	"net/http"

	"msilva-backend/config"
	"msilva-backend/controllers"
	"msilva-backend/services"
	"msilva-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter wires every handler. sender may be nil when SMS is not
// configured.
func SetupRouter(s config.Settings, sender services.Sender) *gin.Engine {
	controllers.Configure(s, sender)

	r := gin.New()
	r.Use(gin.Recovery())

	origins := make(map[string]bool, len(s.CORSOrigins))
	for _, o := range s.CORSOrigins {
		origins[o] = true
	}
	r.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) bool {
			return origins[origin]
		},
	}))

	r.Use(config.PerformanceLogger(s.SlowRequestThreshold))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(config.AppMetrics.Registry, promhttp.HandlerOpts{})))

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/:id", controllers.GetClient)
			clients.PATCH("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", controllers.GetCategories)
			categories.POST("", controllers.CreateCategory)
			categories.PATCH("/:id", controllers.UpdateCategory)
			categories.DELETE("/:id", controllers.DeleteCategory)
		}

		catalog := api.Group("/services")
		{
			catalog.POST("", controllers.CreateService)
			catalog.GET("", controllers.GetServices)
			catalog.GET("/:id", controllers.GetService)
			catalog.PATCH("/:id", controllers.UpdateService)
			catalog.DELETE("/:id", controllers.DeleteService)
		}

		api.GET("/moments", controllers.GetMoments)
		api.POST("/moments", controllers.CreateMoment)
		api.POST("/moment-items/replace", controllers.ReplaceMomentItems)

		proposals := api.Group("/proposals")
		{
			proposals.GET("", controllers.GetProposals)
			proposals.POST("", controllers.CreateProposal)
			proposals.POST("/from-selection", controllers.CreateProposalFromSelection)
			proposals.POST("/preview", controllers.PreviewProposal)
			proposals.GET("/:id", controllers.GetProposal)
			proposals.PATCH("/:id", controllers.PatchProposal)
			proposals.POST("/:id/accept", controllers.AcceptProposal)
			proposals.GET("/:id/pdf", controllers.GetProposalPDF)
			proposals.GET("/:id/html", controllers.GetProposalHTML)
		}

		events := api.Group("/calendar-events")
		{
			events.GET("", controllers.GetCalendarEvents)
			events.POST("", controllers.CreateCalendarEvent)
			events.POST("/cancel", controllers.CancelCalendarEvent)
			events.PUT("/:id", controllers.UpdateCalendarEvent)
			events.DELETE("/:id", controllers.DeleteCalendarEvent)
		}

		serviceStaff := api.Group("/service-staff")
		{
			serviceStaff.GET("", controllers.GetServiceStaff)
			serviceStaff.POST("", controllers.CreateServiceStaff)
			serviceStaff.PUT("/:id", controllers.UpdateServiceStaff)
			serviceStaff.DELETE("/:id", controllers.DeleteServiceStaff)
		}

		reportController := controllers.NewReportController()
		api.GET("/staff-assignments", reportController.GetStaffAssignments)
		api.GET("/staff-summary", reportController.GetStaffSummary)
		api.GET("/staff-upcoming", reportController.GetStaffUpcoming)

		members := api.Group("/staff-members")
		{
			members.GET("", controllers.GetStaffMembers)
			members.POST("", controllers.CreateStaffMember)
			members.PUT("/:id", controllers.UpdateStaffMember)
			members.DELETE("/:id", controllers.DeleteStaffMember)
		}

		roles := api.Group("/staff-roles")
		{
			roles.GET("", controllers.GetStaffRoles)
			roles.POST("", controllers.CreateStaffRole)
			roles.PATCH("/:id", controllers.UpdateStaffRole)
			roles.DELETE("/:id", controllers.DeleteStaffRole)
		}

		api.GET("/company-profile", controllers.GetCompanyProfile)
		api.POST("/company-profile", controllers.SaveCompanyProfile)

		terms := api.Group("/terms-templates")
		{
			terms.GET("", controllers.GetTermsTemplates)
			terms.POST("", controllers.CreateTermsTemplate)
			terms.GET("/:id", controllers.GetTermsTemplate)
			terms.PATCH("/:id", controllers.UpdateTermsTemplate)
			terms.DELETE("/:id", controllers.DeleteTermsTemplate)
		}

		api.GET("/dashboard", controllers.GetDashboardOverview)

		api.GET("/reminder-template", controllers.GetReminderTemplate)
		api.PUT("/reminder-template", controllers.UpdateReminderTemplate)
		api.GET("/reminder-logs", controllers.GetReminderLogs)
		api.POST("/reminders/run", controllers.RunReminders)
	}

	return r
}
