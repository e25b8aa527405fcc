package main

import (
	"log"
	"os"
	"time"

	"sirekap-dgn/internal/database"
	"sirekap-dgn/internal/handlers"
	"sirekap-dgn/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: No .env file found")
	}

	database.Connect()
	r := gin.Default()

	// Let the Vite dev server talk to us during development
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", handlers.Login)

	// --- FEATURE FLAG: Registration ---
	// Only opens if we explicitly allow it in .env
	if os.Getenv("ALLOW_REGISTRATION") == "true" {
		r.POST("/register", handlers.Register)
		log.Println("⚠️ WARNING: Registration route is OPEN. Disable this in production!")
	} else {
		log.Println("🔒 Registration route is safely DISABLED.")
	}

	// --- PROTECTED ROUTES ---
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		// Bookkeeping
		api.GET("/transactions", handlers.GetTransactions)
		api.POST("/transactions", handlers.AddTransaction)
		api.PUT("/transactions/:id", handlers.UpdateTransaction)
		api.DELETE("/transactions/:id", handlers.DeleteTransaction)
		api.GET("/finance/summary", handlers.GetFinanceSummary)
		api.GET("/finance/categories", handlers.GetCategoryBreakdown)
		api.GET("/finance/category-options", handlers.GetCategoryOptions)
		api.GET("/finance/chart", handlers.GetDailyChart)

		// Customers & billing
		api.GET("/customers", handlers.GetCustomers)
		api.POST("/customers", handlers.AddCustomer)
		api.GET("/customers/export", handlers.ExportCustomersXLSX)
		api.POST("/customers/reset-payments", handlers.ResetAllPayments)
		api.POST("/customers/billing-links", handlers.GetBillingLinks)
		api.PUT("/customers/:id", handlers.UpdateCustomer)
		api.DELETE("/customers/:id", handlers.DeleteCustomer)
		api.POST("/customers/:id/pay", handlers.MarkCustomerPaid)

		// Repair tickets
		api.GET("/repairs", handlers.GetRepairTickets)
		api.POST("/repairs", handlers.AddRepairTicket)
		api.PUT("/repairs/:id", handlers.UpdateRepairTicket)
		api.DELETE("/repairs/:id", handlers.DeleteRepairTicket)

		// VPN accounts
		api.GET("/vpn", handlers.GetVpnAccounts)
		api.POST("/vpn", handlers.AddVpnAccount)
		api.GET("/vpn/generate-password", handlers.GenerateVpnPassword)
		api.PUT("/vpn/:id", handlers.UpdateVpnAccount)
		api.DELETE("/vpn/:id", handlers.DeleteVpnAccount)

		// Chat helper
		api.GET("/chats", handlers.GetChatConversations)
		api.POST("/chats", handlers.AddChatConversation)
		api.PUT("/chats/:id", handlers.UpdateChatConversation)
		api.DELETE("/chats/:id", handlers.DeleteChatConversation)
		api.POST("/chats/:id/messages", handlers.AddChatMessage)
		api.POST("/chats/:id/ai-reply", handlers.DraftChatReply)
		api.POST("/chats/:id/send", handlers.SendChatReply)

		// Reports & documents
		api.GET("/reports/monthly", handlers.GetMonthlyReport)
		api.GET("/reports/monthly/pdf", handlers.DownloadMonthlyReportPDF)
		api.POST("/reports/profit-suggestion", handlers.GetProfitSuggestion)
		api.POST("/invoices/pdf", handlers.DownloadInvoicePDF)

		// Settings & profile
		api.GET("/company", handlers.GetCompanyProfile)
		api.PUT("/company", handlers.UpdateCompanyProfile)
		api.GET("/settings", handlers.GetDashboardSettings)
		api.PUT("/settings", handlers.UpdateDashboardSettings)
		api.POST("/settings/telegram-test", handlers.TestTelegram)

		// Backup & sync
		api.POST("/backup/drive", handlers.BackupToDrive)
		api.POST("/backup/restore", handlers.RestoreFromDrive)
		api.POST("/backup/sheets", handlers.SyncCustomersToSheet)

		// System
		api.GET("/system/status", handlers.GetSystemStatus)
	}

	// --- DEPLOYMENT: Serve the dashboard frontend ---
	r.Static("/assets", "./web/assets")
	r.StaticFile("/vite.svg", "./web/vite.svg")

	// SPA Catch-All: If the user refreshes on "/billing",
	// serve index.html so the frontend can handle the routing.
	r.NoRoute(func(c *gin.Context) {
		c.File("./web/index.html")
	})

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	log.Println("🚀 Server starting on " + baseURL)
	if err := r.Run(":8080"); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
