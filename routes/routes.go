package routes

import (
	"earnbot/controllers/admin"
	"earnbot/controllers/user"
	"earnbot/middlewares"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App) {
	app.Get("/api/page/:page", middlewares.RequireUser, user.GetPage)
	app.Post("/api/withdraw", middlewares.RequireUser, user.Withdraw)
	app.Post("/api/claim-gift", middlewares.RequireUser, user.ClaimGift)
	app.Post("/api/join-channel", middlewares.RequireUser, user.JoinChannel)
	app.Post("/api/contact", middlewares.RequireUser, user.Contact)

	adminroutes := app.Group("/api/admin", middlewares.RequireAdmin)

	adminroutes.Get("/withdrawals", admin.ListWithdrawals)
	adminroutes.Post("/withdrawals/:id/accept", admin.AcceptWithdrawal)
	adminroutes.Post("/withdrawals/:id/reject", admin.RejectWithdrawal)

	adminroutes.Get("/channels", admin.ListChannels)
	adminroutes.Post("/channels", admin.SaveChannel)
	adminroutes.Delete("/channels/:id", admin.DeleteChannel)
	adminroutes.Post("/channels/:id/move", admin.MoveChannel)

	adminroutes.Get("/gift-codes", admin.ListGiftCodes)
	adminroutes.Post("/gift-codes", admin.SaveGiftCode)
	adminroutes.Delete("/gift-codes/:id", admin.DeleteGiftCode)

	adminroutes.Post("/settings", admin.UpdateSettings)
	adminroutes.Post("/upi-settings", admin.UpdateUpiSettings)

	adminroutes.Get("/users/search", admin.SearchUsers)
	adminroutes.Get("/users/:userId", admin.GetUser)
	adminroutes.Get("/users/:userId/transactions", admin.GetUserTransactions)
	adminroutes.Post("/users/:userId/add-balance", admin.AddBalance)
	adminroutes.Get("/export-users", admin.ExportUsers)

	adminroutes.Post("/broadcast", admin.Broadcast)
	adminroutes.Get("/stats/today", admin.TodayStats)
}
