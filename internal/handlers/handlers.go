package handlers

import (
	"market/internal/config"
	"market/internal/metrics"
	"market/internal/middleware"
	"market/internal/service"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// Services: сервисы, которые обслуживает HTTP-слой.
type Services struct {
	Users        *service.UserService
	Items        *service.ItemService
	Comments     *service.CommentService
	Negotiations *service.NegotiationService
	Reviews      *service.ReviewService
	Chats        *service.ChatService
}

// NewHandler разводящий для хендлеров
func NewHandler(
	svc Services,
	m *metrics.Metrics,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithMetrics(m))
	r.Use(middleware.WithAuth(config.AuthSecret))

	userHandler := NewUserHandler(svc.Users, logger, config)
	itemHandler := NewItemHandler(svc.Items, logger, config)
	commentHandler := NewCommentHandler(svc.Comments, logger, config)
	negotiationHandler := NewNegotiationHandler(svc.Negotiations, logger, config)
	reviewHandler := NewReviewHandler(svc.Reviews, logger, config)
	chatHandler := NewChatHandler(svc.Chats, logger, config)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) { ok(w, "UP") })
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Post("/join", userHandler.Join)
	r.Post("/login", userHandler.Login)
	r.Get("/items", itemHandler.ReadItemList)
	r.Get("/items/{itemId}", itemHandler.ReadItemOne)
	r.Get("/items/{itemId}/comments", commentHandler.ReadCommentList)
	r.Get("/items-sale/{userId}", itemHandler.ListOfUser(svc.Items.ReadUserItemListForSale))
	r.Get("/items-sold/{userId}", itemHandler.ListOfUser(svc.Items.ReadUserItemListForSold))
	r.Get("/users/{userId}/reviews", reviewHandler.ListUserReviews)

	if strings.HasPrefix(config.ImageBaseURL, "/") {
		prefix := strings.TrimSuffix(config.ImageBaseURL, "/")
		r.Handle(prefix+"/*", http.StripPrefix(prefix+"/", http.FileServer(http.Dir(config.ImageDir))))
	}

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(http.HandlerFunc(unauthorized)))

		r.Get("/users/me", userHandler.Me)
		r.Delete("/users/me", userHandler.Withdraw)
		r.Put("/coordinate", userHandler.UpdateCoordinate)
		r.Put("/search-scope", userHandler.UpdateSearchScope)

		r.Post("/items", itemHandler.Create)
		r.Get("/itemsTest", itemHandler.ReadItemListByDistance)
		r.Put("/items/{itemId}", itemHandler.UpdateItem)
		r.Delete("/items/{itemId}", itemHandler.DeleteItem)
		r.Post("/items/{itemId}/image", itemHandler.UpdateItemImage)
		r.Put("/items/{itemId}/image", itemHandler.UpdateItemImage)
		r.Put("/items/status/{itemId}", itemHandler.UpdateItemStatus)
		r.Get("/items-sale", itemHandler.ListMine(svc.Items.ReadMyItemListForSale))
		r.Get("/items-sold", itemHandler.ListMine(svc.Items.ReadMyItemListForSold))

		r.Post("/items/{itemId}/comments", commentHandler.Create)
		r.Put("/items/{itemId}/comments/{commentId}", commentHandler.UpdateComment)
		r.Delete("/items/{itemId}/comments/{commentId}", commentHandler.DeleteComment)
		r.Put("/items/{itemId}/comments/{commentId}/reply", commentHandler.UpdateCommentReply)

		r.Post("/items/{itemId}/proposals", negotiationHandler.CreateNegotiation)
		r.Get("/items/received/proposals", negotiationHandler.GetReceived)
		r.Get("/items/sent/proposals", negotiationHandler.GetSent)

		r.Post("/item/{itemId}/{revieweeId}/review", reviewHandler.CreateReview)

		r.Get("/chat/rooms", chatHandler.ListRooms)
		r.Post("/chat/rooms", chatHandler.CreateRoom)
		r.Get("/chat/rooms/{roomId}/messages", chatHandler.ListMessages)
		r.Post("/chat/rooms/{roomId}/messages", chatHandler.PostMessage)
	})

	return &Handler{Router: r}
}
