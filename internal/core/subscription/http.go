package subscription

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/middleware"
	requestutil "github.com/Monuyadav-01/vidoeshareapp/internal/platform/request"
	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/respond"
	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/validate"
	"github.com/Monuyadav-01/vidoeshareapp/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/c/{channelID}", handler.listSubscribers)
	router.Get("/u/{subscriberID}", handler.listSubscribedChannels)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/c/{channelID}", handler.toggle)
	})

	return router
}

func (handler *Handler) toggle(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	channelID := requestutil.ID(request, "channelID")
	v := &validate.Validator{}
	if err := v.UUID("channel_id", channelID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Toggle(request.Context(), userID, channelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

func (handler *Handler) listSubscribers(writer http.ResponseWriter, request *http.Request) {
	channelID := requestutil.ID(request, "channelID")

	v := &validate.Validator{}
	if err := v.UUID("channel_id", channelID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	entries, meta, err := handler.service.ListSubscribers(request.Context(), channelID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, meta)
}

func (handler *Handler) listSubscribedChannels(writer http.ResponseWriter, request *http.Request) {
	subscriberID := requestutil.ID(request, "subscriberID")

	v := &validate.Validator{}
	if err := v.UUID("subscriber_id", subscriberID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	entries, meta, err := handler.service.ListSubscribedChannels(request.Context(), subscriberID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, meta)
}
