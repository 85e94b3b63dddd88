package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/middleware"
	requestutil "github.com/Monuyadav-01/vidoeshareapp/internal/platform/request"
	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/respond"
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
	router.Use(middleware.RequireAuth)

	router.Get("/stats", handler.stats)
	router.Get("/videos", handler.videos)

	return router
}

func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.service.Stats(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}

func (handler *Handler) videos(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	videos, meta, err := handler.service.Videos(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, videos, meta)
}
