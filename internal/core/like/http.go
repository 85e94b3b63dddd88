package like

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
	router.Use(middleware.RequireAuth)

	router.Post("/toggle/v/{videoID}", handler.toggle(TargetVideo, "videoID", "video_id"))
	router.Post("/toggle/c/{commentID}", handler.toggle(TargetComment, "commentID", "comment_id"))
	router.Post("/toggle/t/{tweetID}", handler.toggle(TargetTweet, "tweetID", "tweet_id"))
	router.Get("/videos", handler.listLikedVideos)

	return router
}

func (handler *Handler) toggle(kind TargetKind, param, field string) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		userID, err := requestutil.RequiredUserID(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		targetID := requestutil.ID(request, param)
		v := &validate.Validator{}
		if err := v.UUID(field, targetID).Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}

		result, err := handler.service.Toggle(request.Context(), userID, kind, targetID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.OK(writer, result)
	}
}

func (handler *Handler) listLikedVideos(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	videos, meta, err := handler.service.ListLikedVideos(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, videos, meta)
}
