package comment

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

	router.Get("/{videoID}", handler.listByVideo)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/{videoID}", handler.add)
		r.Patch("/c/{commentID}", handler.update)
		r.Delete("/c/{commentID}", handler.remove)
	})

	return router
}

type commentRequest struct {
	Content string `json:"content"`
}

func (handler *Handler) listByVideo(writer http.ResponseWriter, request *http.Request) {
	videoID := requestutil.ID(request, "videoID")

	v := &validate.Validator{}
	if err := v.UUID("video_id", videoID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	comments, meta, err := handler.service.ListByVideo(request.Context(), videoID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, meta)
}

func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	videoID := requestutil.ID(request, "videoID")

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.UUID("video_id", videoID).
		Required("content", input.Content).
		MaxLen("content", input.Content, MaxContentLength)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Add(request.Context(), videoID, userID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	commentID := requestutil.ID(request, "commentID")

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.UUID("comment_id", commentID).
		Required("content", input.Content).
		MaxLen("content", input.Content, MaxContentLength)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Update(request.Context(), commentID, userID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID := requestutil.ID(request, "commentID")
	if err := handler.service.Delete(request.Context(), commentID, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
