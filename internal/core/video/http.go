package video

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/apperr"
	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/constants"
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

	router.Get("/", handler.list)
	router.Get("/{videoID}", handler.get)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.publish)
		r.Patch("/{videoID}", handler.update)
		r.Delete("/{videoID}", handler.remove)
		r.Patch("/toggle/publish/{videoID}", handler.togglePublish)
	})

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	filter := ListFilter{
		Query:    query.Get("query"),
		OwnerID:  query.Get("user_id"),
		SortBy:   query.Get("sort_by"),
		SortDesc: query.Get("sort_type") != "asc",
		Params:   pagination.FromRequest(request),
	}

	videos, meta, err := handler.service.List(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, videos, meta)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	videoID := requestutil.ID(request, "videoID")

	v := &validate.Validator{}
	if err := v.UUID("video_id", videoID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	viewerID := ""
	if claims := requestutil.Claims(request); claims != nil {
		viewerID = claims.UserID
	}

	// Anonymous viewers are keyed by IP for view dedup.
	viewerKey := viewerID
	if viewerKey == "" {
		viewerKey = middleware.RealIP(request)
	}

	video, err := handler.service.Get(request.Context(), videoID, viewerID, viewerKey)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video)
}

func (handler *Handler) publish(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxVideoUploadBytes)
	if err := request.ParseMultipartForm(32 << 20); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid or oversized multipart payload"))
		return
	}

	title := request.FormValue("title")
	description := request.FormValue("description")
	duration, _ := strconv.ParseFloat(request.FormValue("duration"), 64)

	v := &validate.Validator{}
	v.Required("title", title).
		MaxLen("title", title, 200).
		MaxLen("description", description, 5000).
		Custom("duration", duration <= 0, "Must be a positive number of seconds")

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoFile, videoHeader, err := request.FormFile("video_file")
	if err != nil {
		respond.Error(writer, request, validate.RequiredError("video_file", "file is required"))
		return
	}
	defer videoFile.Close()

	thumbFile, thumbHeader, err := request.FormFile("thumbnail")
	if err != nil {
		respond.Error(writer, request, validate.RequiredError("thumbnail", "file is required"))
		return
	}
	defer thumbFile.Close()

	video, err := handler.service.Publish(request.Context(), userID, PublishInput{
		Title:         title,
		Description:   description,
		Duration:      duration,
		VideoFile:     videoFile,
		VideoType:     videoHeader.Header.Get("Content-Type"),
		ThumbnailFile: thumbFile,
		ThumbnailType: thumbHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, video)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	videoID := requestutil.ID(request, "videoID")

	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxImageUploadBytes)
	if err := request.ParseMultipartForm(constants.MaxImageUploadBytes); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid or oversized multipart payload"))
		return
	}

	input := UpdateInput{}
	if values, ok := request.MultipartForm.Value["title"]; ok && len(values) > 0 {
		input.Title = &values[0]
	}
	if values, ok := request.MultipartForm.Value["description"]; ok && len(values) > 0 {
		input.Description = &values[0]
	}

	v := &validate.Validator{}
	v.UUID("video_id", videoID)
	if input.Title != nil {
		v.Required("title", *input.Title).MaxLen("title", *input.Title, 200)
	}
	if input.Description != nil {
		v.MaxLen("description", *input.Description, 5000)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if thumbFile, thumbHeader, err := request.FormFile("thumbnail"); err == nil {
		defer thumbFile.Close()
		input.ThumbnailFile = thumbFile
		input.ThumbnailType = thumbHeader.Header.Get("Content-Type")
	}

	video, err := handler.service.Update(request.Context(), videoID, userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID := requestutil.ID(request, "videoID")
	if err := handler.service.Delete(request.Context(), videoID, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) togglePublish(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID := requestutil.ID(request, "videoID")
	video, err := handler.service.TogglePublish(request.Context(), videoID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video)
}
