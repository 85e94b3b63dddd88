package playlist

import (
	"context"
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

	router.Get("/{playlistID}", handler.get)
	router.Get("/user/{userID}", handler.listByOwner)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.create)
		r.Patch("/{playlistID}", handler.update)
		r.Delete("/{playlistID}", handler.remove)
		r.Patch("/add/{videoID}/{playlistID}", handler.addVideo)
		r.Patch("/remove/{videoID}/{playlistID}", handler.removeVideo)
	})

	return router
}

type playlistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input playlistRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("name", input.Name).
		MaxLen("name", input.Name, MaxNameLength).
		MaxLen("description", input.Description, MaxDescriptionLength)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlist, err := handler.service.Create(request.Context(), userID, input.Name, input.Description)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, playlist)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	playlistID := requestutil.ID(request, "playlistID")

	v := &validate.Validator{}
	if err := v.UUID("playlist_id", playlistID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlist, err := handler.service.Get(request.Context(), playlistID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlist)
}

func (handler *Handler) listByOwner(writer http.ResponseWriter, request *http.Request) {
	ownerID := requestutil.ID(request, "userID")

	v := &validate.Validator{}
	if err := v.UUID("user_id", ownerID).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	playlists, meta, err := handler.service.ListByOwner(request.Context(), ownerID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, playlists, meta)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	playlistID := requestutil.ID(request, "playlistID")

	var input playlistRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.UUID("playlist_id", playlistID).
		Required("name", input.Name).
		MaxLen("name", input.Name, MaxNameLength).
		MaxLen("description", input.Description, MaxDescriptionLength)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlist, err := handler.service.Update(request.Context(), playlistID, userID, input.Name, input.Description)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlist)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlistID := requestutil.ID(request, "playlistID")
	if err := handler.service.Delete(request.Context(), playlistID, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) addVideo(writer http.ResponseWriter, request *http.Request) {
	handler.changeVideo(writer, request, handler.service.AddVideo)
}

func (handler *Handler) removeVideo(writer http.ResponseWriter, request *http.Request) {
	handler.changeVideo(writer, request, handler.service.RemoveVideo)
}

func (handler *Handler) changeVideo(
	writer http.ResponseWriter,
	request *http.Request,
	apply func(ctx context.Context, playlistID, videoID, ownerID string) (*Playlist, error),
) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlistID := requestutil.ID(request, "playlistID")
	videoID := requestutil.ID(request, "videoID")

	v := &validate.Validator{}
	v.UUID("playlist_id", playlistID).UUID("video_id", videoID)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlist, err := apply(request.Context(), playlistID, videoID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlist)
}
