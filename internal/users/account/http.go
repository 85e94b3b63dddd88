// Copyright (c) 2026 VidShare. All rights reserved.

/*
HTTP delivery layer for profile and channel management.

It implements the RESTful interface for users to interact with their account
data, channel pages, and watch history.

# Security

Most endpoints in this package require an active authentication session
provided by the RequireAuth middleware. Channel pages are public but enrich
the response when the viewer is authenticated.
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/apperr"
	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/constants"
	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/middleware"
	requestutil "github.com/Monuyadav-01/vidoeshareapp/internal/platform/request"
	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/respond"
	"github.com/Monuyadav-01/vidoeshareapp/internal/platform/validate"
	"github.com/Monuyadav-01/vidoeshareapp/pkg/pagination"
)

// Handler implements the HTTP layer for user account management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public channel discovery
	router.Get("/c/{username}", handler.getChannelProfile)

	// Authenticated account management
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/current-user", handler.getCurrentUser)
		r.Patch("/update-account", handler.updateAccount)
		r.Patch("/avatar", handler.updateAvatar)
		r.Patch("/cover-image", handler.updateCoverImage)
		r.Get("/history", handler.watchHistory)
	})

	return router
}

// # Profile Endpoints

/*
GET /api/v1/users/current-user.

Description: Retrieves the full private profile of the authenticated user.

Response:
  - 200: User: Fully hydrated user profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getCurrentUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateAccountRequest defines the expected JSON payload for account updates.
type updateAccountRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
}

/*
PATCH /api/v1/users/update-account.

Description: Applies partial updates to the authenticated user's account details.

Request:
  - body: updateAccountRequest (Partial JSON)

Response:
  - 200: User: The updated profile
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Authentication required
  - 409: ErrConflict: Email already in use
*/
func (handler *Handler) updateAccount(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateAccountRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.FullName != nil {
		v.MinLen(FieldFullName, *input.FullName, 2).MaxLen(FieldFullName, *input.FullName, 100)
	}
	if input.Email != nil {
		v.Email(FieldEmail, *input.Email)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateAccount(request.Context(), userID, UpdateAccountInput{
		FullName: input.FullName,
		Email:    input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Media Endpoints

/*
PATCH /api/v1/users/avatar.

Description: Replaces the authenticated user's avatar image via multipart upload.

Request:
  - multipart field "avatar": image file

Response:
  - 200: User: Profile with the new avatar URL
  - 400: Validation: Missing or oversized file
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) updateAvatar(writer http.ResponseWriter, request *http.Request) {
	handler.updateImage(writer, request, FieldAvatar)
}

/*
PATCH /api/v1/users/cover-image.

Description: Replaces the authenticated user's channel cover image.

Request:
  - multipart field "cover_image": image file

Response:
  - 200: User: Profile with the new cover URL
  - 400: Validation: Missing or oversized file
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) updateCoverImage(writer http.ResponseWriter, request *http.Request) {
	handler.updateImage(writer, request, FieldCover)
}

func (handler *Handler) updateImage(writer http.ResponseWriter, request *http.Request, field string) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxImageUploadBytes)
	if err := request.ParseMultipartForm(constants.MaxImageUploadBytes); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid or oversized multipart payload"))
		return
	}

	file, header, err := request.FormFile(field)
	if err != nil {
		respond.Error(writer, request, validate.RequiredError(field, "file is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")

	var user any
	switch field {
	case FieldAvatar:
		user, err = handler.accountService.UpdateAvatar(request.Context(), userID, contentType, file)
	default:
		user, err = handler.accountService.UpdateCoverImage(request.Context(), userID, contentType, file)
	}

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Channel & History Endpoints

/*
GET /api/v1/users/c/{username}.

Description: Retrieves the public channel page for a username, including
subscriber aggregates. When the viewer is authenticated, the response reports
whether they are subscribed.

Request:
  - username: string (handle)

Response:
  - 200: ChannelProfile: Aggregated channel view
  - 404: ErrNotFound: Channel not found
*/
func (handler *Handler) getChannelProfile(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")
	if username == "" {
		respond.Error(writer, request, apperr.NotFound("Channel not found"))
		return
	}

	viewerID := ""
	if claims := requestutil.Claims(request); claims != nil {
		viewerID = claims.UserID
	}

	profile, err := handler.accountService.GetChannelProfile(request.Context(), username, viewerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
GET /api/v1/users/history.

Description: Lists the authenticated user's watch history, newest first.

Request:
  - query: page, limit

Response:
  - 200: []WatchHistoryEntry + meta
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) watchHistory(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	entries, meta, err := handler.accountService.ListWatchHistory(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, meta)
}
