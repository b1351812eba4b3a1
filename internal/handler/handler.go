package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"socialfeed/internal/config"
	"socialfeed/internal/service"
)

type Handlers struct {
	AuthService   service.AuthService
	UserService   service.UserService
	FeedService   service.FeedService
	UploadService service.UploadService
	Cfg           *config.Config
	Validate      *validator.Validate
}

func NewHandlers(service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:   service.Auth,
		UserService:   service.User,
		FeedService:   service.Feed,
		UploadService: service.Upload,
		Cfg:           config,
		Validate:      validator.New(),
	}
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, MessageResponse{Message: "ok"}, http.StatusOK)
}

// userID returns the authenticated user id from the request context,
// empty for anonymous requests.
func userID(r *http.Request) string {
	id, _ := r.Context().Value("userID").(string)
	return id
}
