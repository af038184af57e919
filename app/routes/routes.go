package routes

import (
	"log/slog"
	"net/http"
	"strings"

	"commentboard/app/controllers"
	"commentboard/app/middleware"
	"commentboard/app/repositories"
	"commentboard/app/services"

	"github.com/gorilla/mux"
)

// NewAPIRouter registers the REST API on a fresh router backed by storage.
func NewAPIRouter(storage repositories.Storage, logger *slog.Logger) *mux.Router {
	router := mux.NewRouter()

	postService := services.NewPostService(storage.Posts(), storage.Comments())
	commentService := services.NewCommentService(storage.Comments(), storage.Posts())

	postController := controllers.NewPostController(postService, logger)
	commentController := controllers.NewCommentController(commentService, logger)

	router.HandleFunc("/healthz", controllers.Health).Methods("GET")

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			controllers.NotFound(w, r)
			return
		}
		http.NotFound(w, r)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte(`{"error":"Method not allowed"}` + "\n"))
	})

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)

	// Posts API endpoints
	apiPosts := api.PathPrefix("/posts").Subrouter()
	apiPosts.HandleFunc("", postController.Index).Methods("GET")
	apiPosts.HandleFunc("/{id:[0-9]+}", postController.Show).Methods("GET")
	apiPosts.HandleFunc("", postController.Create).Methods("POST")
	apiPosts.HandleFunc("/{id:[0-9]+}", postController.Edit).Methods("PUT")
	apiPosts.HandleFunc("/{id:[0-9]+}", postController.Delete).Methods("DELETE")

	// Comments API endpoints
	apiPosts.HandleFunc("/{postId:[0-9]+}/comments", commentController.Index).Methods("GET")
	apiPosts.HandleFunc("/{postId:[0-9]+}/comments", commentController.Create).Methods("POST")
	api.HandleFunc("/comments", commentController.Index).Methods("GET")
	api.HandleFunc("/comments", commentController.Create).Methods("POST")
	api.HandleFunc("/comments/{id:[0-9]+}", commentController.Show).Methods("GET")
	api.HandleFunc("/comments/{id:[0-9]+}", commentController.Edit).Methods("PUT")
	api.HandleFunc("/comments/{id:[0-9]+}", commentController.Delete).Methods("DELETE")

	return router
}

// SetupAPIRoutes returns the API router wrapped in the global middleware.
// CORS sits outside the router so preflight requests never reach route
// matching.
func SetupAPIRoutes(storage repositories.Storage, logger *slog.Logger, allowedOrigins []string) http.Handler {
	var handler http.Handler = NewAPIRouter(storage, logger)
	handler = middleware.CORS(allowedOrigins)(handler)
	handler = middleware.Logger(logger)(handler)
	handler = middleware.Recoverer(logger)(handler)
	return handler
}
