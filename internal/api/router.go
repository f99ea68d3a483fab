package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires every route under the /api prefix. Public routes carry
// no middleware; user routes require any authenticated caller; admin
// routes additionally require the admin role.
func NewRouter(handler *Handler) *mux.Router {
	router := mux.NewRouter()

	apiRouter := router.PathPrefix("/api").Subrouter()

	// Public surface.
	apiRouter.HandleFunc("/homepage", handler.GetHomepage).Methods(http.MethodGet)
	apiRouter.HandleFunc("/content/featured", handler.GetFeaturedContent).Methods(http.MethodGet)
	apiRouter.HandleFunc("/content", handler.ListContent).Methods(http.MethodGet)
	apiRouter.HandleFunc("/content/{contentId}", handler.GetContentByID).Methods(http.MethodGet)
	apiRouter.HandleFunc("/content/{contentId}/ratings", handler.ListContentRatings).Methods(http.MethodGet)
	apiRouter.HandleFunc("/reviews", handler.ListReviews).Methods(http.MethodGet)
	apiRouter.HandleFunc("/usernames/check", handler.CheckUsername).Methods(http.MethodPost)

	// Member surface.
	apiRouter.HandleFunc("/usernames", handler.requireUser(handler.ReserveUsername)).Methods(http.MethodPost)
	apiRouter.HandleFunc("/user-ratings", handler.requireUser(handler.ListOwnRatings)).Methods(http.MethodGet)
	apiRouter.HandleFunc("/user-ratings", handler.requireUser(handler.SubmitRating)).Methods(http.MethodPost)
	apiRouter.HandleFunc("/user-ratings/{ratingId}", handler.requireUser(handler.UpdateRating)).Methods(http.MethodPut)
	apiRouter.HandleFunc("/user-ratings/{ratingId}", handler.requireUser(handler.DeleteRating)).Methods(http.MethodDelete)

	// Admin surface.
	apiRouter.HandleFunc("/content", handler.requireAdmin(handler.CreateContent)).Methods(http.MethodPost)
	apiRouter.HandleFunc("/content/{contentId}", handler.requireAdmin(handler.UpdateContent)).Methods(http.MethodPut)
	apiRouter.HandleFunc("/content/{contentId}", handler.requireAdmin(handler.DeleteContent)).Methods(http.MethodDelete)
	apiRouter.HandleFunc("/content/{contentId}/featured", handler.requireAdmin(handler.SetFeaturedContent)).Methods(http.MethodPatch)
	apiRouter.HandleFunc("/admin/content", handler.requireAdmin(handler.AdminListContent)).Methods(http.MethodGet)
	apiRouter.HandleFunc("/admin/reviews", handler.requireAdmin(handler.AdminListReviews)).Methods(http.MethodGet)
	apiRouter.HandleFunc("/reviews", handler.requireAdmin(handler.CreateReview)).Methods(http.MethodPost)
	apiRouter.HandleFunc("/reviews/{reviewId}", handler.requireAdmin(handler.UpdateReview)).Methods(http.MethodPut)
	apiRouter.HandleFunc("/reviews/{reviewId}", handler.requireAdmin(handler.DeleteReview)).Methods(http.MethodDelete)
	apiRouter.HandleFunc("/blog-posts", handler.requireAdmin(handler.ListBlogPosts)).Methods(http.MethodGet)
	apiRouter.HandleFunc("/blog-posts", handler.requireAdmin(handler.CreateBlogPost)).Methods(http.MethodPost)
	apiRouter.HandleFunc("/blog-posts/{postId}", handler.requireAdmin(handler.UpdateBlogPost)).Methods(http.MethodPut)
	apiRouter.HandleFunc("/blog-posts/{postId}", handler.requireAdmin(handler.DeleteBlogPost)).Methods(http.MethodDelete)
	apiRouter.HandleFunc("/blog-posts/{postId}/publish", handler.requireAdmin(handler.SetBlogPostPublished)).Methods(http.MethodPatch)

	return router
}
