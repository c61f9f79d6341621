package routes

import (
	"net/http"

	"cinebook/auth"
	"cinebook/bookings"
	"cinebook/cinemas"
	"cinebook/genres"
	"cinebook/live"
	"cinebook/middleware"
	"cinebook/movies"
	"cinebook/ratelim"
	"cinebook/showtimes"
	"cinebook/uploads"
	"cinebook/utils"

	"github.com/julienschmidt/httprouter"
)

func admin(h httprouter.Handle) httprouter.Handle {
	return middleware.Authenticate(middleware.RequireRole("admin", h))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", auth.Logout)
	router.POST("/api/auth/refresh", ratelim.RateLimit(auth.RefreshToken))
	router.GET("/api/auth/me", middleware.Authenticate(auth.GetMe))
	router.PUT("/api/auth/profile", middleware.Authenticate(auth.UpdateProfile))
}

func AddMovieRoutes(router *httprouter.Router) {
	router.GET("/api/movies", movies.GetMovies)
	router.GET("/api/movies/:id", movies.GetMovie)
	// httprouter cannot mix static and param segments, so the curated
	// lists live beside the collection.
	router.GET("/api/now-showing", movies.GetNowShowing)
	router.GET("/api/coming-soon", movies.GetComingSoon)
	router.POST("/api/movies", admin(movies.CreateMovie))
	router.PUT("/api/movies/:id", admin(movies.UpdateMovie))
	router.DELETE("/api/movies/:id", admin(movies.DeleteMovie))
}

func AddCinemaRoutes(router *httprouter.Router) {
	router.GET("/api/cinemas", cinemas.GetCinemas)
	router.GET("/api/cinemas/:id", cinemas.GetCinema)
	router.POST("/api/cinemas", admin(cinemas.CreateCinema))
	router.PUT("/api/cinemas/:id", admin(cinemas.UpdateCinema))
	router.DELETE("/api/cinemas/:id", admin(cinemas.DeleteCinema))

	router.GET("/api/cinemas/:id/rooms", cinemas.GetRooms)
	router.POST("/api/cinemas/:id/rooms", admin(cinemas.CreateRoom))
	router.GET("/api/rooms/:roomId", cinemas.GetRoom)
	router.GET("/api/rooms/:roomId/seatmap", cinemas.GetRoomSeatMap)
	router.PUT("/api/rooms/:roomId", admin(cinemas.UpdateRoom))
	router.DELETE("/api/rooms/:roomId", admin(cinemas.DeleteRoom))
}

func AddGenreRoutes(router *httprouter.Router) {
	router.GET("/api/genres", genres.GetGenres)
	router.GET("/api/genres/:id", genres.GetGenre)
	router.POST("/api/genres", admin(genres.CreateGenre))
	router.PUT("/api/genres/:id", admin(genres.UpdateGenre))
	router.DELETE("/api/genres/:id", admin(genres.DeleteGenre))
}

func AddShowtimeRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/api/showtimes", showtimes.GetShowtimes)
	router.GET("/api/showtimes/:id", showtimes.GetShowtime)
	router.GET("/api/showtimes/:id/seats", middleware.OptionalAuth(showtimes.GetShowtimeSeats))
	router.POST("/api/showtimes", admin(showtimes.CreateShowtime))
	router.PUT("/api/showtimes/:id", admin(showtimes.UpdateShowtime))
	router.DELETE("/api/showtimes/:id", admin(showtimes.DeleteShowtime))

	router.GET("/ws/showtimes/:id/seats", live.ServeSeatFeed(hub))
}

func AddBookingRoutes(router *httprouter.Router, hub *live.Hub) {
	router.POST("/api/bookings", ratelim.RateLimit(middleware.Authenticate(bookings.CreateBooking(hub))))
	router.GET("/api/me/bookings", middleware.Authenticate(bookings.GetMyBookings))
	router.GET("/api/bookings/:id", middleware.Authenticate(bookings.GetBooking))
	router.GET("/api/bookings/:id/ticket", middleware.Authenticate(bookings.DownloadTicket))
	// cancel and status accept PUT and PATCH; older clients send PUT
	cancel := middleware.Authenticate(bookings.CancelBooking(hub))
	router.PATCH("/api/bookings/:id/cancel", cancel)
	router.PUT("/api/bookings/:id/cancel", cancel)

	router.GET("/api/bookings", admin(bookings.GetAllBookings))
	status := admin(bookings.UpdateBookingStatus)
	router.PATCH("/api/bookings/:id/status", status)
	router.PUT("/api/bookings/:id/status", status)
	router.POST("/api/bookings/verify", admin(bookings.VerifyTicket))
}

func AddUploadRoutes(router *httprouter.Router) {
	router.POST("/api/uploads", admin(uploads.UploadImage))
	router.DELETE("/api/uploads/:name", admin(uploads.DeleteImage))
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/*filepath", http.Dir("static"))
	router.GET("/health", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		utils.RespondWithData(w, http.StatusOK, utils.M{"status": "ok"})
	})
}
