package main

import (
	"fmt"
	"log"
	"os"

	"github.com/WouroudElKhaldi/CoSpace-Backend/routes"
	"github.com/WouroudElKhaldi/CoSpace-Backend/storage"
	"github.com/WouroudElKhaldi/CoSpace-Backend/utils"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	// CORS for the dashboard (http://localhost:3000)
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}

		return tokenInput.RefreshToken
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/google", routes.GoogleLoginOrSignUp)
		user.Post("/apple", routes.AppleLoginOrSignUp)
		user.Get("/all", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.GetUsers)
		user.Get("/{id:uint}", accessTokenVerifierMiddleware, routes.GetUser)
		user.Patch("/", accessTokenVerifierMiddleware, routes.UpdateUser)
		user.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.DeleteUser)
		user.Get("/{id:uint}/reservations", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.GetReservationsByUserID)
		user.Get("/{id:uint}/ratings", routes.GetRatingsByUserID)
	}

	space := app.Party("/api/space")
	{
		space.Post("/", accessTokenVerifierMiddleware, utils.ManagerOrAdminMiddleware, routes.CreateSpace)
		space.Patch("/", accessTokenVerifierMiddleware, utils.ManagerOrAdminMiddleware, routes.UpdateSpace)
		space.Patch("/status", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.UpdateSpaceStatus)
		space.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.ManagerOrAdminMiddleware, routes.DeleteSpace)
		space.Get("/", routes.GetSpaces)
		space.Get("/user/{id:uint}", accessTokenVerifierMiddleware, routes.GetSpacesByUserID)
		space.Post("/filter", routes.FilterSpaces)
		space.Get("/search", routes.SearchSpaces)
		space.Get("/top-rated", routes.GetTopRatedSpaces)
		space.Get("/{id:uint}", routes.GetEnrichedSpace)
		space.Patch("/amenities/add", accessTokenVerifierMiddleware, utils.ManagerOrAdminMiddleware, routes.AddAmenitiesToSpace)
		space.Patch("/amenities/remove", accessTokenVerifierMiddleware, utils.ManagerOrAdminMiddleware, routes.DeleteAmenitiesFromSpace)
		space.Post("/images", accessTokenVerifierMiddleware, utils.ManagerOrAdminMiddleware, routes.AddSpaceImages)
		space.Delete("/images/{id:uint}", accessTokenVerifierMiddleware, utils.ManagerOrAdminMiddleware, routes.DeleteSpaceImage)
		space.Get("/{id:uint}/rooms", routes.GetRoomsBySpaceID)
		space.Get("/{id:uint}/services", routes.GetServicesBySpaceID)
		space.Get("/{id:uint}/ratings", routes.GetRatingsBySpaceID)
		space.Get("/{id:uint}/events", routes.GetEventsBySpaceID)
		space.Get("/{id:uint}/rules", routes.GetRulesBySpaceID)
		space.Get("/{id:uint}/offers", routes.GetOffersBySpaceID)
	}

	room := app.Party("/api/room")
	{
		room.Post("/", accessTokenVerifierMiddleware, utils.ManagerOrAdminMiddleware, routes.CreateRoom)
		room.Patch("/", accessTokenVerifierMiddleware, utils.ManagerOrAdminMiddleware, routes.UpdateRoom)
		room.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.ManagerOrAdminMiddleware, routes.DeleteRoom)
		room.Get("/", routes.GetRooms)
		room.Get("/{id:uint}", routes.GetRoom)
		room.Get("/{id:uint}/reservations", accessTokenVerifierMiddleware, utils.ManagerOrAdminMiddleware, routes.GetReservationsByRoomID)
		room.Post("/images", accessTokenVerifierMiddleware, utils.ManagerOrAdminMiddleware, routes.AddRoomImages)
	}

	service := app.Party("/api/service")
	{
		service.Post("/", accessTokenVerifierMiddleware, utils.ManagerOrAdminMiddleware, routes.CreateService)
		service.Patch("/", accessTokenVerifierMiddleware, utils.ManagerOrAdminMiddleware, routes.UpdateService)
		service.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.ManagerOrAdminMiddleware, routes.DeleteService)
		service.Get("/{id:uint}", routes.GetService)
	}

	reservation := app.Party("/api/reservation")
	{
		reservation.Post("/", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreateReservation)
		reservation.Delete("/{id:uint}", accessTokenVerifierMiddleware, routes.CancelReservation)
	}

	offer := app.Party("/api/offer")
	{
		offer.Post("/", accessTokenVerifierMiddleware, utils.ManagerOrAdminMiddleware, routes.CreateOffer)
		offer.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.ManagerOrAdminMiddleware, routes.DeleteOffer)
		offer.Get("/", routes.GetOffers)
		offer.Get("/{id:uint}", routes.GetOffer)
	}

	notification := app.Party("/api/notification")
	{
		notification.Get("/", routes.GetNotifications)
		notification.Get("/offer/{id:uint}", routes.GetNotificationByOfferID)
	}

	rating := app.Party("/api/rating")
	{
		rating.Post("/", accessTokenVerifierMiddleware, routes.CreateRating)
		rating.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.DeleteRating)
	}

	event := app.Party("/api/event")
	{
		event.Post("/", accessTokenVerifierMiddleware, utils.ManagerOrAdminMiddleware, routes.CreateEvent)
		event.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.ManagerOrAdminMiddleware, routes.DeleteEvent)
	}

	rule := app.Party("/api/rule")
	{
		rule.Post("/", accessTokenVerifierMiddleware, utils.ManagerOrAdminMiddleware, routes.CreateRule)
		rule.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.ManagerOrAdminMiddleware, routes.DeleteRule)
	}

	city := app.Party("/api/city")
	{
		city.Post("/", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.CreateCity)
		city.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.DeleteCity)
		city.Get("/", routes.GetCities)
	}

	category := app.Party("/api/category")
	{
		category.Post("/", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.CreateCategory)
		category.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.DeleteCategory)
		category.Get("/", routes.GetCategories)
	}

	amenity := app.Party("/api/amenity")
	{
		amenity.Post("/", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.CreateAmenity)
		amenity.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.DeleteAmenity)
		amenity.Get("/", routes.GetAmenities)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
