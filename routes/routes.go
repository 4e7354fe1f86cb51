// routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/venkatesh1545/drone-x-alert-now/config"
	"github.com/venkatesh1545/drone-x-alert-now/controllers"
	"github.com/venkatesh1545/drone-x-alert-now/middleware"
	"github.com/venkatesh1545/drone-x-alert-now/repositories"
	"github.com/venkatesh1545/drone-x-alert-now/services"
	"github.com/venkatesh1545/drone-x-alert-now/utils"
	"github.com/venkatesh1545/drone-x-alert-now/websocket"
)

// SetupRoutes wires repositories, services, controllers and middleware
// into a gin engine.
func SetupRoutes(
	cfg *config.Config,
	db *mongo.Database,
	redisClient *redis.Client,
	hub *websocket.Hub,
	sender *utils.NotificationSender,
) *gin.Engine {
	router := gin.New()

	repos := initializeRepositories(db)
	jwtService := utils.NewJWTService(cfg.JWTSecret)
	svcs := initializeServices(repos, jwtService, redisClient, hub, sender)

	authMiddleware := middleware.NewAuthMiddleware(jwtService, repos.User, repos.Role)

	ctrls := initializeControllers(svcs, hub, authMiddleware)

	setupGlobalMiddleware(router, cfg, redisClient)

	setupPublicRoutes(router, ctrls, redisClient)
	setupAuthenticatedRoutes(router, ctrls, authMiddleware, redisClient)
	setupAdminRoutes(router, ctrls, authMiddleware)
	setupWebSocketRoutes(router, ctrls, redisClient)

	return router
}

type Repositories struct {
	User         *repositories.UserRepository
	Role         *repositories.RoleRepository
	Request      *repositories.EmergencyRequestRepository
	Team         *repositories.RescueTeamRepository
	Mission      *repositories.RescueMissionRepository
	Chat         *repositories.ChatRepository
	Drone        *repositories.DroneRepository
	Notification *repositories.NotificationRepository
}

func initializeRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		User:         repositories.NewUserRepository(db),
		Role:         repositories.NewRoleRepository(db),
		Request:      repositories.NewEmergencyRequestRepository(db),
		Team:         repositories.NewRescueTeamRepository(db),
		Mission:      repositories.NewRescueMissionRepository(db),
		Chat:         repositories.NewChatRepository(db),
		Drone:        repositories.NewDroneRepository(db),
		Notification: repositories.NewNotificationRepository(db),
	}
}

type Services struct {
	Auth         *services.AuthService
	Role         *services.RoleService
	User         *services.UserService
	Emergency    *services.EmergencyService
	Team         *services.TeamService
	Mission      *services.MissionService
	Assignment   *services.AssignmentService
	Chat         *services.ChatService
	Drone        *services.DroneService
	Notification *services.NotificationService
	Stats        *services.StatsService
}

func initializeServices(
	repos *Repositories,
	jwtService *utils.JWTService,
	redisClient *redis.Client,
	hub *websocket.Hub,
	sender *utils.NotificationSender,
) *Services {
	notificationService := services.NewNotificationService(repos.Notification, repos.User, sender)

	return &Services{
		Auth:         services.NewAuthService(repos.User, repos.Role, jwtService),
		Role:         services.NewRoleService(repos.Role, repos.User),
		User:         services.NewUserService(repos.User, repos.Role),
		Emergency:    services.NewEmergencyService(repos.Request, repos.Mission, repos.Team, repos.Role, notificationService, hub),
		Team:         services.NewTeamService(repos.Team, repos.Mission, redisClient, hub),
		Mission:      services.NewMissionService(repos.Mission, repos.Request, repos.Team, repos.Role, notificationService, hub),
		Assignment:   services.NewAssignmentService(repos.Request, repos.Team, repos.Mission, notificationService, hub),
		Chat:         services.NewChatService(repos.Chat, hub),
		Drone:        services.NewDroneService(repos.Drone, hub),
		Notification: notificationService,
		Stats:        services.NewStatsService(repos.Request, repos.Team, repos.Mission, repos.Drone),
	}
}

type Controllers struct {
	Auth         *controllers.AuthController
	User         *controllers.UserController
	Emergency    *controllers.EmergencyController
	Team         *controllers.TeamController
	Mission      *controllers.MissionController
	Chat         *controllers.ChatController
	Admin        *controllers.AdminController
	Notification *controllers.NotificationController
	WebSocket    *controllers.WebSocketController
	Health       *controllers.HealthController
}

func initializeControllers(svcs *Services, hub *websocket.Hub, authMiddleware *middleware.AuthMiddleware) *Controllers {
	return &Controllers{
		Auth:         controllers.NewAuthController(svcs.Auth),
		User:         controllers.NewUserController(svcs.User),
		Emergency:    controllers.NewEmergencyController(svcs.Emergency, svcs.Assignment, authMiddleware),
		Team:         controllers.NewTeamController(svcs.Team),
		Mission:      controllers.NewMissionController(svcs.Mission),
		Chat:         controllers.NewChatController(svcs.Chat),
		Admin:        controllers.NewAdminController(svcs.Role, svcs.Drone, svcs.Stats, svcs.User, svcs.Assignment),
		Notification: controllers.NewNotificationController(svcs.Notification),
		WebSocket:    controllers.NewWebSocketController(hub, authMiddleware),
		Health:       controllers.NewHealthController(hub),
	}
}

func setupGlobalMiddleware(router *gin.Engine, cfg *config.Config, redisClient *redis.Client) {
	errorHandler := middleware.NewErrorHandler(cfg.Environment, logrus.StandardLogger())

	router.Use(errorHandler.Handle())
	router.Use(middleware.DefaultLoggerMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Environment))
	router.Use(middleware.DefaultRateLimit(redisClient))
}

func setupPublicRoutes(router *gin.Engine, ctrls *Controllers, redisClient *redis.Client) {
	router.GET("/health", ctrls.Health.Health)

	public := router.Group("/api/v1")
	SetupAuthRoutes(public, ctrls.Auth, redisClient)
}

func setupAuthenticatedRoutes(router *gin.Engine, ctrls *Controllers, authMiddleware *middleware.AuthMiddleware, redisClient *redis.Client) {
	api := router.Group("/api/v1")
	api.Use(authMiddleware.RequireAuth())

	SetupAuthenticatedAuthRoutes(api, ctrls.Auth)
	SetupUserRoutes(api, ctrls.User)
	SetupEmergencyRoutes(api, ctrls.Emergency, authMiddleware, redisClient)
	SetupTeamRoutes(api, ctrls.Team, authMiddleware, redisClient)
	SetupMissionRoutes(api, ctrls.Mission, authMiddleware)
	SetupChatRoutes(api, ctrls.Chat, redisClient)
	SetupNotificationRoutes(api, ctrls.Notification)
}

func setupAdminRoutes(router *gin.Engine, ctrls *Controllers, authMiddleware *middleware.AuthMiddleware) {
	SetupAdminRoutes(router.Group("/api/v1"), ctrls.Admin, authMiddleware)
}

func setupWebSocketRoutes(router *gin.Engine, ctrls *Controllers, redisClient *redis.Client) {
	SetupWebSocketRoutes(router, ctrls.WebSocket, redisClient)
}
