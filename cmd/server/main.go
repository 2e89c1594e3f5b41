package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/lumachat/luma/internal/api"
	"github.com/lumachat/luma/internal/config"
	"github.com/lumachat/luma/internal/core"
	"github.com/lumachat/luma/internal/observ"
	"github.com/lumachat/luma/internal/sched"
	"github.com/lumachat/luma/internal/store"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	// The whole system's state is this one in-memory store; every
	// operation is one atomic transaction against it.
	st := store.New()
	scheduler := sched.New()
	mailer := &core.LogMailer{Logger: logger}
	service := core.New(st, scheduler, mailer, cfg.JWTSecret, logger)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := gin.New()
	srv.Use(gin.Recovery())

	authH := api.NewAuthHandler(service, logger)
	userH := api.NewUserHandler(service, logger)
	channelH := api.NewChannelHandler(service, logger)
	dmH := api.NewDMHandler(service, logger)
	messageH := api.NewMessageHandler(service, logger)
	standupH := api.NewStandupHandler(service, logger)
	otherH := api.NewOtherHandler(service, logger)

	registerRoutes(srv, authH, userH, channelH, dmH, messageH, standupH, otherH)

	logger.Info("starting luma",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env),
	)
	if err := srv.Run(":" + cfg.Port); err != nil {
		return fmt.Errorf("run server: %w", err)
	}
	scheduler.Wait()
	return nil
}

// registerRoutes wires the full route surface. Paths, methods, and
// payload shapes follow the published wire contract; the token travels
// in the JSON body for mutations and the query string for reads.
func registerRoutes(
	srv *gin.Engine,
	authH *api.AuthHandler,
	userH *api.UserHandler,
	channelH *api.ChannelHandler,
	dmH *api.DMHandler,
	messageH *api.MessageHandler,
	standupH *api.StandupHandler,
	otherH *api.OtherHandler,
) {
	srv.POST("/auth/register/v2", authH.Register)
	srv.POST("/auth/login/v2", authH.Login)
	srv.POST("/auth/logout/v1", authH.Logout)
	srv.POST("/auth/passwordreset/request/v1", authH.PasswordResetRequest)
	srv.POST("/auth/passwordreset/reset/v1", authH.PasswordResetReset)

	srv.GET("/user/profile/v2", userH.Profile)
	srv.PUT("/user/profile/setname/v2", userH.SetName)
	srv.PUT("/user/profile/setemail/v2", userH.SetEmail)
	srv.PUT("/user/profile/sethandle/v1", userH.SetHandle)
	srv.GET("/user/stats/v1", userH.Stats)
	srv.GET("/users/all/v1", userH.All)
	srv.GET("/users/stats/v1", userH.WorkspaceStats)

	srv.POST("/channels/create/v2", channelH.Create)
	srv.GET("/channels/list/v2", channelH.List)
	srv.GET("/channels/listall/v2", channelH.ListAll)
	srv.GET("/channel/details/v2", channelH.Details)
	srv.GET("/channel/messages/v2", channelH.Messages)
	srv.POST("/channel/join/v2", channelH.Join)
	srv.POST("/channel/invite/v2", channelH.Invite)
	srv.POST("/channel/leave/v1", channelH.Leave)
	srv.POST("/channel/addowner/v1", channelH.AddOwner)
	srv.POST("/channel/removeowner/v1", channelH.RemoveOwner)

	srv.POST("/dm/create/v1", dmH.Create)
	srv.GET("/dm/list/v1", dmH.List)
	srv.GET("/dm/details/v1", dmH.Details)
	srv.GET("/dm/messages/v1", dmH.Messages)
	srv.POST("/dm/invite/v1", dmH.Invite)
	srv.POST("/dm/leave/v1", dmH.Leave)
	srv.DELETE("/dm/remove/v1", dmH.Remove)

	srv.POST("/message/send/v2", messageH.Send)
	srv.POST("/message/senddm/v1", messageH.SendDM)
	srv.PUT("/message/edit/v2", messageH.Edit)
	srv.DELETE("/message/remove/v1", messageH.Remove)
	srv.POST("/message/share/v1", messageH.Share)
	srv.POST("/message/sendlater/v1", messageH.SendLater)
	srv.POST("/message/sendlaterdm/v1", messageH.SendLaterDM)
	srv.POST("/message/react/v1", messageH.React)
	srv.POST("/message/unreact/v1", messageH.Unreact)
	srv.POST("/message/pin/v1", messageH.Pin)
	srv.POST("/message/unpin/v1", messageH.Unpin)

	srv.POST("/standup/start/v1", standupH.Start)
	srv.GET("/standup/active/v1", standupH.Active)
	srv.POST("/standup/send/v1", standupH.Send)

	srv.GET("/search/v2", otherH.Search)
	srv.GET("/notifications/get/v1", otherH.Notifications)
	srv.DELETE("/admin/user/remove/v1", otherH.AdminUserRemove)
	srv.GET("/admin/userpermission/change/v1", otherH.AdminPermissionChange)
	srv.DELETE("/clear/v1", otherH.Clear)
}
