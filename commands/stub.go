package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"kisansaarthi/database"
	userRepo "kisansaarthi/database/repository/user"
	"kisansaarthi/handlers"
	"kisansaarthi/routes"
	"kisansaarthi/services/user"
	"kisansaarthi/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const healthInterval = 30 * time.Second

func stubServerCmd(a *app) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "stub-server",
		Short: "Run a local implementation of the account API",
		Long: `stub-server serves the signup, OTP, password reset and login endpoints
on a local port. Codes are written to the log instead of being sent by SMS.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = a.cfg.StubPort
			}
			return a.runStubServer(contextOf(cmd), port)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "Port to listen on (overrides STUB_PORT)")
	return cmd
}

// stubBackend is the account service and health monitor of the stub server
// together with what must be released on shutdown.
type stubBackend struct {
	service *user.DefaultUserService
	health  *utils.HealthMonitor
	closers []func()
}

func (b *stubBackend) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// newStubBackend wires the cache and user store named by STUB_CACHE and
// STUB_USER_STORE.
func (a *app) newStubBackend(ctx context.Context) (*stubBackend, error) {
	b := &stubBackend{}
	targets := map[string]utils.Pinger{}

	var cache utils.KV
	switch a.cfg.StubCache {
	case "redis":
		client, err := utils.NewRedisClient(a.cfg.RedisAddr, a.cfg.RedisPassword, a.cfg.RedisOTPDB)
		if err != nil {
			return nil, err
		}
		kv := utils.NewRedisKV(client)
		cache = kv
		targets["cache"] = kv
		b.closers = append(b.closers, func() { _ = client.Close() })
	default:
		kv := utils.NewMemoryKV()
		cache = kv
		targets["cache"] = kv
	}

	var repo userRepo.UserRepository
	switch a.cfg.StubUserStore {
	case "mongo":
		database.InitDB()
		client := database.MongoClient
		b.closers = append(b.closers, func() {
			if err := client.Disconnect(context.Background()); err != nil {
				a.logger.Warn("Failed to disconnect from MongoDB", zap.Error(err))
			}
		})
		repo = userRepo.NewMongoUserRepo(ctx, client.Database(a.cfg.DatabaseName))
		targets["database"] = database.MongoPinger{Client: client}
	default:
		repo = userRepo.NewMemoryUserRepo()
	}

	b.service = &user.DefaultUserService{
		Repo:     repo,
		Cache:    cache,
		Sender:   utils.LogSender{Logger: a.logger},
		Signer:   utils.NewSigner(a.cfg.JWTSecret),
		TokenTTL: a.cfg.TokenTTL(),
	}
	b.health = utils.NewHealthMonitor(targets)
	return b, nil
}

func (a *app) stubRouter(b *stubBackend) *gin.Engine {
	return routes.NewRouter(handlers.NewHandlerBundle(b.service, b.health), routes.RouterOptions{
		AllowedOrigins:    a.cfg.AllowedOrigins(),
		MaxRequestsPerMin: a.cfg.MaxRequestsPerMin,
		Logger:            a.logger,
	})
}

func (a *app) runStubServer(ctx context.Context, port string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if gin.Mode() != gin.TestMode && a.cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	backend, err := a.newStubBackend(ctx)
	if err != nil {
		return err
	}
	defer backend.close()
	backend.health.Start(ctx, healthInterval)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: a.stubRouter(backend),
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Sugar().Infof("Starting stub server on %s...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("stub server failed to start: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	a.logger.Sugar().Info("stub server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("stub server forced to shutdown: %w", err)
	}
	a.logger.Sugar().Info("stub server stopped gracefully")
	return nil
}
