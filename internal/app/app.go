package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "taskboard/docs"

	"taskboard/internal/config"
	"taskboard/internal/handlers"
	"taskboard/internal/pdf"
	"taskboard/internal/repositories"
	"taskboard/internal/routes"
	"taskboard/internal/services"
)

const shutdownTimeout = 15 * time.Second

// App holds the wired task board: one store over one storage slot.
type App struct {
	Config *config.Config
	Store  *services.TaskStore

	closeSlot func() error
}

// New opens the configured slot and loads the board from it. A corrupt or
// unreachable slot is logged and the board starts empty.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	slot, closeSlot, err := OpenSlot(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	store := services.NewTaskStore(repositories.NewTaskRepository(slot))
	res := store.Load(ctx)
	if res.Err != nil {
		log.Printf("[app][warn] load %s: %v", res.Outcome, res.Err)
	}

	return &App{Config: cfg, Store: store, closeSlot: closeSlot}, nil
}

// Close releases the storage connection.
func (a *App) Close() error {
	if a.closeSlot == nil {
		return nil
	}
	return a.closeSlot()
}

// Router builds the gin engine with every route mounted.
func (a *App) Router() *gin.Engine {
	gin.SetMode(a.Config.Server.Mode)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	taskHandler := handlers.NewTaskHandler(a.Store)
	reportHandler := handlers.NewReportHandler(a.Store, pdf.NewReportGenerator(a.Config.Reports.FontPath))

	return routes.SetupRoutes(router, taskHandler, reportHandler, a.Config.Server.ReadOnly)
}

// Serve runs the HTTP server until SIGINT/SIGTERM and returns the exit code.
func (a *App) Serve() int {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[app] listening on %s (read_only=%v)", srv.Addr, a.Config.Server.ReadOnly)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[app] server: %v", err)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"http": func(ctx context.Context) error {
				log.Println("[app] shutting down http server")
				err := srv.Shutdown(ctx)
				// storage goes last, in-flight saves need it
				return errors.Join(err, a.Close())
			},
		},
	)

	exitCode := <-wait
	log.Printf("[app] exited with code %d", exitCode)
	return exitCode
}
