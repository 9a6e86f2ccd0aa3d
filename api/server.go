package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alex-pricope/eurovision-scoreboard/api/controllers"
	"github.com/alex-pricope/eurovision-scoreboard/api/transport"
	"github.com/alex-pricope/eurovision-scoreboard/export"
	"github.com/alex-pricope/eurovision-scoreboard/logging"
	"github.com/alex-pricope/eurovision-scoreboard/storage"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
)

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

// Storages builds the scoreboard and settings stores for the configured backend.
func (s *Server) Storages(ctx context.Context) (storage.ScoreboardStorage, storage.SettingsStorage, error) {
	switch s.config.Backend {
	case BackendDynamo:
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		client := dynamodb.NewFromConfig(cfg)
		return &storage.DynamoScoreboardStorage{
				Client:    client,
				TableName: s.config.TableNameScoreboards,
			}, &storage.DynamoSettingsStorage{
				Client:    client,
				TableName: s.config.TableNameSettings,
			}, nil
	case BackendMemory, "":
		return storage.NewMemoryScoreboardStorage(), storage.NewMemorySettingsStorage(), nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", s.config.Backend)
	}
}

// Renderer captures frames through the configured screenshot service.
func (s *Server) Renderer() *export.HTTPRenderer {
	return &export.HTTPRenderer{
		Endpoint:   s.config.RendererURL,
		ServerURL:  s.config.ServerURL,
		Layout:     s.config.Layout,
		Viewport:   s.config.Viewport,
		MaxRetries: uint64(max(s.config.Retries, 0)),
		Client:     &http.Client{Timeout: 60 * time.Second},
	}
}

// DefaultSettings are served until an admin saves settings.
func (s *Server) DefaultSettings() storage.Settings {
	d := storage.DefaultSettings()
	d.VotingSystem = s.config.DefaultVotingSystem
	d.ShowVoterPanel = s.config.Layout.ShowVoterPanel
	d.PanelPosition = s.config.Layout.PanelPosition
	d.Variant = s.config.Layout.Variant
	d.ShowFlags = s.config.Layout.ShowFlags
	return d
}

// Handler wires every controller onto a new router.
func (s *Server) Handler(ctx context.Context, ginMode string) (*gin.Engine, error) {
	scoreboards, settings, err := s.Storages(ctx)
	if err != nil {
		return nil, err
	}

	r := transport.NewRouter(ginMode)
	controllers.NewScoreboardController(scoreboards, settings, s.config.DefaultVotingSystem).RegisterRoutes(r)
	controllers.NewVotingSystemController().RegisterRoutes(r)
	controllers.NewSettingsController(settings, s.DefaultSettings()).RegisterRoutes(r)
	controllers.NewTelevoteController(scoreboards, settings, s.config.DefaultVotingSystem).RegisterRoutes(r)
	controllers.NewExportController(scoreboards, settings, s.Renderer(), s.config.DefaultVotingSystem).RegisterRoutes(r)
	return r, nil
}

func (s *Server) Start() {
	r, err := s.Handler(context.Background(), gin.DebugMode)
	if err != nil {
		logging.Log.Errorf("failed to build server: %v", err)
		panic(err)
	}
	logging.Log.Infof("Using %s storage backend", s.config.Backend)

	//Do not run lambda helper locally
	if os.Getenv("APP_ENV") == "local" {
		startLocal(r, s.config.Port)
	} else {
		startLambda(r)
	}
}

// StartLambda sets up for AWS Lambda
func startLambda(engine *gin.Engine) {
	ginLambda := ginadapter.NewV2(engine)

	handler := func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		logging.Log.Infof("Lambda handler triggered on path: %s", req.RawPath)
		return ginLambda.ProxyWithContext(ctx, req)
	}

	logging.Log.Info("Starting lambda")
	lambda.Start(handler)
}

// StartLocal starts a normal HTTP server on the configured port
func startLocal(engine *gin.Engine, port int) {
	logging.Log.Info(fmt.Sprintf("Starting server on http://localhost:%d", port))

	if err := engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		logging.Log.Fatalf("Failed to run server: %v", err)
	}
}
