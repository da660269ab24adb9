package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/urfave/cli.v1"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/reflection"

	"github.com/canonical/ratings/auth"
	"github.com/canonical/ratings/catalog"
	"github.com/canonical/ratings/config"
	"github.com/canonical/ratings/coordinator"
	"github.com/canonical/ratings/log"
	"github.com/canonical/ratings/pb"
	"github.com/canonical/ratings/service"
	"github.com/canonical/ratings/store"
)

func main() {
	app := cli.NewApp()

	app.Name = "ratingsd"
	app.Usage = "the application-store ratings gRPC backend"

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "log-level",
			Value: "info",
			Usage: "minimum log level emitted (debug, info, warn, error)",
		},
		cli.BoolFlag{
			Name:  "log-json",
			Usage: "emit logs as line-delimited JSON instead of the console writer",
		},
	}

	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to start ratingsd")
	}
}

func run(c *cli.Context) error {
	log.SetLevel(c.String("log-level"))
	if c.Bool("log-json") {
		log.SetJSON()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := store.Open(ctx, cfg.PostgresURI, int32(cfg.DBMaxConns))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()

	if err := pool.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate schema")
	}

	catalogClient := catalog.NewClient(cfg.SnapcraftIOURI, time.Duration(cfg.CatalogTimeoutS)*time.Second)
	defer catalogClient.Close()

	coord := coordinator.New(pool, catalogClient)
	codec := auth.NewCodec(cfg.JWTSecret)
	caches := service.NewResponseCaches()

	deps := service.Deps{
		Store:       pool,
		Codec:       codec,
		Coordinator: coord,
		Catalog:     catalogClient,
		Caches:      caches,
	}

	grpcServer, err := newGRPCServer(cfg, codec)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure grpc server")
	}

	pb.RegisterUserServer(grpcServer, service.NewUserService(deps))
	pb.RegisterAppServer(grpcServer, service.NewAppService(deps))
	pb.RegisterChartServer(grpcServer, service.NewChartService(deps))
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Addr()).Msg("failed to bind listener")
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Bool("tls", cfg.TLSEnabled()).Msg("ratingsd listening")
		if err := grpcServer.Serve(lis); err != nil {
			log.Error().Err(err).Msg("grpc server stopped serving")
		}
	}()

	waitForShutdown(grpcServer)

	return nil
}

func newGRPCServer(cfg *config.Config, codec *auth.Codec) (*grpc.Server, error) {
	opts := []grpc.ServerOption{
		grpc.UnaryInterceptor(auth.UnaryServerInterceptor(codec)),
	}

	if cfg.TLSEnabled() {
		creds, err := credentials.NewServerTLSFromFile(cfg.TLSCertPath, cfg.TLSKeyPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, grpc.Creds(creds))
	}

	return grpc.NewServer(opts...), nil
}

// waitForShutdown blocks until SIGINT/SIGTERM, then drains in-flight
// RPCs before returning.
func waitForShutdown(grpcServer *grpc.Server) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Info().Msg("shutting down, draining in-flight requests")
	grpcServer.GracefulStop()
}
