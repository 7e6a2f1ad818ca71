//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"prize-wheel/cmd/bootstrap"
	"prize-wheel/cmd/bootstrap/components"
	"prize-wheel/internal/infra/db"
	"prize-wheel/internal/infra/kv"
	"prize-wheel/internal/pkg/config"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

// Drivers lists every STATE_DRIVER the e2e suites run against.
var Drivers = []string{"memory", "redis", "postgres", "mongo"}

var (
	postgresContainerOnce sync.Once
	postgresTestContainer testcontainers.Container

	redisContainerOnce sync.Once
	redisTestContainer testcontainers.Container

	mongoContainerOnce sync.Once
	mongoTestContainer testcontainers.Container

	testUser     = "test"
	testPassword = "testpass"
)

type ContainerInfo struct {
	Host string
	Port nat.Port
}

func (c ContainerInfo) Addr() string {
	return c.Host + ":" + c.Port.Port()
}

// ------------------------------------------------------------
// Per-driver configuration
// ------------------------------------------------------------

// newBackendConfig returns a test config pointing at the container for
// driver. Every call gets its own namespace, so tests never share state.
func newBackendConfig(t *testing.T, driver string) config.Config {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.NewTestConfig()
	cfg.State.Driver = driver
	cfg.State.Namespace = "e2e-" + uuid.NewString()
	cfg.Wheel.RevealDelay = 500 * time.Millisecond
	cfg.Wheel.SweepInterval = 200 * time.Millisecond
	cfg.Bonus.SubscriptionConfirmDelay = 300 * time.Millisecond

	switch driver {
	case "memory":
	case "redis":
		startRedisContainerOnce(t)
		info, err := getContainerHostPort(redisTestContainer, "6379/tcp")
		require.NoError(t, err, "failed to resolve the redis container")
		cfg.Redis = config.RedisConfig{Addr: info.Addr(), PoolSize: 5}
	case "postgres":
		startPostgreSQLContainerOnce(t)
		info, err := getContainerHostPort(postgresTestContainer, "5432/tcp")
		require.NoError(t, err, "failed to resolve the postgres container")
		cfg.DB = prepareDatabase(t, info)
	case "mongo":
		startMongoContainerOnce(t)
		info, err := getContainerHostPort(mongoTestContainer, "27017/tcp")
		require.NoError(t, err, "failed to resolve the mongo container")
		cfg.Mongo = config.MongoConfig{
			URI:        "mongodb://" + info.Addr(),
			Database:   "prize_wheel_e2e",
			Collection: "promotion_state",
		}
	default:
		t.Fatalf("unknown driver %q", driver)
	}
	return cfg
}

// openStore opens the configured backend outside of an fx app. The store is
// closed when the test ends.
func openStore(t *testing.T, cfg config.Config) kv.Store {
	t.Helper()

	lc := fxtest.NewLifecycle(t)
	store, err := bootstrap.NewKVStore(lc, cfg, bootstrap.NewLogger(cfg))
	require.NoError(t, err, "failed to open the state store")
	lc.RequireStart()
	t.Cleanup(func() { lc.RequireStop() })
	return store
}

// ------------------------------------------------------------
// Database preparation
// ------------------------------------------------------------
func prepareDatabase(t *testing.T, postgresInfo ContainerInfo) config.DBConfig {
	t.Helper()

	// One database per test keeps namespaces and migrations independent.
	dbName := "testdb_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		testUser, testPassword, postgresInfo.Host, postgresInfo.Port.Port())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adminPool, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "failed to connect as admin")
	defer adminPool.Close()

	var createErr error
	for attempts := range 5 {
		if attempts > 0 {
			waitTime := min(time.Duration(500+attempts*500)*time.Millisecond, 3*time.Second)
			slog.Warn("retrying database creation", "attempt", attempts+1, "error", createErr.Error(), "retry_wait", waitTime)
			time.Sleep(waitTime)
		}
		_, createErr = adminPool.Exec(ctx, "CREATE DATABASE "+dbName)
		if createErr == nil {
			break
		}
	}
	require.NoError(t, createErr, "failed to create the test database")

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cleanupCancel()

		cleanupPool, err := pgxpool.New(cleanupCtx, adminDSN)
		if err != nil {
			slog.Warn("failed to connect for database cleanup", "database", dbName, "error", err.Error())
			return
		}
		defer cleanupPool.Close()

		if _, err := cleanupPool.Exec(cleanupCtx, "DROP DATABASE IF EXISTS "+dbName+" WITH (FORCE)"); err != nil {
			slog.Warn("failed to drop the test database", "database", dbName, "error", err.Error())
		}
	})

	dbConfig := config.DBConfig{
		Host:     postgresInfo.Host,
		Port:     postgresInfo.Port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
		TimeZone: "UTC",
	}

	require.NoError(t, applyMigrations(t, dbConfig), "failed to apply migrations")
	return dbConfig
}

func applyMigrations(t *testing.T, dbConfig config.DBConfig) error {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	pool, closePool, err := db.Connect(ctx, dbConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer closePool()

	migrationFiles := []string{
		"migrations/001_promotion_state.sql",
	}

	for _, file := range migrationFiles {
		// go test runs in the package directory, so walk up to the repo root.
		var (
			sqlContent []byte
			readErr    error
		)
		candidates := []string{
			file,
			filepath.Join("..", file),
			filepath.Join("..", "..", file),
			filepath.Join("..", "..", "..", file),
		}
		for _, cand := range candidates {
			sqlContent, readErr = os.ReadFile(cand)
			if readErr == nil {
				file = cand
				break
			}
		}
		if readErr != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, readErr)
		}

		if _, err := pool.Exec(ctx, string(sqlContent)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", file, err)
		}
	}

	return nil
}

// ------------------------------------------------------------
// Application
// ------------------------------------------------------------

// buildE2EApp starts the full module graph with cfg in place of the
// environment.
func buildE2EApp(t *testing.T, cfg config.Config) (*gin.Engine, *fx.App) {
	t.Helper()

	var router *gin.Engine

	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.StateModule,
		bootstrap.EventsModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, app.Start(ctx), "failed to start the fx app")
	require.NotNil(t, router, "router was not populated")
	return router, app
}

func stopApp(t *testing.T, app *fx.App) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		slog.Warn("failed to stop the fx app", "error", err.Error())
	}
}

// ------------------------------------------------------------
// Containers
// ------------------------------------------------------------
func startGenericContainer(req testcontainers.ContainerRequest, timeoutSec int) (testcontainers.Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	defer cancel()

	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
}

// Containers live for the whole test binary; ryuk reaps them afterwards.
func startPostgreSQLContainerOnce(t *testing.T) {
	postgresContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{
				"/var/lib/postgresql/data": "rw,size=256m",
			},
			Cmd: []string{
				"postgres",
				"-c", "fsync=off",
				"-c", "full_page_writes=off",
				"-c", "synchronous_commit=off",
				"-c", "log_statement=none",
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
					testUser, testPassword, host, port.Port())
			}).WithStartupTimeout(60 * time.Second),
			Labels: map[string]string{"purpose": "e2e-tests"},
		}

		var err error
		postgresTestContainer, err = startGenericContainer(req, 180)
		require.NoError(t, err, "failed to start the postgres container")
	})
	require.NotNil(t, postgresTestContainer, "postgres container is unavailable")
}

func startRedisContainerOnce(t *testing.T) {
	redisContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			Cmd:          []string{"redis-server", "--save", "", "--appendonly", "no"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
			Labels:       map[string]string{"purpose": "e2e-tests"},
		}

		var err error
		redisTestContainer, err = startGenericContainer(req, 120)
		require.NoError(t, err, "failed to start the redis container")
	})
	require.NotNil(t, redisTestContainer, "redis container is unavailable")
}

func startMongoContainerOnce(t *testing.T) {
	mongoContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor: wait.ForAll(
				wait.ForLog("Waiting for connections"),
				wait.ForListeningPort("27017/tcp"),
			).WithDeadline(90 * time.Second),
			Labels: map[string]string{"purpose": "e2e-tests"},
		}

		var err error
		mongoTestContainer, err = startGenericContainer(req, 180)
		require.NoError(t, err, "failed to start the mongo container")
	})
	require.NotNil(t, mongoTestContainer, "mongo container is unavailable")
}

func getContainerHostPort(c testcontainers.Container, port string) (ContainerInfo, error) {
	ctx := context.Background()
	mappedPort, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return ContainerInfo{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return ContainerInfo{}, err
	}
	return ContainerInfo{Host: host, Port: mappedPort}, nil
}

// ------------------------------------------------------------
// Shared suite
// ------------------------------------------------------------

// SharedSuite runs a fresh app per test against one state driver.
type SharedSuite struct {
	suite.Suite
	Driver string
	Config config.Config
	Router *gin.Engine
	app    *fx.App
}

func (s *SharedSuite) SetupTest() {
	s.Config = newBackendConfig(s.T(), s.Driver)
	s.Router, s.app = buildE2EApp(s.T(), s.Config)
}

func (s *SharedSuite) TearDownTest() {
	if s.app != nil {
		stopApp(s.T(), s.app)
		s.app = nil
	}
}

// Restart stops the app and starts a new one on the same namespace.
func (s *SharedSuite) Restart() {
	stopApp(s.T(), s.app)
	s.Router, s.app = buildE2EApp(s.T(), s.Config)
}

// Durable reports whether state survives a restart for this driver.
func (s *SharedSuite) Durable() bool {
	return s.Driver != "memory"
}
