// containers.go
//
// A job board backend for candidates, companies and their applications
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jobboard.
// jobboard is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jobboard is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jobboard.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/localnerve/jobboard/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

// ContainerOptions selects the optional services started next to MariaDB
type ContainerOptions struct {
	Authorizer bool
	Redis      bool
}

// TestContainers are the running backing services and their host addresses
type TestContainers struct {
	Network             *testcontainers.DockerNetwork
	DBContainer         testcontainers.Container
	AuthorizerContainer testcontainers.Container
	RedisContainer      testcontainers.Container

	DBHost    string
	DBPort    string
	AuthzURL  string
	RedisAddr string
}

// Terminate stops every started container and removes the network
func (tc *TestContainers) Terminate(t *testing.T) {
	ctx := context.Background()
	if tc.RedisContainer != nil {
		if err := tc.RedisContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate Redis: %v", err)
		}
	}
	if tc.AuthorizerContainer != nil {
		if err := tc.AuthorizerContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate Authorizer: %v", err)
		}
	}
	if tc.DBContainer != nil {
		if err := tc.DBContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate MariaDB: %v", err)
		}
	}
	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

// Config points a server configuration at the containers
func (tc *TestContainers) Config() *config.Config {
	return &config.Config{
		Port:                 envOr("PORT", "5000"),
		DBType:               "mariadb",
		DBHost:               tc.DBHost,
		DBPort:               tc.DBPort,
		DBAppDatabase:        envOr("DB_DATABASE", "jobboard"),
		DBAppUser:            envOr("DB_APP_USER", "jobboard"),
		DBAppPassword:        envOr("DB_APP_PASSWORD", "jobboard"),
		DBAppConnectionLimit: 10,
		JWTSecret:            envOr("JWT_SECRET", "testcontainers-secret"),
		JWTExpiresIn:         time.Hour,
		RedisAddr:            tc.RedisAddr,
		AuthRateLimit:        10,
		AuthRateWindow:       time.Minute,
		AuthzURL:             tc.AuthzURL,
		AuthzClientID:        os.Getenv("AUTHZ_CLIENT_ID"),
	}
}

// DockerAvailable reports whether a Docker daemon answers from this environment
func DockerAvailable(ctx context.Context) bool {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false
	}
	defer cli.Close()

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err = cli.Ping(ctx)
	return err == nil
}

// CreateTestContainers starts MariaDB and the requested optional services on a private network.
// On error everything already started is terminated.
func CreateTestContainers(t *testing.T, opts ContainerOptions) (tc *TestContainers, err error) {
	ctx := context.Background()
	tc = &TestContainers{}
	defer func() {
		if err != nil {
			tc.Terminate(t)
			tc = nil
		}
	}()

	nw, err := network.New(ctx)
	if err != nil {
		return tc, fmt.Errorf("failed to create network: %w", err)
	}
	tc.Network = nw
	networkName := nw.Name

	dbNetworkName := "mariadb"
	tcpDbPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		return tc, fmt.Errorf("failed to create DB port: %w", err)
	}
	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        envOr("DB_IMAGE", "mariadb:11"),
			ExposedPorts: []string{string(tcpDbPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": rootPassword(),
				"MYSQL_DATABASE":      envOr("DB_DATABASE", "jobboard"),
				"MYSQL_USER":          envOr("DB_APP_USER", "jobboard"),
				"MYSQL_PASSWORD":      envOr("DB_APP_PASSWORD", "jobboard"),
			},
			WaitingFor: wait.ForListeningPort(tcpDbPort).WithStartupTimeout(60 * time.Second),
			Networks:   []string{networkName},
			NetworkAliases: map[string][]string{
				networkName: {dbNetworkName},
			},
		},
		Started: true,
	})
	if err != nil {
		return tc, fmt.Errorf("failed to start MariaDB: %w", err)
	}
	tc.DBContainer = dbContainer

	dbHost, err := dbContainer.Host(ctx)
	if err != nil {
		return tc, fmt.Errorf("failed to read MariaDB host: %w", err)
	}
	dbPort, err := dbContainer.MappedPort(ctx, tcpDbPort)
	if err != nil {
		return tc, fmt.Errorf("failed to read MariaDB port: %w", err)
	}
	tc.DBHost, tc.DBPort = dbHost, dbPort.Port()

	if err := initMariaDB(tc.DBHost, tc.DBPort, opts.Authorizer); err != nil {
		return tc, err
	}
	logMessage(t, "DB_HOST=%s DB_PORT=%s", tc.DBHost, tc.DBPort)

	if opts.Authorizer {
		if err := startAuthorizer(ctx, t, tc, networkName, dbNetworkName); err != nil {
			return tc, err
		}
	}

	if opts.Redis {
		if err := startRedis(ctx, t, tc, networkName); err != nil {
			return tc, err
		}
	}

	logMessage(t, "jobboard testcontainers started successfully")
	return tc, nil
}

func startAuthorizer(ctx context.Context, t *testing.T, tc *TestContainers, networkName, dbNetworkName string) error {
	tcpAuthzPort, err := nat.NewPort("tcp", envOr("AUTHZ_PORT", "8080"))
	if err != nil {
		return fmt.Errorf("failed to create Authorizer port: %w", err)
	}
	authzDbConnection := fmt.Sprintf("root:%s@tcp(%s:3306)/%s", rootPassword(), dbNetworkName, authzDatabase())
	authzLogLevel := "info"
	if os.Getenv("DEBUG_CONTAINER") == "true" {
		authzLogLevel = "debug"
	}

	authorizerContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        envOr("AUTHZ_IMAGE", "lakhansamani/authorizer:latest"),
			ExposedPorts: []string{string(tcpAuthzPort)},
			Env: map[string]string{
				"ENV":           "production",
				"CLIENT_ID":     os.Getenv("AUTHZ_CLIENT_ID"),
				"PORT":          tcpAuthzPort.Port(),
				"DATABASE_TYPE": "mariadb",
				"DATABASE_NAME": authzDatabase(),
				"DATABASE_URL":  authzDbConnection,
				"ADMIN_SECRET":  os.Getenv("AUTHZ_ADMIN_SECRET"),
				"ROLES":         "admin,user",
				"DEFAULT_ROLES": "user",
				"LOG_LEVEL":     authzLogLevel,
			},
			WaitingFor: wait.ForLog("Authorizer running at PORT:").WithStartupTimeout(30 * time.Second),
			Networks:   []string{networkName},
			NetworkAliases: map[string][]string{
				networkName: {"authorizer"},
			},
		},
		Started: true,
	})
	if err != nil {
		return fmt.Errorf("failed to start Authorizer: %w", err)
	}
	tc.AuthorizerContainer = authorizerContainer

	authzHost, _ := authorizerContainer.Host(ctx)
	authzPort, _ := authorizerContainer.MappedPort(ctx, tcpAuthzPort)
	tc.AuthzURL = fmt.Sprintf("http://%s:%s", authzHost, authzPort.Port())
	logMessage(t, "AUTHZ_URL=%s", tc.AuthzURL)
	return nil
}

func startRedis(ctx context.Context, t *testing.T, tc *TestContainers, networkName string) error {
	tcpRedisPort, err := nat.NewPort("tcp", "6379")
	if err != nil {
		return fmt.Errorf("failed to create Redis port: %w", err)
	}
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        envOr("REDIS_IMAGE", "redis:7-alpine"),
			ExposedPorts: []string{string(tcpRedisPort)},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
			Networks:     []string{networkName},
		},
		Started: true,
	})
	if err != nil {
		return fmt.Errorf("failed to start Redis: %w", err)
	}
	tc.RedisContainer = redisContainer

	redisHost, _ := redisContainer.Host(ctx)
	redisPort, _ := redisContainer.MappedPort(ctx, tcpRedisPort)
	tc.RedisAddr = fmt.Sprintf("%s:%s", redisHost, redisPort.Port())
	logMessage(t, "REDIS_ADDR=%s", tc.RedisAddr)
	return nil
}

// initMariaDB waits for the server and grants the application user its database.
// The schema itself comes from AutoMigrate.
func initMariaDB(host, port string, withAuthorizer bool) error {
	db, err := sql.Open("mysql", fmt.Sprintf("root:%s@tcp(%s:%s)/", rootPassword(), host, port))
	if err != nil {
		return fmt.Errorf("failed to connect to MariaDB for setup: %w", err)
	}
	defer db.Close()

	for i := 0; i < 30; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("MariaDB not ready after 30 seconds: %w", err)
	}

	appDatabase := envOr("DB_DATABASE", "jobboard")
	statements := []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s CHARACTER SET utf8mb4", appDatabase),
		fmt.Sprintf("GRANT ALL PRIVILEGES ON %s.* TO '%s'@'%%'", appDatabase, envOr("DB_APP_USER", "jobboard")),
	}
	if withAuthorizer {
		statements = append(statements,
			fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", authzDatabase()),
			fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.authorizer_users (id CHAR(36) NOT NULL PRIMARY KEY)", authzDatabase()),
		)
	}
	statements = append(statements, "FLUSH PRIVILEGES")

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("%s : when executing > %s", err.Error(), stmt)
		}
	}
	return nil
}

func rootPassword() string {
	return envOr("DB_ROOT_PASSWORD", "root")
}

func authzDatabase() string {
	return envOr("AUTHZ_DATABASE", "authorizer")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
