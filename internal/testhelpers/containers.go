// containers.go
//
// A community catalog service for speedcubing algorithms
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of cubehub.
// cubehub is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// cubehub is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with cubehub.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package testhelpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/localnerve/cubehub/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Images used by the cache backend containers. Override with the env vars of the same name.
const (
	defaultPostgresImage = "postgres:16-alpine"
	defaultRedisImage    = "redis:7-alpine"
	defaultMongoImage    = "mongo:7"
)

const (
	postgresUser     = "cubehub"
	postgresPassword = "cubehub-test"
	postgresDatabase = "cubehub"
)

// TestContainers holds the cache backends started for integration runs.
type TestContainers struct {
	Network  *testcontainers.DockerNetwork
	Postgres testcontainers.Container
	Redis    testcontainers.Container
	Mongo    testcontainers.Container

	PostgresHost string
	PostgresPort string
	RedisAddr    string
	MongoURI     string
}

// Terminate stops every container that was started.
func (tc *TestContainers) Terminate(t *testing.T) {
	ctx := context.Background()
	for name, c := range map[string]testcontainers.Container{
		"Postgres": tc.Postgres,
		"Redis":    tc.Redis,
		"Mongo":    tc.Mongo,
	} {
		if c == nil {
			continue
		}
		if err := c.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate %s: %v", name, err)
		}
	}
	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

// PostgresConfig returns a gorm cache config for the postgres container.
func (tc *TestContainers) PostgresConfig() *config.Config {
	return &config.Config{
		CacheDriver:       "gorm",
		DBType:            "postgres",
		DBHost:            tc.PostgresHost,
		DBPort:            tc.PostgresPort,
		DBDatabase:        postgresDatabase,
		DBUser:            postgresUser,
		DBPassword:        postgresPassword,
		DBConnectionLimit: 4,
		RemoteTimeout:     10 * time.Second,
	}
}

// RedisConfig returns a redis cache config for the redis container.
func (tc *TestContainers) RedisConfig() *config.Config {
	return &config.Config{CacheDriver: "redis", RedisAddr: tc.RedisAddr, RemoteTimeout: 10 * time.Second}
}

// MongoConfig returns a mongo cache config for the mongo container.
func (tc *TestContainers) MongoConfig() *config.Config {
	return &config.Config{CacheDriver: "mongo", MongoURI: tc.MongoURI, MongoDatabase: "cubehub_test", RemoteTimeout: 10 * time.Second}
}

// CreateAllTestContainers starts postgres, redis and mongo on one network.
// With a nil t, failures print and exit, for use from a command.
func CreateAllTestContainers(t *testing.T) (*TestContainers, error) {
	ctx := context.Background()
	tc := &TestContainers{}

	nw, err := network.New(ctx)
	if err != nil {
		exitWithError(t, err, "Failed to create network")
		return nil, err
	}
	tc.Network = nw

	pgPort, _ := nat.NewPort("tcp", "5432")
	tc.Postgres, err = startContainer(ctx, nw.Name, "postgres", testcontainers.ContainerRequest{
		Image:        imageOr("POSTGRES_IMAGE", defaultPostgresImage),
		ExposedPorts: []string{string(pgPort)},
		Env: map[string]string{
			"POSTGRES_USER":     postgresUser,
			"POSTGRES_PASSWORD": postgresPassword,
			"POSTGRES_DB":       postgresDatabase,
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(90*time.Second),
			wait.ForListeningPort(pgPort).WithStartupTimeout(90*time.Second),
		),
	})
	if err != nil {
		tc.Terminate(t)
		exitWithError(t, err, "Failed to start Postgres")
		return nil, err
	}
	tc.PostgresHost, tc.PostgresPort = endpoint(ctx, tc.Postgres, pgPort)
	logMessage(t, "DB_HOST=%s DB_PORT=%s", tc.PostgresHost, tc.PostgresPort)

	redisPort, _ := nat.NewPort("tcp", "6379")
	tc.Redis, err = startContainer(ctx, nw.Name, "redis", testcontainers.ContainerRequest{
		Image:        imageOr("REDIS_IMAGE", defaultRedisImage),
		ExposedPorts: []string{string(redisPort)},
		WaitingFor:   wait.ForListeningPort(redisPort).WithStartupTimeout(60 * time.Second),
	})
	if err != nil {
		tc.Terminate(t)
		exitWithError(t, err, "Failed to start Redis")
		return nil, err
	}
	host, port := endpoint(ctx, tc.Redis, redisPort)
	tc.RedisAddr = host + ":" + port
	logMessage(t, "REDIS_ADDR=%s", tc.RedisAddr)

	mongoPort, _ := nat.NewPort("tcp", "27017")
	tc.Mongo, err = startContainer(ctx, nw.Name, "mongo", testcontainers.ContainerRequest{
		Image:        imageOr("MONGO_IMAGE", defaultMongoImage),
		ExposedPorts: []string{string(mongoPort)},
		WaitingFor:   wait.ForListeningPort(mongoPort).WithStartupTimeout(90 * time.Second),
	})
	if err != nil {
		tc.Terminate(t)
		exitWithError(t, err, "Failed to start Mongo")
		return nil, err
	}
	host, port = endpoint(ctx, tc.Mongo, mongoPort)
	tc.MongoURI = fmt.Sprintf("mongodb://%s:%s", host, port)
	logMessage(t, "MONGO_URI=%s", tc.MongoURI)

	return tc, nil
}

func startContainer(ctx context.Context, networkName, alias string, req testcontainers.ContainerRequest) (testcontainers.Container, error) {
	req.Networks = []string{networkName}
	req.NetworkAliases = map[string][]string{networkName: {alias}}
	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
}

func endpoint(ctx context.Context, c testcontainers.Container, port nat.Port) (string, string) {
	host, _ := c.Host(ctx)
	mapped, _ := c.MappedPort(ctx, port)
	return host, mapped.Port()
}

func imageOr(env, def string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

func exitWithError(t *testing.T, err error, msg string) {
	if t != nil {
		t.Fatalf(msg+": %v", err)
	} else {
		fmt.Printf(msg+": %v\n", err)
		os.Exit(1)
	}
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
