// main.go
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

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/cubehub/internal/testhelpers"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Run the cubehub cache backends (postgres, redis, mongo) in containers and print
the environment a local server needs to use each of them.

Usage:

devstack [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to a .env file with image overrides

example
  devstack -f /path/to/something/.env
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	ready := make(chan *testhelpers.TestContainers, 1)
	go func() {
		tc, err := testhelpers.CreateAllTestContainers(nil)
		if err != nil {
			log.Fatalf("Failed to create containers: %v\n", err)
		}
		ready <- tc
	}()

	var containers *testhelpers.TestContainers
	select {
	case containers = <-ready:
		printEnv(containers)
	case sig := <-sigs:
		log.Printf("Received signal: %v before containers were ready\n", sig)
		return
	}

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating containers...\n", sig)
	containers.Terminate(nil)
}

func printEnv(tc *testhelpers.TestContainers) {
	pg := tc.PostgresConfig()
	fmt.Printf(`
# gorm on postgres
CACHE_DRIVER=gorm
DB_TYPE=postgres
DB_HOST=%s
DB_PORT=%s
DB_DATABASE=%s
DB_USER=%s
DB_PASSWORD=%s

# redis
CACHE_DRIVER=redis
REDIS_ADDR=%s

# mongo
CACHE_DRIVER=mongo
MONGO_URI=%s

Press Ctrl+C to stop.
`, pg.DBHost, pg.DBPort, pg.DBDatabase, pg.DBUser, pg.DBPassword, tc.RedisAddr, tc.MongoURI)
}
