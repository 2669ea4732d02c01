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
	"log"

	"github.com/spf13/cobra"
)

// @title CubeHub API
// @version 1.0.0
// @description Community catalog of speedcubing algorithms with local-first sync
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/cubehub
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

var (
	rootCmd = &cobra.Command{
		Use:               "cubehub",
		Short:             "Speedcubing algorithm catalog server and utilities",
		SilenceUsage:      true,
		PersistentPreRunE: loadEnv,
	}
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE:  runServe,
	}
	healthCmd = &cobra.Command{
		Use:   "health",
		Short: "Check the cache and remote store, exit 1 when unhealthy",
		RunE:  runHealth,
	}
	searchCmd = &cobra.Command{
		Use:   "search [term]",
		Short: "Search the catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSearch,
	}
	seedCmd = &cobra.Command{
		Use:   "seed [file.yaml]",
		Short: "Import a catalog file, the built-in starter catalog by default",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSeed,
	}
	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Write users and algorithms as a catalog file to stdout",
		RunE:  runExport,
	}
	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Delete local copies of the catalog, users and settings",
		RunE:  runReset,
	}

	// Flags
	envFile      string
	addr         string
	category     string
	cubeType     string
	keepUsers    bool
	keepSettings bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&envFile, "env-file", "f", "", "Path to a .env file loaded before reading configuration")
	serveCmd.Flags().StringVar(&addr, "addr", "", "Address to listen on (host:port). Falls back to :PORT")
	searchCmd.Flags().StringVar(&category, "category", "", "Category filter, All for any")
	searchCmd.Flags().StringVar(&cubeType, "cube-type", "", "Cube type filter, All for any")
	resetCmd.Flags().BoolVar(&keepUsers, "keep-users", false, "Keep registered users and the session")
	resetCmd.Flags().BoolVar(&keepSettings, "keep-settings", false, "Keep the language setting")
	rootCmd.AddCommand(serveCmd, healthCmd, searchCmd, seedCmd, exportCmd, resetCmd)
}
