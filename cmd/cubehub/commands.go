// commands.go
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
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/localnerve/cubehub/data"
	"github.com/localnerve/cubehub/internal/catalog"
	"github.com/localnerve/cubehub/internal/seed"
	"github.com/localnerve/cubehub/internal/services"
	"github.com/spf13/cobra"
)

func runHealth(cmd *cobra.Command, args []string) error {
	d, err := openDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer d.Close()

	result := services.HealthCheck(cmd.Context(), d.kv, d.remote)
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal health check result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(output))

	if result.Status == services.StatusUnhealthy {
		d.Close()
		os.Exit(1)
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	d, err := openDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.service.Load(cmd.Context()); err != nil {
		return err
	}
	f := catalog.Filter{Category: category, CubeType: cubeType}
	if len(args) == 1 {
		f.Term = args[0]
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CUBE\tCATEGORY\tTITLE\tALGORITHM\tBY")
	for _, a := range d.service.Search(f) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.CubeType, a.Category, a.Title, a.Algorithm, a.Contributor)
	}
	return w.Flush()
}

func runSeed(cmd *cobra.Command, args []string) error {
	raw := data.SeedCatalog
	if len(args) == 1 {
		var err error
		if raw, err = os.ReadFile(args[0]); err != nil {
			return err
		}
	}
	cat, err := seed.Parse(raw)
	if err != nil {
		return err
	}

	d, err := openDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer d.Close()

	result, err := services.ImportCatalog(cmd.Context(), d.store, cat)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d users, %d algorithms (%d synced), skipped %d\n",
		result.Users, result.Algorithms, result.Synced, result.Skipped)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	d, err := openDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer d.Close()

	cat, err := services.ExportCatalog(cmd.Context(), d.store)
	if err != nil {
		return err
	}
	out, err := seed.Marshal(cat)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func runReset(cmd *cobra.Command, args []string) error {
	d, err := openDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer d.Close()

	n, err := services.PurgeLocalData(cmd.Context(), d.kv, services.PurgeOptions{
		KeepUsers:    keepUsers,
		KeepSettings: keepSettings,
	})
	fmt.Fprintf(cmd.OutOrStdout(), "removed %d keys\n", n)
	return err
}
