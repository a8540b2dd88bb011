// Copyright 2026 wfystx
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	nebula "github.com/wfystx/gnebula"
	"github.com/wfystx/gnebula/async"
)

type cmdFlags struct {
	flagset    *flag.FlagSet
	configFile string
	address    string
	user       string
	password   string
	space      string
	timeout    time.Duration
}

func newCmdFlags() *cmdFlags {
	f := &cmdFlags{
		flagset: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}
	f.flagset.StringVar(
		&f.configFile,
		"config",
		"",
		"path to a YAML client config",
	)
	f.flagset.StringVar(
		&f.address,
		"address",
		"",
		"service address in host:port format. this overrides the config addresses",
	)
	f.flagset.StringVar(
		&f.user,
		"user",
		"",
		"username (defaults to GNEBULA_USER from the environment)",
	)
	f.flagset.StringVar(
		&f.password,
		"password",
		"",
		"password (defaults to GNEBULA_PASSWORD from the environment)",
	)
	f.flagset.StringVar(
		&f.space,
		"space",
		"",
		"space to switch to before running statements",
	)
	f.flagset.DurationVar(
		&f.timeout,
		"timeout",
		0,
		"per-request timeout. this overrides the config timeout",
	)
	return f
}

func main() {
	f := newCmdFlags()
	if err := f.flagset.Parse(os.Args[1:]); err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}
	statements := f.flagset.Args()
	if len(statements) == 0 {
		fmt.Printf("Usage: %s [options] <statement> [statement ...]\n", os.Args[0])
		f.flagset.PrintDefaults()
		os.Exit(1)
	}
	// Credentials can come from a .env file or the environment
	_ = godotenv.Load(".env")
	if f.user == "" {
		f.user = os.Getenv("GNEBULA_USER")
	}
	if f.password == "" {
		f.password = os.Getenv("GNEBULA_PASSWORD")
	}

	config := nebula.DefaultConfig()
	if f.configFile != "" {
		fileConfig, err := nebula.NewConfigFromFile(f.configFile)
		if err != nil {
			fmt.Printf("ERROR: %s\n", err)
			os.Exit(1)
		}
		config = *fileConfig
	}
	if f.address != "" {
		host, portStr, err := net.SplitHostPort(f.address)
		if err != nil {
			fmt.Printf("ERROR: invalid address: %s\n", err)
			os.Exit(1)
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			fmt.Printf("ERROR: invalid port: %s\n", err)
			os.Exit(1)
		}
		config.Addresses = []nebula.HostAddress{
			nebula.NewHostAddress(host, port),
		}
	}
	if f.timeout > 0 {
		config.Timeout = f.timeout
	}

	syncClient, err := nebula.NewClient(
		nebula.WithConfig(config),
		nebula.WithCredentials(f.user, f.password),
	)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	client := async.NewClient(syncClient)
	defer client.Close()

	ctx := context.Background()
	if _, err := client.Connect(ctx).Result(); err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	if f.space != "" {
		if _, err := client.SwitchSpace(ctx, f.space).Result(); err != nil {
			fmt.Printf("ERROR: %s\n", err)
			os.Exit(1)
		}
	}

	// Statements are submitted together; results print in order once
	// they are all in
	futures := make([]*async.Future[*nebula.ResultSet], len(statements))
	for i, statement := range statements {
		futures[i] = client.ExecuteQuery(ctx, statement)
	}
	results := make([]*nebula.ResultSet, len(statements))
	group := new(errgroup.Group)
	for i := range futures {
		i := i
		group.Go(func() error {
			result, err := futures[i].Result()
			if err != nil {
				return fmt.Errorf("%s: %w", statements[i], err)
			}
			results[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	for i, result := range results {
		printResult(statements[i], result)
	}
}

func printResult(statement string, result *nebula.ResultSet) {
	fmt.Printf("> %s\n", statement)
	if len(result.ColumnNames()) > 0 {
		fmt.Printf("columns: %s\n", strings.Join(result.ColumnNames(), ", "))
	}
	for _, row := range result.Rows() {
		cells := make([]string, 0, len(row.Columns.Value()))
		for _, column := range row.Columns.Value() {
			cells = append(cells, column.String())
		}
		fmt.Printf("  %s\n", strings.Join(cells, " | "))
	}
	fmt.Printf("%d rows in %s\n\n", result.RowCount(), result.Latency())
}
