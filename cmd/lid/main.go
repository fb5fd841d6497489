// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/cheggaaa/pb.v1"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/lidprotocol/lid/api"
	"github.com/lidprotocol/lid/builtin"
	"github.com/lidprotocol/lid/lid"
	"github.com/lidprotocol/lid/log"
	"github.com/lidprotocol/lid/metrics"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Lid",
		Usage:     "Ledger of the Lid staking economy",
		Copyright: "2026 The Lid developers",
		Flags: []cli.Flag{
			dataDirFlag,
			configFlag,
			memFlag,
			cacheFlag,
			ldbCacheFlag,
			verbosityFlag,
			jsonLogsFlag,
		},
		Before: func(ctx *cli.Context) error {
			initLogger(ctx)
			return nil
		},
		Commands: []cli.Command{
			{
				Name:      "run",
				Usage:     "apply a scenario of operations to the ledger",
				ArgsUsage: "<scenario.yaml>",
				Action:    runAction,
			},
			{
				Name:      "inspect",
				Usage:     "print the staking summary and the given accounts",
				ArgsUsage: "[address...]",
				Flags:     []cli.Flag{dumpFlag},
				Action:    inspectAction,
			},
			{
				Name:  "serve",
				Usage: "serve the ledger API",
				Flags: []cli.Flag{
					apiAddrFlag,
					apiCorsFlag,
					apiLogsLimitFlag,
					enableAPILogsFlag,
					enableMetricsFlag,
					metricsAddrFlag,
				},
				Action: serveAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("scenario file required")
	}
	sc, err := loadScenario(ctx.Args().First())
	if err != nil {
		return err
	}
	s, err := openStores(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	l, err := openLedger(ctx, s)
	if err != nil {
		return err
	}

	fmt.Printf(">> Applying %d steps <<\n", len(sc.Steps))
	bar := pb.New(len(sc.Steps)).
		SetMaxWidth(90).
		Start()
	defer func() { bar.NotPrint = true }()

	if err := sc.run(handleExitSignal(), l, func() { bar.Increment() }); err != nil {
		return err
	}
	bar.Finish()
	clock := l.Clock()
	fmt.Printf("ledger at block #%d @%d\n", clock.Number, clock.Time)
	return nil
}

func inspectAction(ctx *cli.Context) error {
	s, err := openStores(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	l, err := openLedger(ctx, s)
	if err != nil {
		return err
	}
	summary, err := l.Staking()
	if err != nil {
		return err
	}
	clock := l.Clock()
	dump := ctx.Bool(dumpFlag.Name)
	if dump {
		spew.Dump(clock, summary)
	} else {
		fmt.Printf("block #%d @%d\n", clock.Number, clock.Time)
		fmt.Printf("schema v%d, active: %v\n", summary.Version, summary.Active)
		fmt.Printf("staked: %s by %v stakers\n", lid.FormatAmount(summary.Totals.TotalStaked), summary.Totals.TotalStakers)
		fmt.Printf("undistributed: %s\n", lid.FormatAmount(summary.Totals.Undistributed))

		contracts := builtin.Contracts()
		names := make([]string, 0, len(contracts))
		for name := range contracts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%-10s %v\n", name, contracts[name])
		}
	}

	for _, arg := range ctx.Args() {
		addr, err := lid.ParseAddress(arg)
		if err != nil {
			return errors.WithMessagef(err, "address %q", arg)
		}
		acc, err := l.Account(*addr)
		if err != nil {
			return err
		}
		if dump {
			spew.Dump(acc)
			continue
		}
		fmt.Printf("%v balance=%s stake=%s dividends=%s registered=%v rewards=%v\n",
			addr,
			lid.FormatAmount(acc.Balance),
			lid.FormatAmount(acc.Stake),
			lid.FormatAmount(acc.Dividends),
			acc.Registered,
			acc.RewardsRegistered,
		)
	}
	return nil
}

func serveAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	s, err := openStores(ctx)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing databases..."); s.Close() }()

	l, err := openLedger(ctx, s)
	if err != nil {
		return err
	}

	enableMetrics := ctx.Bool(enableMetricsFlag.Name)
	if enableMetrics {
		metrics.InitializePrometheusMetrics()
	}

	handler := api.New(l, s.logDB, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		EnableMetrics:   enableMetrics,
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		LogsLimit:       ctx.Uint64(apiLogsLimitFlag.Name),
	})

	exitCtx := handleExitSignal()
	group, groupCtx := errgroup.WithContext(exitCtx)
	group.Go(func() error {
		return serveHTTP(groupCtx, "api", ctx.String(apiAddrFlag.Name), handler)
	})
	if enableMetrics {
		group.Go(func() error {
			return serveHTTP(groupCtx, "metrics", ctx.String(metricsAddrFlag.Name), metrics.HTTPHandler())
		})
	}
	return ignoreCanceled(group.Wait())
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
