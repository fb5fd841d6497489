// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:   "data-dir",
		Value:  defaultDataDir(),
		Usage:  "directory for ledger databases",
		EnvVar: "LID_DATA_DIR",
	}
	configFlag = cli.StringFlag{
		Name:   "config",
		Usage:  "path to the genesis config (YAML), used when the data dir is empty",
		EnvVar: "LID_CONFIG",
	}
	memFlag = cli.BoolFlag{
		Name:  "mem",
		Usage: "keep databases in memory",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Value: 4096,
		Usage: "number of storage slots cached in memory",
	}
	ldbCacheFlag = cli.IntFlag{
		Name:  "ldb-cache",
		Value: 128,
		Usage: "size of the main database cache in MB",
	}
	verbosityFlag = cli.IntFlag{
		Name:   "verbosity",
		Value:  3,
		Usage:  "log verbosity (0-5)",
		EnvVar: "LID_VERBOSITY",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "log-json",
		Usage: "output logs in JSON format",
	}
	apiAddrFlag = cli.StringFlag{
		Name:   "api-addr",
		Value:  "localhost:8679",
		Usage:  "API service listening address",
		EnvVar: "LID_API_ADDR",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiLogsLimitFlag = cli.Uint64Flag{
		Name:  "api-logs-limit",
		Value: 1000,
		Usage: "limit the number of events returned by /events API",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:   "enable-metrics",
		Usage:  "enables metrics collection",
		EnvVar: "LID_ENABLE_METRICS",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
	dumpFlag = cli.BoolFlag{
		Name:  "dump",
		Usage: "dump raw structures instead of a summary",
	}
)
