// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bitlib/txbuild/internal/cfgutil"
	"github.com/bitlib/txbuild/netparams"
	"github.com/bitlib/txbuild/wallet/txrules"
	"github.com/btcsuite/btcd/btcutil"
	flags "github.com/jessevdk/go-flags"
)

const (
	defaultConfigFilename = "txbuild.conf"
	defaultLogLevel       = "info"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "txbuild.log"
)

var (
	txbuildHomeDir    = btcutil.AppDataDir("txbuild", false)
	defaultConfigFile = filepath.Join(txbuildHomeDir, defaultConfigFilename)
	defaultLogDir     = filepath.Join(txbuildHomeDir, defaultLogDirname)
)

type config struct {
	// General application behavior
	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file"`
	TestNet3   bool   `long:"testnet" description:"Use the test bitcoin network (version 3)"`
	SimNet     bool   `long:"simnet" description:"Use the simulation bitcoin network"`
	RegTest    bool   `long:"regtest" description:"Use the regression test bitcoin network"`
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	LogDir     string `long:"logdir" description:"Directory to log output"`

	// Funding
	CoinFile  string `long:"coinfile" description:"JSON file holding the result of a listunspent call"`
	TipHeight int32  `long:"tipheight" description:"Height of the best block, used to order coins by age"`
	KeyFile   string `long:"keyfile" description:"File with one WIF private key per line (prompted for if not set)"`

	// Transaction
	Outputs      []cfgutil.OutputFlag    `long:"output" description:"Payment given as address:amount, may be repeated"`
	NullData     cfgutil.HexFlag         `long:"nulldata" description:"Hex encoded data to carry in a zero value output"`
	ChangeAddr   *cfgutil.ExplicitString `long:"change" description:"Address receiving change (default: the address contributing most to the funding)"`
	FeeRate      *cfgutil.AmountFlag     `long:"feerate" description:"Transaction fee per started kilobyte"`
	LockTime     uint32                  `long:"locktime" description:"Block height or unix time before which the transaction is not final"`
	PSBT         bool                    `long:"psbt" description:"Print an unsigned PSBT instead of signing"`
	MaxSpendable bool                    `long:"maxspendable" description:"Print the largest amount a single output can send and exit"`

	params *netparams.Params
}

// validLogLevel returns whether or not logLevel is a valid debug log level.
func validLogLevel(logLevel string) bool {
	switch logLevel {
	case "trace", "debug", "info", "warn", "error", "critical":
		return true
	}
	return false
}

// supportedSubsystems returns a sorted slice of the supported subsystems for
// logging purposes.
func supportedSubsystems() []string {
	subsystems := make([]string, 0, len(subsystemLoggers))
	for subsysID := range subsystemLoggers {
		subsystems = append(subsystems, subsysID)
	}
	sort.Strings(subsystems)
	return subsystems
}

// parseAndSetDebugLevels attempts to parse the specified debug level and set
// the levels accordingly.  An appropriate error is returned if anything is
// invalid.
func parseAndSetDebugLevels(debugLevel string) error {
	// When the specified string doesn't have any delimters, treat it as
	// the log level for all subsystems.
	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		// Validate debug log level.
		if !validLogLevel(debugLevel) {
			str := "The specified debug level [%v] is invalid"
			return fmt.Errorf(str, debugLevel)
		}

		// Change the logging level for all subsystems.
		setLogLevels(debugLevel)

		return nil
	}

	// Split the specified string into subsystem/level pairs while detecting
	// issues and update the log levels accordingly.
	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			str := "The specified debug level contains an invalid " +
				"subsystem/level pair [%v]"
			return fmt.Errorf(str, logLevelPair)
		}

		// Extract the specified subsystem and log level.
		fields := strings.Split(logLevelPair, "=")
		subsysID, logLevel := fields[0], fields[1]

		// Validate subsystem.
		if _, exists := subsystemLoggers[subsysID]; !exists {
			str := "The specified subsystem [%v] is invalid -- " +
				"supported subsytems %v"
			return fmt.Errorf(str, subsysID, supportedSubsystems())
		}

		// Validate log level.
		if !validLogLevel(logLevel) {
			str := "The specified debug level [%v] is invalid"
			return fmt.Errorf(str, logLevel)
		}

		setLogLevel(subsysID, logLevel)
	}

	return nil
}

// errShowSubsystems is returned by loadConfig when the available logging
// subsystems were printed and the program should exit.
var errShowSubsystems = errors.New("subsystems shown")

// loadConfig parses args on top of the defaults and an optional config file
// and validates the result.
func loadConfig(args []string) (*config, error) {
	// Default config.
	cfg := config{
		ConfigFile: defaultConfigFile,
		DebugLevel: defaultLogLevel,
		LogDir:     defaultLogDir,
		ChangeAddr: cfgutil.NewExplicitString(""),
		FeeRate:    cfgutil.NewAmountFlag(txrules.DefaultFeePerKb),
	}

	// Pre-parse the command line options to see if an alternative config
	// file was specified.
	preCfg := cfg
	preCfg.ChangeAddr = cfgutil.NewExplicitString("")
	preCfg.FeeRate = cfgutil.NewAmountFlag(txrules.DefaultFeePerKb)
	preParser := flags.NewParser(&preCfg, flags.Default)
	if _, err := preParser.ParseArgs(args); err != nil {
		return nil, err
	}

	// Load additional config from file.  A missing default config file is
	// not an error.
	parser := flags.NewParser(&cfg, flags.Default)
	exists, err := cfgutil.FileExists(preCfg.ConfigFile)
	if err != nil {
		return nil, err
	}
	if exists {
		err := flags.NewIniParser(parser).ParseFile(preCfg.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("unable to parse config file: %w", err)
		}
	} else if preCfg.ConfigFile != defaultConfigFile {
		return nil, fmt.Errorf("config file %s not found",
			preCfg.ConfigFile)
	}

	// Parse command line options again to ensure they take precedence.
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}

	// Special show command to list supported subsystems and exit.
	if cfg.DebugLevel == "show" {
		fmt.Println("Supported subsystems", supportedSubsystems())
		return nil, errShowSubsystems
	}

	// Choose the active network params based on the selected network.
	cfg.params = &netparams.MainNetParams
	numNets := 0
	if cfg.TestNet3 {
		cfg.params = &netparams.TestNet3Params
		numNets++
	}
	if cfg.SimNet {
		cfg.params = &netparams.SimNetParams
		numNets++
	}
	if cfg.RegTest {
		cfg.params = &netparams.RegressionNetParams
		numNets++
	}
	if numNets > 1 {
		return nil, errors.New("the testnet, simnet and regtest params " +
			"can't be used together -- choose one")
	}

	cfg.LogDir = cfgutil.CleanAndExpandPath(cfg.LogDir)
	if cfg.KeyFile != "" {
		cfg.KeyFile = cfgutil.CleanAndExpandPath(cfg.KeyFile)
	}

	if cfg.CoinFile == "" {
		return nil, errors.New("a coin file is required")
	}
	cfg.CoinFile = cfgutil.CleanAndExpandPath(cfg.CoinFile)

	if !cfg.MaxSpendable && len(cfg.Outputs) == 0 && cfg.NullData == nil {
		return nil, errors.New("at least one output is required")
	}
	if cfg.FeeRate.Amount < 0 {
		return nil, fmt.Errorf("fee rate %v/kB is negative",
			cfg.FeeRate.Amount)
	}
	if cfg.FeeRate.Amount > 1e6 {
		return nil, fmt.Errorf("fee rate %v/kB is exceptionally high",
			cfg.FeeRate.Amount)
	}
	if cfg.TipHeight < 0 {
		return nil, errors.New("tip height must be non-negative")
	}

	return &cfg, nil
}
