package main

import (
	"github.com/Masterminds/semver/v3"
	"github.com/NethermindEth/t9n/core"
	"github.com/NethermindEth/t9n/core/felt"
	"github.com/NethermindEth/t9n/t9n"
	"github.com/NethermindEth/t9n/utils"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Version string

const (
	configF          = "config"
	logLevelF        = "log-level"
	outputF          = "output"
	chainIDF         = "chain-id"
	publicKeyF       = "public-key"
	queryF           = "query"
	protocolVersionF = "protocol-version"
	fileF            = "file"
	dumpF            = "dump"
	privateKeyF      = "private-key"
	hashF            = "hash"
	workersF         = "workers"
	metricsTextfileF = "metrics-textfile"

	defaultConfig          = ""
	defaultChainID         = "mainnet"
	defaultPublicKey       = ""
	defaultQuery           = false
	defaultProtocolVersion = ""
	defaultWorkers         = 0
	defaultMetricsTextfile = ""

	configFlagUsage   = "The YAML configuration file."
	logLevelFlagUsage = "Options: debug, info, warn, error."
	outputUsage       = "Output format. Options: text, json, yaml, cbor."
	chainIDUsage      = "Chain id to hash for: a 0x-prefixed value, a network name " +
		"(mainnet, sepolia, sepolia-integration, goerli, goerli2, integration) or an ASCII chain id such as SN_SEPOLIA."
	publicKeyUsage = "Public key the signature must verify against. " +
		"If unset the key is recovered from the signature, which does not authenticate the signer."
	queryUsage           = "Hash the query-only variant used for simulation and fee estimation."
	protocolVersionUsage = "Starknet protocol version the transaction was sent under. " +
		"Before 0.13.4 the L1 data gas bounds of v3 transactions are not hashed. Defaults to the latest version."
	fileUsage            = "Path to the JSON transaction."
	dumpUsage            = "Dump the decoded transaction."
	privateKeyUsage      = "Stark private key."
	hashUsage            = "Message hash to sign."
	workersUsage         = "Number of files validated concurrently. Defaults to GOMAXPROCS."
	metricsTextfileUsage = "Write validation metrics to this file in the node exporter textfile format."
)

type Config struct {
	LogLevel        utils.LogLevel `mapstructure:"log-level"`
	Output          OutputFormat   `mapstructure:"output"`
	ChainID         string         `mapstructure:"chain-id"`
	PublicKey       string         `mapstructure:"public-key"`
	Query           bool           `mapstructure:"query"`
	ProtocolVersion string         `mapstructure:"protocol-version"`
	Workers         int            `mapstructure:"workers"`
	MetricsTextfile string         `mapstructure:"metrics-textfile"`
}

func NewCmd() *cobra.Command {
	t9nCmd := &cobra.Command{
		Use:          "t9n",
		Short:        "Starknet transaction hash and signature validation.",
		Version:      Version,
		SilenceUsage: true,
	}

	defaultLogLevel := utils.INFO
	defaultOutput := OutputText
	t9nCmd.PersistentFlags().String(configF, defaultConfig, configFlagUsage)
	t9nCmd.PersistentFlags().Var(&defaultLogLevel, logLevelF, logLevelFlagUsage)
	t9nCmd.PersistentFlags().Var(&defaultOutput, outputF, outputUsage)

	t9nCmd.AddCommand(
		ValidateCmd(),
		HashCmd(),
		SignCmd(),
		PublicKeyCmd(),
		SelectorCmd(),
		BatchCmd(),
	)
	return t9nCmd
}

// addValidatorFlags registers the flags shared by every command that hashes transactions
func addValidatorFlags(cmd *cobra.Command) {
	cmd.Flags().String(chainIDF, defaultChainID, chainIDUsage)
	cmd.Flags().Bool(queryF, defaultQuery, queryUsage)
	cmd.Flags().String(protocolVersionF, defaultProtocolVersion, protocolVersionUsage)
}

// loadConfig merges the configuration file with the command's flags. Flags
// set on the command line take precedence over the file.
func loadConfig(cmd *cobra.Command) (*Config, error) {
	v := viper.New()

	cfgFile, err := cmd.Flags().GetString(configF)
	if err != nil {
		return nil, err
	}
	if cfgFile != "" {
		v.SetConfigType("yaml")
		v.SetConfigFile(cfgFile)
		if err = v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "read config")
		}
	}

	if err = v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	cfg := new(Config)
	decodeHook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
	if err = v.Unmarshal(cfg, viper.DecodeHook(decodeHook)); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	return cfg, nil
}

func newLogger(cfg *Config) (utils.SimpleLogger, error) {
	log, err := utils.NewZapLogger(&cfg.LogLevel, false)
	if err != nil {
		return nil, errors.Wrap(err, "create logger")
	}
	return log, nil
}

func protocolVersionOf(cfg *Config) (*semver.Version, error) {
	return core.ParseProtocolVersion(cfg.ProtocolVersion)
}

func newValidator(cfg *Config, log utils.SimpleLogger) (*t9n.Validator, error) {
	chainID, err := utils.ResolveChainID(cfg.ChainID)
	if err != nil {
		return nil, errors.Wrap(err, "chain id")
	}

	protocolVersion, err := protocolVersionOf(cfg)
	if err != nil {
		return nil, err
	}

	v := t9n.New(chainID).
		WithQuery(cfg.Query).
		WithProtocolVersion(protocolVersion).
		WithLogger(log)

	if cfg.PublicKey != "" {
		publicKey, err := felt.NewFromString(cfg.PublicKey)
		if err != nil {
			return nil, errors.Wrap(err, "public key")
		}
		v.WithPublicKey(publicKey)
	}
	return v, nil
}
