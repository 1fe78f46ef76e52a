package main

import (
	"fmt"
	"io"
	"os"

	"github.com/NethermindEth/t9n/t9n"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func ValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Hash a transaction and verify its signature",
		Long: `This subcommand computes the hash of a JSON transaction for the given chain and
checks its two element signature against the public key.`,
		Args: cobra.NoArgs,
		RunE: validate,
	}
	cmd.Flags().String(fileF, "", fileUsage)
	cmd.Flags().String(publicKeyF, defaultPublicKey, publicKeyUsage)
	addValidatorFlags(cmd)
	_ = cmd.MarkFlagRequired(fileF)

	return cmd
}

func HashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Compute the hash of a transaction",
		Args:  cobra.NoArgs,
		RunE:  hash,
	}
	cmd.Flags().String(fileF, "", fileUsage)
	cmd.Flags().Bool(dumpF, false, dumpUsage)
	addValidatorFlags(cmd)
	_ = cmd.MarkFlagRequired(fileF)

	return cmd
}

func validate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	v, err := newValidator(cfg, log)
	if err != nil {
		return err
	}

	file, err := cmd.Flags().GetString(fileF)
	if err != nil {
		return err
	}

	res, err := v.ValidateFile(file)
	if err != nil {
		return errors.Wrapf(err, "validate %s", file)
	}

	report := newValidationReport(file, res, nil)
	return render(cmd.OutOrStdout(), cfg.Output, report, report.writeText)
}

func hash(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	v, err := newValidator(cfg, log)
	if err != nil {
		return err
	}

	file, err := cmd.Flags().GetString(fileF)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return errors.Wrap(err, "read transaction")
	}

	res, err := v.Hash(data)
	if err != nil {
		return errors.Wrapf(err, "hash %s", file)
	}

	dump, err := cmd.Flags().GetBool(dumpF)
	if err != nil {
		return err
	}
	if dump {
		if err = dumpTransaction(cmd.ErrOrStderr(), data, cfg); err != nil {
			return err
		}
	}

	report := newValidationReport(file, res, nil)
	return render(cmd.OutOrStdout(), cfg.Output, report, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, res.Hash)
		return err
	})
}

func dumpTransaction(w io.Writer, data []byte, cfg *Config) error {
	protocolVersion, err := protocolVersionOf(cfg)
	if err != nil {
		return err
	}
	tx, err := t9n.ParseTransaction(data, protocolVersion)
	if err != nil {
		return err
	}

	dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
	dumper.Fdump(w, tx)
	return nil
}
