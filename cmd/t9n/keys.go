package main

import (
	"fmt"
	"io"

	"github.com/NethermindEth/t9n/core/crypto"
	"github.com/NethermindEth/t9n/core/felt"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func SignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a message hash with a Stark private key",
		Long: `This subcommand produces a deterministic (RFC 6979) signature over a message hash.
It is meant for building test vectors, keep real keys out of shell history.`,
		Args: cobra.NoArgs,
		RunE: sign,
	}
	cmd.Flags().String(privateKeyF, "", privateKeyUsage)
	cmd.Flags().String(hashF, "", hashUsage)
	_ = cmd.MarkFlagRequired(privateKeyF)
	_ = cmd.MarkFlagRequired(hashF)

	return cmd
}

func PublicKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "public-key",
		Short: "Derive the public key of a Stark private key",
		Args:  cobra.NoArgs,
		RunE:  publicKey,
	}
	cmd.Flags().String(privateKeyF, "", privateKeyUsage)
	_ = cmd.MarkFlagRequired(privateKeyF)

	return cmd
}

func SelectorCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "selector <name>",
		Short:   "Compute the entry point selector of a function name",
		Example: "t9n selector __execute__",
		Args:    cobra.ExactArgs(1),
		RunE:    selector,
	}
}

func sign(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	privKey, err := feltFlag(cmd, privateKeyF)
	if err != nil {
		return err
	}
	msgHash, err := feltFlag(cmd, hashF)
	if err != nil {
		return err
	}

	sig, err := crypto.Sign(privKey, msgHash)
	if err != nil {
		return errors.Wrap(err, "sign")
	}

	report := signatureReport{R: &sig.R, S: &sig.S, V: &sig.V}
	return render(cmd.OutOrStdout(), cfg.Output, report, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "r: %s\ns: %s\nv: %s\n", report.R, report.S, report.V)
		return err
	})
}

func publicKey(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	privKey, err := feltFlag(cmd, privateKeyF)
	if err != nil {
		return err
	}

	pub, err := crypto.GetPublicKey(privKey)
	if err != nil {
		return errors.Wrap(err, "derive public key")
	}
	return renderFelt(cmd, cfg, pub)
}

func selector(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sel, err := crypto.Selector(args[0])
	if err != nil {
		return errors.Wrap(err, "selector")
	}
	return renderFelt(cmd, cfg, sel)
}

func renderFelt(cmd *cobra.Command, cfg *Config, value *felt.Felt) error {
	return render(cmd.OutOrStdout(), cfg.Output, feltReport{Value: value}, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, value)
		return err
	})
}

func feltFlag(cmd *cobra.Command, name string) (*felt.Felt, error) {
	s, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil, err
	}
	f, err := felt.NewFromString(s)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return f, nil
}
