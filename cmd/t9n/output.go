package main

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/NethermindEth/t9n/core/felt"
	"github.com/NethermindEth/t9n/t9n"
	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

var ErrUnknownOutputFormat = errors.New("unknown output format (known: text, json, yaml, cbor)")

type OutputFormat int

var (
	_ pflag.Value              = (*OutputFormat)(nil)
	_ encoding.TextUnmarshaler = (*OutputFormat)(nil)
)

const (
	OutputText OutputFormat = iota
	OutputJSON
	OutputYAML
	OutputCBOR
)

func (o OutputFormat) String() string {
	switch o {
	case OutputText:
		return "text"
	case OutputJSON:
		return "json"
	case OutputYAML:
		return "yaml"
	case OutputCBOR:
		return "cbor"
	default:
		// Should not happen.
		panic(ErrUnknownOutputFormat)
	}
}

func (o *OutputFormat) Set(s string) error {
	switch s {
	case "TEXT", "text":
		*o = OutputText
	case "JSON", "json":
		*o = OutputJSON
	case "YAML", "yaml":
		*o = OutputYAML
	case "CBOR", "cbor":
		*o = OutputCBOR
	default:
		return ErrUnknownOutputFormat
	}
	return nil
}

func (o *OutputFormat) Type() string {
	return "OutputFormat"
}

func (o *OutputFormat) UnmarshalText(text []byte) error {
	return o.Set(string(text))
}

// render writes v in the structured format, or calls text for OutputText
func render(w io.Writer, format OutputFormat, v any, text func(io.Writer) error) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case OutputText:
		return text(w)
	case OutputJSON:
		if data, err = json.MarshalIndent(v, "", "  "); err == nil {
			data = append(data, '\n')
		}
	case OutputYAML:
		data, err = yaml.Marshal(v)
	case OutputCBOR:
		data, err = cbor.Marshal(v)
	default:
		return ErrUnknownOutputFormat
	}
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}

type validationReport struct {
	File      string     `json:"file,omitempty" yaml:"file,omitempty" cbor:"file,omitempty"`
	Type      string     `json:"type" yaml:"type" cbor:"type"`
	Version   string     `json:"version" yaml:"version" cbor:"version"`
	Hash      *felt.Felt `json:"hash,omitempty" yaml:"hash,omitempty" cbor:"hash,omitempty"`
	PublicKey *felt.Felt `json:"public_key,omitempty" yaml:"public_key,omitempty" cbor:"public_key,omitempty"`
	Recovered bool       `json:"recovered" yaml:"recovered" cbor:"recovered"`
	Valid     bool       `json:"valid" yaml:"valid" cbor:"valid"`
	State     string     `json:"state" yaml:"state" cbor:"state"`
	Error     string     `json:"error,omitempty" yaml:"error,omitempty" cbor:"error,omitempty"`
}

func newValidationReport(file string, res *t9n.Result, err error) validationReport {
	if res == nil {
		res = &t9n.Result{State: t9n.StateRejected}
	}
	report := validationReport{
		File:      file,
		Type:      res.Type.String(),
		Version:   fmt.Sprintf("0x%x", res.Version),
		Hash:      res.Hash,
		PublicKey: res.PublicKey,
		Recovered: res.Recovered,
		Valid:     res.Valid,
		State:     res.State.String(),
	}
	if err != nil {
		report.Error = err.Error()
	}
	return report
}

func (r *validationReport) writeText(w io.Writer) error {
	publicKey := "-"
	if r.PublicKey != nil {
		publicKey = r.PublicKey.String()
		if r.Recovered {
			publicKey += " (recovered)"
		}
	}
	hash := "-"
	if r.Hash != nil {
		hash = r.Hash.String()
	}

	_, err := fmt.Fprintf(w, "Type:       %s\nVersion:    %s\nHash:       %s\nPublic key: %s\nValid:      %t\n",
		r.Type, r.Version, hash, publicKey, r.Valid)
	return err
}

type signatureReport struct {
	R *felt.Felt `json:"r" yaml:"r" cbor:"r"`
	S *felt.Felt `json:"s" yaml:"s" cbor:"s"`
	V *felt.Felt `json:"v" yaml:"v" cbor:"v"`
}

type feltReport struct {
	Value *felt.Felt `json:"value" yaml:"value" cbor:"value"`
}
