package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/feral-file/pplp-engine/internal/policy"
	"github.com/feral-file/pplp-engine/internal/store"
)

// errUsage is returned for an unknown command or missing flags
var errUsage = errors.New("usage error")

// command is one policyctl subcommand
type command struct {
	summary string
	run     func(ctx context.Context, c *cli, args []string) error
}

// cli runs policyctl subcommands against the policy service
type cli struct {
	service policy.Service
	actor   string
	out     io.Writer
	// open reads policy documents; os.Open outside tests
	open func(path string) (io.ReadCloser, error)
}

func newCLI(service policy.Service, actor string, out io.Writer) *cli {
	return &cli{
		service: service,
		actor:   actor,
		out:     out,
		open:    func(path string) (io.ReadCloser, error) { return os.Open(path) },
	}
}

var commands = map[string]command{
	"create":          {"create a policy version from a YAML document", runCreate},
	"activate":        {"make a policy version the active one", runActivate},
	"register":        {"record the external registration of a policy hash", runRegister},
	"list":            {"list every policy version", runList},
	"changes":         {"show the policy audit trail", runChanges},
	"verify":          {"verify the policy audit hash chain", runVerify},
	"attesters":       {"list the attesters of a policy version", runAttesters},
	"attester-add":    {"register an attester for a policy version", runAttesterAdd},
	"attester-remove": {"revoke an attester of a policy version", runAttesterRemove},
	"threshold":       {"set the signature threshold of a policy version", runThreshold},
}

// Run dispatches args[0] to its subcommand
func (c *cli) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		c.usage()
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		c.usage()
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	return cmd.run(ctx, c, args[1:])
}

func (c *cli) usage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	_, _ = fmt.Fprintln(c.out, "usage: policyctl [-config file] [-env dir] <command> [flags]")
	for _, name := range names {
		_, _ = fmt.Fprintf(c.out, "  %-16s %s\n", name, commands[name].summary)
	}
}

func (c *cli) print(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.out)
	return fs
}

func required(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: -%s is required", errUsage, name)
	}
	return nil
}

func runCreate(ctx context.Context, c *cli, args []string) error {
	fs := c.flags("create")
	file := fs.String("file", "", "Policy YAML document")
	reason := fs.String("reason", "", "Reason recorded in the audit trail")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required("file", *file); err != nil {
		return err
	}

	f, err := c.open(*file)
	if err != nil {
		return fmt.Errorf("failed to open policy document: %w", err)
	}
	defer func() { _ = f.Close() }()

	doc, err := policy.ParseYAML(f)
	if err != nil {
		return err
	}

	record, err := c.service.Create(ctx, policy.CreateRequest{
		Policy: doc.Policy,
		Labels: doc.Labels,
		Actor:  c.actor,
		Reason: *reason,
	})
	if err != nil {
		return err
	}
	return c.print(record)
}

func runActivate(ctx context.Context, c *cli, args []string) error {
	fs := c.flags("activate")
	version := fs.String("version", "", "Policy version")
	reason := fs.String("reason", "", "Reason recorded in the audit trail")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required("version", *version); err != nil {
		return err
	}

	record, err := c.service.Activate(ctx, *version, c.actor, *reason)
	if err != nil {
		return err
	}
	return c.print(record)
}

func runRegister(ctx context.Context, c *cli, args []string) error {
	fs := c.flags("register")
	version := fs.String("version", "", "Policy version")
	ref := fs.String("ref", "", "External reference of the registration, e.g. a transaction hash")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required("version", *version); err != nil {
		return err
	}
	if err := required("ref", *ref); err != nil {
		return err
	}

	record, err := c.service.Register(ctx, *version, *ref, c.actor)
	if err != nil {
		return err
	}
	return c.print(record)
}

func runList(ctx context.Context, c *cli, args []string) error {
	if err := c.flags("list").Parse(args); err != nil {
		return err
	}
	records, err := c.service.History(ctx)
	if err != nil {
		return err
	}
	return c.print(records)
}

func runChanges(ctx context.Context, c *cli, args []string) error {
	fs := c.flags("changes")
	version := fs.String("version", "", "Only changes of this policy version")
	limit := fs.Int("limit", 50, "Maximum number of changes")
	offset := fs.Uint64("offset", 0, "Changes to skip")
	if err := fs.Parse(args); err != nil {
		return err
	}

	changes, total, err := c.service.Changes(ctx, store.PolicyChangesFilter{
		PolicyVersion: *version,
		Limit:         *limit,
		Offset:        *offset,
	})
	if err != nil {
		return err
	}
	return c.print(map[string]any{"changes": changes, "total": total})
}

func runVerify(ctx context.Context, c *cli, args []string) error {
	if err := c.flags("verify").Parse(args); err != nil {
		return err
	}
	result, err := c.service.VerifyAuditChain(ctx)
	if err != nil {
		return err
	}
	if err := c.print(result); err != nil {
		return err
	}
	if !result.Valid {
		return errors.New("policy audit chain is broken")
	}
	return nil
}

func runAttesters(ctx context.Context, c *cli, args []string) error {
	fs := c.flags("attesters")
	version := fs.String("version", "", "Policy version")
	all := fs.Bool("all", false, "Include revoked attesters")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required("version", *version); err != nil {
		return err
	}

	attesters, err := c.service.ListAttesters(ctx, *version, !*all)
	if err != nil {
		return err
	}
	return c.print(attesters)
}

func runAttesterAdd(ctx context.Context, c *cli, args []string) error {
	fs := c.flags("attester-add")
	version := fs.String("version", "", "Policy version")
	signer := fs.String("signer", "", "Attester address")
	label := fs.String("label", "", "Attester label")
	reason := fs.String("reason", "", "Reason recorded in the audit trail")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required("version", *version); err != nil {
		return err
	}
	if err := required("signer", *signer); err != nil {
		return err
	}

	attester, err := c.service.AddAttester(ctx, policy.AttesterRequest{
		PolicyVersion: *version,
		SignerID:      *signer,
		Label:         *label,
		Actor:         c.actor,
		Reason:        *reason,
	})
	if err != nil {
		return err
	}
	return c.print(attester)
}

func runAttesterRemove(ctx context.Context, c *cli, args []string) error {
	fs := c.flags("attester-remove")
	version := fs.String("version", "", "Policy version")
	signer := fs.String("signer", "", "Attester address")
	reason := fs.String("reason", "", "Reason recorded in the audit trail")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required("version", *version); err != nil {
		return err
	}
	if err := required("signer", *signer); err != nil {
		return err
	}

	if err := c.service.RemoveAttester(ctx, *version, *signer, c.actor, *reason); err != nil {
		return err
	}
	_, err := fmt.Fprintf(c.out, "revoked %s from %s\n", *signer, *version)
	return err
}

func runThreshold(ctx context.Context, c *cli, args []string) error {
	fs := c.flags("threshold")
	version := fs.String("version", "", "Policy version")
	value := fs.Int("value", 0, "Required attester signatures")
	reason := fs.String("reason", "", "Reason recorded in the audit trail")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required("version", *version); err != nil {
		return err
	}
	if *value < 1 {
		return fmt.Errorf("%w: -value must be at least 1", errUsage)
	}

	if err := c.service.SetThreshold(ctx, *version, *value, c.actor, *reason); err != nil {
		return err
	}
	_, err := fmt.Fprintf(c.out, "threshold of %s set to %d\n", *version, *value)
	return err
}
