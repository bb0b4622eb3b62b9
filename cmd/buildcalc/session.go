package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/stefanreuther/c2ng-sub002/internal/logging"
	"github.com/stefanreuther/c2ng-sub002/internal/scenario"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/catalogs"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/cost"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/gameerr"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/tuning"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/feature/economy/build"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/feature/economy/cargo"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/feature/economy/undo"
	"github.com/stefanreuther/c2ng-sub002/internal/sim/world/kernel/model"
)

// transaction is what every build action offers the commands.
type transaction interface {
	Status() build.Status
	CostSummary() build.Summary
	CostAction() *cargo.CostAction
	Commit() error
	Close()
}

// session bundles what one command invocation loads before building its
// transaction.
type session struct {
	name     string
	out      io.Writer
	log      zerolog.Logger
	commit   bool
	scenario *scenario.Scenario
	env      build.Env
	info     undo.Information
	storage  *cargo.PlanetStorage
}

func openSession(cmd *cobra.Command, flags *rootFlags) (*session, error) {
	name := cmd.Name()
	log, err := logging.New(logging.Options{Level: flags.logLevel, HumanReadable: flags.human, Writer: cmd.ErrOrStderr()})
	if err != nil {
		return nil, newCommandError(name, "configuring logging", err, "Use one of debug, info, warn or error for --log-level.")
	}
	if strings.TrimSpace(flags.scenario) == "" {
		return nil, newCommandError(name, "loading scenario", errors.New("no scenario file given"), "Pass the planet state with --scenario <file>.")
	}

	list, err := catalogs.Load(flags.configs)
	if err != nil {
		return nil, newCommandError(name, "loading ship list", err, "Point --configs at a directory with hulls.json, engines.json, beams.json, torpedoes.json and truehull.json.")
	}
	config, err := tuning.Load(flags.host)
	if err != nil {
		return nil, newCommandError(name, "loading host configuration", err, "Check the file passed with --host.")
	}
	sc, err := scenario.Load(flags.scenario)
	if err != nil {
		return nil, newCommandError(name, "loading scenario", err, "Check the file passed with --scenario.")
	}

	s := &session{name: name, out: cmd.OutOrStdout(), log: log, commit: flags.commit, scenario: sc}
	s.env = build.Env{ShipList: list, Config: config, Key: sc.Key, Log: &s.log}
	if sc.Reverter != nil {
		s.env.Reverter = sc.Reverter
	}
	s.info.Set(sc.Planet, list, s.env.Reverter)
	s.storage = cargo.NewPlanetStorage(sc.Planet, config, &s.info)

	s.log.Debug().
		Str("scenario", flags.scenario).
		Int("planet", sc.Planet.ID).
		Int("ships", len(sc.Ships)).
		Msg("scenario loaded")
	return s, nil
}

func (s *session) close() { s.storage.Close() }

// ship returns a container for a ship in orbit.
func (s *session) ship(id int) (*cargo.ShipStorage, error) {
	sh := s.scenario.Ships[id]
	if sh == nil {
		return nil, newCommandError(s.name, "selecting ship", fmt.Errorf("no ship %d in scenario", id), "Use one of the ship ids listed in the scenario file.")
	}
	return cargo.NewShipStorage(sh, s.env.ShipList), nil
}

// finish prints t and, when committing, applies it and prints the planet.
func (s *session) finish(t transaction) error {
	defer t.Close()
	s.report(t)
	if !s.commit {
		return nil
	}
	if err := t.Commit(); err != nil {
		return newCommandError(s.name, "committing transaction", err, suggestionFor(err))
	}
	s.log.Info().
		Str("action", s.name).
		Int("planet", s.scenario.Planet.ID).
		Msg("transaction committed")

	enc := json.NewEncoder(s.out)
	enc.SetIndent("", "  ")
	return enc.Encode(scenario.StateOf(s.scenario.Planet, s.env.ShipList.ComponentIDs(model.TorpedoTech)))
}

func (s *session) report(t transaction) {
	fmt.Fprintf(s.out, "Planet:  %s\n", s.storage.Name())
	for _, it := range t.CostSummary().Items {
		fmt.Fprintf(s.out, "  %-36s %5d  %s\n", it.Label, it.Multiplier, costText(it.Cost))
	}
	ca := t.CostAction()
	fmt.Fprintf(s.out, "Total:   %s\n", costText(ca.Cost()))
	if missing := ca.MissingAmountAsCost(); !missing.IsZero() {
		fmt.Fprintf(s.out, "Missing: %s\n", missing)
	}
	fmt.Fprintf(s.out, "Status:  %s\n", t.Status())
}

func costText(c cost.Cost) string {
	if c.IsZero() {
		return "-"
	}
	return c.String()
}

func suggestionFor(err error) string {
	switch gameerr.CodeOf(err) {
	case gameerr.ErrNoResource:
		return "Add resources to the planet in the scenario or reduce the order."
	case gameerr.ErrNoPermission:
		return "Check the starbase, registration and tech level settings of the scenario."
	default:
		return "Run the command without --commit to inspect the transaction."
	}
}

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error { return e.cause }

// parseArea maps a flag value onto a tech area.
func parseArea(name, value string) (model.TechLevel, error) {
	area, ok := model.ParseTechLevel(value)
	if !ok {
		return 0, newCommandError(name, "parsing --area", fmt.Errorf("unknown tech area %q", value), "Use hull, engine, beam or torpedo.")
	}
	return area, nil
}
