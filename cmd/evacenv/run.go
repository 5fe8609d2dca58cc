package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/caesium-lab/evacenv/internal/config"
	"github.com/caesium-lab/evacenv/internal/server"
	"github.com/caesium-lab/evacenv/internal/snapshot"
	"github.com/caesium-lab/evacenv/pkg/environment"
	"github.com/caesium-lab/evacenv/pkg/environment/factory"
	"github.com/caesium-lab/evacenv/pkg/validation"
)

var errInvalid = errors.New("environment has validation errors")

// load reads an environment file and logs every gateway the factory skipped.
func load(path string, opts factory.Options) (*environment.Environment, *validation.Report, error) {
	env, report, err := factory.LoadFile(path, opts)
	if err != nil {
		return nil, nil, err
	}
	logRejections(report)
	return env, report, nil
}

func logRejections(report *validation.Report) {
	for _, w := range report.Warnings {
		if w.Level != validation.LevelDocument {
			continue
		}
		log.WithField("path", w.Path).Warn(w.Message)
	}
}

func runValidate(w io.Writer, path string, opts factory.Options) error {
	env, report, err := load(path, opts)
	if err != nil {
		return err
	}

	printSummary(w, env)
	fmt.Fprintln(w)
	printValidationReport(w, report)

	if !report.Valid {
		return errInvalid
	}
	return nil
}

func runShow(w io.Writer, path, output, indent string, opts factory.Options) error {
	env, _, err := load(path, opts)
	if err != nil {
		return err
	}
	if output != "" {
		if err := factory.WriteFile(output, env, indent); err != nil {
			return err
		}
		log.WithField("file", output).Info("environment written")
		return nil
	}

	var text string
	if indent == "" {
		text, err = env.JSONSerialized()
	} else {
		text, err = env.JSONPrettyPrinted(indent)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(w, text)
	return nil
}

func runQuery(w io.Writer, path string, domainID int32, x, y float64, opts factory.Options) error {
	env, _, err := load(path, opts)
	if err != nil {
		return err
	}
	d, ok := env.Domain(domainID)
	if !ok {
		return fmt.Errorf("domain %d not found", domainID)
	}
	printProbe(w, d, server.Probe(d, x, y))
	return nil
}

func runSnapshotSave(ctx context.Context, w io.Writer, cfg config.Snapshot, path string, opts factory.Options) error {
	env, _, err := load(path, opts)
	if err != nil {
		return err
	}
	store, err := snapshot.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening snapshot store: %w", err)
	}
	key, err := snapshot.Save(ctx, store, env)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, key)
	return nil
}

func runSnapshotGet(ctx context.Context, w io.Writer, cfg config.Snapshot, key string, opts factory.Options) error {
	store, err := snapshot.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening snapshot store: %w", err)
	}
	env, report, err := snapshot.Fetch(ctx, store, key, opts)
	if err != nil {
		return err
	}
	logRejections(report)

	text, err := env.JSONPrettyPrinted("  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, text)
	return nil
}

func runSnapshotList(ctx context.Context, w io.Writer, cfg config.Snapshot) error {
	store, err := snapshot.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening snapshot store: %w", err)
	}
	infos, err := snapshot.List(ctx, store)
	if err != nil {
		return err
	}
	printSnapshots(w, infos)
	return nil
}

func runServe(ctx context.Context, cfg *config.Config, path string, withSnapshots bool, opts factory.Options) error {
	env, report, err := load(path, opts)
	if err != nil {
		return err
	}

	var store snapshot.Store
	if withSnapshots {
		store, err = snapshot.Open(ctx, cfg.Snapshot)
		if err != nil {
			return fmt.Errorf("opening snapshot store: %w", err)
		}
	}
	return server.New(env, report, path, cfg.Port, store).Start()
}
