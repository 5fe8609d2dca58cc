package snapshot

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/caesium-lab/evacenv/pkg/environment"
	"github.com/caesium-lab/evacenv/pkg/environment/factory"
	"github.com/caesium-lab/evacenv/pkg/validation"
)

// Prefix is the key prefix every environment snapshot is stored under.
const Prefix = "environments/"

const contentType = "application/json"

// NewKey returns a fresh snapshot key of the form environments/<uuid>.json.
func NewKey() string {
	return Prefix + uuid.NewString() + ".json"
}

// Save writes env as pretty-printed JSON under a new key and returns the key.
func Save(ctx context.Context, store Store, env *environment.Environment) (string, error) {
	text, err := env.JSONPrettyPrinted("  ")
	if err != nil {
		return "", err
	}
	key := NewKey()
	info, err := store.Put(ctx, key, strings.NewReader(text), contentType)
	if err != nil {
		return "", fmt.Errorf("saving snapshot %s: %w", key, err)
	}
	log.WithFields(log.Fields{
		"driver": store.Driver(),
		"key":    info.Key,
		"bytes":  info.Size,
	}).Debug("snapshot saved")
	return key, nil
}

// Fetch loads the snapshot stored under key back into an environment. The
// document format follows the key's extension, defaulting to JSON.
func Fetch(ctx context.Context, store Store, key string, opts factory.Options) (*environment.Environment, *validation.Report, error) {
	_, rc, err := store.Get(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	defer rc.Close()

	format := factory.FormatJSON
	if ext := path.Ext(key); ext != "" {
		if f, err := factory.ParseFormat(ext); err == nil {
			format = f
		}
	}
	env, report, err := factory.Load(rc, format, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching snapshot %s: %w", key, err)
	}
	return env, report, nil
}

// List returns the stored environment snapshots ordered by key.
func List(ctx context.Context, store Store) ([]Info, error) {
	return store.List(ctx, Prefix)
}
