package root

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"ruleguard/internal/engine"
	"ruleguard/internal/identity"
	"ruleguard/internal/storage"
)

func openStore(ctx context.Context) (*storage.SQLite, func(), error) {
	path := viper.GetString("db")
	if path == "" {
		var err error
		path, err = storage.DefaultPath()
		if err != nil {
			return nil, nil, err
		}
	}
	st, err := storage.OpenSQLite(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = st.Close()
	}
	return st, cleanup, nil
}

func openEngine(ctx context.Context) (*engine.Engine, *storage.SQLite, func(), error) {
	st, cleanup, err := openStore(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	provider := identity.NewLocal(viper.GetString("display_name"))
	eng, err := engine.New(ctx, st, provider, log.StandardLogger())
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	return eng, st, cleanup, nil
}
