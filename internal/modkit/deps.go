package modkit

import (
	"reviewsense/internal/modkit/repokit"
	"reviewsense/internal/platform/config"
	"reviewsense/internal/platform/logger"
	"reviewsense/internal/platform/store"
)

// Deps are the shared handles every module constructor receives
// PG and CH are nil when the store is disabled
type Deps struct {
	Log logger.Logger
	// Cfg is the unprefixed root, modules take their own prefix from it
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}
