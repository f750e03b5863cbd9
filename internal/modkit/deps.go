package modkit

import (
	"profanity/internal/modkit/repokit"
	"profanity/internal/platform/config"
	"profanity/internal/platform/logger"
	"profanity/internal/platform/store"
)

// Deps holds core dependencies passed to modules. PG and CH are nil when disabled
type Deps struct {
	Log *logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}
