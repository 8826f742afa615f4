package opts

import (
	"github.com/walteh/ngmigrate/pkg/config"
	"github.com/walteh/ngmigrate/pkg/log"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config     *config.Config
	Console    *log.Logger
	UserLogger *log.UserLogger
}
