//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/plus3/ecsloop/config"
)

func InitializeWindowed(settings *config.Settings) (*App, func(), error) {
	wire.Build(WindowedSet)
	return nil, nil, nil
}

func InitializeHeadless(settings *config.Settings, stopAfter StopAfter) (*App, func(), error) {
	wire.Build(HeadlessSet)
	return nil, nil, nil
}
