package usecase_test

import (
	"context"

	"github.com/bnema/ballistic/internal/domain/physics"
	"github.com/bnema/ballistic/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

type builderFunc func(physics.Params) (string, error)

func (f builderFunc) Build(p physics.Params) (string, error) { return f(p) }
