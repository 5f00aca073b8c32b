//go:build tools

package tools

// This file pins the formatter and linter invoked by the Makefile targets.
import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "mvdan.cc/gofumpt"
)
