//go:build tools

package main

// pins the swagger generator used for the devserver API docs
import (
	_ "github.com/swaggo/swag/cmd/swag"
)
