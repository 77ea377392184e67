// Package main is the entry point of the medreq reference API server.
package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/kart-io/medreq/internal/apiserver"
)

func main() {
	apiserver.NewApp().Run()
}
