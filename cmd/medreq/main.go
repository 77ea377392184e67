// Package main is the entry point of the medreq command line.
package main

import (
	"github.com/kart-io/medreq/internal/medreq"
)

func main() {
	medreq.NewApp().Run()
}
