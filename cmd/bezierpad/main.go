package main

import (
	"os"

	"github.com/kpango/glg"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		glg.Error(err)
		os.Exit(1)
	}
}
