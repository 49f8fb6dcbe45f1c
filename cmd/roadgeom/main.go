// Package main is the roadgeom command, which fits road segments and prints
// their parameters and samples as JSON.
package main

import (
	"log"
	"os"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
