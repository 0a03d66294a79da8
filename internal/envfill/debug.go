//go:build debugNmutate
// +build debugNmutate

package envfill

import (
	"log"
)

func debugf(fmt string, args ...interface{}) {
	log.Printf(fmt, args...)
}
